// Command seedtoken prints a bearer token for the /seed endpoint, signed
// with SEED_JWT_SECRET.
//
//	curl -H "Authorization: Bearer $(seedtoken -sub ops)" localhost:8080/seed
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/seeder/internal/auth"
	"github.com/mmynk/seeder/pkg/logging"
)

func main() {
	subject := flag.String("sub", "operator", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	logger := logging.Setup()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	secret := os.Getenv("SEED_JWT_SECRET")
	if secret == "" {
		logger.Error("SEED_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(secret, *ttl).Generate(*subject)
	if err != nil {
		logger.Error("failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
