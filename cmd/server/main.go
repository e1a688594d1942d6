package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/seeder/internal/auth"
	"github.com/mmynk/seeder/internal/config"
	"github.com/mmynk/seeder/internal/fixtures"
	"github.com/mmynk/seeder/internal/middleware"
	"github.com/mmynk/seeder/internal/seed"
	"github.com/mmynk/seeder/internal/service"
	"github.com/mmynk/seeder/internal/storage"
	"github.com/mmynk/seeder/internal/storage/postgres"
	"github.com/mmynk/seeder/internal/storage/sqlite"
	"github.com/mmynk/seeder/pkg/logging"
)

func main() {
	logger := logging.Setup()

	if err := run(logger); err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opener, err := newOpener(cfg)
	if err != nil {
		return err
	}
	logger.Info("Storage configured", "driver", cfg.Driver)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	seeder := seed.New(opener, auth.NewPasswordHasher(), fixtures.Default(), seed.Options{
		Concurrency: cfg.Concurrency,
		Logger:      logger,
		Metrics:     seed.NewMetrics(reg),
	})

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		// Validation only; tokens come from cmd/seedtoken.
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, 0)
		logger.Info("Seed endpoint requires a bearer token")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /seed", middleware.RequireBearer(jwtManager)(service.NewSeedService(seeder, logger)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.CORS,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Seed server starting", "address", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func newOpener(cfg config.Config) (storage.Opener, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.New(cfg.DatabaseURL, postgres.Options{MaxConns: int32(cfg.MaxConns)}), nil
	case config.DriverSQLite:
		return sqlite.New(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
