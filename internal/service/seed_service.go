package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mmynk/seeder/internal/seed"
)

// SuccessMessage is returned when every table was seeded.
const SuccessMessage = "Database seeded successfully"

// Seeder runs one seed pass.
type Seeder interface {
	Seed(ctx context.Context) (*seed.Report, error)
}

// SeedService serves the seed endpoint. It takes no parameters and no body.
type SeedService struct {
	seeder Seeder
	logger *slog.Logger
}

// NewSeedService creates a new SeedService around seeder.
func NewSeedService(seeder Seeder, logger *slog.Logger) *SeedService {
	return &SeedService{seeder: seeder, logger: logger}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP seeds the database and reports the outcome as JSON.
func (s *SeedService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Seed request received", "remote_addr", r.RemoteAddr)

	report, err := s.seeder.Seed(r.Context())
	if err != nil {
		s.logger.Error("Error seeding database", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	tables := make([]any, 0, 2*len(report.Tables))
	for _, t := range report.Tables {
		tables = append(tables, t.Table, t.Rows)
	}
	s.logger.Info("Seed request completed",
		slog.Group("rows", tables...),
		"duration_ms", report.Duration.Milliseconds(),
	)
	writeJSON(w, http.StatusOK, messageResponse{Message: SuccessMessage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
