package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/pkg/observability"
)

// PurgePredictionLogs removes audit entries older than the retention window.
// Unlike audit writes, purge failures are loud: retention is a compliance
// obligation and must not fail silently.
type PurgePredictionLogs struct {
	audit     port.PredictionLogRepository
	retention time.Duration
	logger    *slog.Logger
}

// NewPurgePredictionLogs creates a new PurgePredictionLogs use case.
func NewPurgePredictionLogs(audit port.PredictionLogRepository, retention time.Duration, logger *slog.Logger) *PurgePredictionLogs {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurgePredictionLogs{audit: audit, retention: retention, logger: logger}
}

// Execute deletes entries created before now minus the retention window and
// returns how many were removed.
func (uc *PurgePredictionLogs) Execute(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-uc.retention)

	purged, err := uc.audit.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge prediction logs: %w", err)
	}

	observability.PredictionLogsPurgedTotal.Add(float64(purged))
	uc.logger.InfoContext(ctx, "prediction log purge complete",
		slog.Int64("purged", purged),
		slog.Time("cutoff", cutoff))
	return purged, nil
}
