package usecase

import (
	"context"
	"log/slog"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/dto"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/observability"
)

// ScoreCompany is the use case for stateless scoring of a corporate
// applicant from a raw feature set.
type ScoreCompany struct {
	scorer *service.RiskScorer
	audit  port.PredictionLogRepository
	logger *slog.Logger
}

// NewScoreCompany creates a new ScoreCompany use case.
func NewScoreCompany(scorer *service.RiskScorer, audit port.PredictionLogRepository, logger *slog.Logger) *ScoreCompany {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreCompany{scorer: scorer, audit: audit, logger: logger}
}

// Execute scores the features and appends a best-effort audit entry.
func (uc *ScoreCompany) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	pred := uc.scorer.ScoreCompany(req.Features)
	observability.PredictionsTotal.WithLabelValues("company", pred.ModelVersion).Inc()

	recordPrediction(ctx, uc.audit, uc.logger, valueobject.ApplicantCompany, req, pred)
	return dto.FromPrediction(pred), nil
}
