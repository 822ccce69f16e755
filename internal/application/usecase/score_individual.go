package usecase

import (
	"context"
	"log/slog"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/dto"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/observability"
)

// ScoreIndividual is the use case for stateless scoring of an individual
// applicant from a raw feature set.
type ScoreIndividual struct {
	scorer *service.RiskScorer
	audit  port.PredictionLogRepository
	logger *slog.Logger
}

// NewScoreIndividual creates a new ScoreIndividual use case.
func NewScoreIndividual(scorer *service.RiskScorer, audit port.PredictionLogRepository, logger *slog.Logger) *ScoreIndividual {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreIndividual{scorer: scorer, audit: audit, logger: logger}
}

// Execute scores the features and appends an audit entry. The audit write is
// best-effort: a failure is logged and counted but the score is still
// returned to the caller.
func (uc *ScoreIndividual) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	pred := uc.scorer.ScoreIndividual(req.Features)
	observability.PredictionsTotal.WithLabelValues("individual", pred.ModelVersion).Inc()

	recordPrediction(ctx, uc.audit, uc.logger, valueobject.ApplicantIndividual, req, pred)
	return dto.FromPrediction(pred), nil
}

// recordPrediction appends a best-effort audit entry for a stateless scoring
// run. Shared by the individual and company scoring use cases.
func recordPrediction(
	ctx context.Context,
	audit port.PredictionLogRepository,
	logger *slog.Logger,
	subjectType valueobject.ApplicantType,
	req dto.ScoreRequest,
	pred service.Prediction,
) {
	entry, err := model.NewPredictionLog(subjectType, req.SubjectID, nil, pred.Score, pred.ModelVersion, pred.Explanation, req.Features, req.Context)
	if err != nil {
		observability.AuditWriteFailuresTotal.Inc()
		logger.WarnContext(ctx, "audit entry rejected",
			slog.String("subject_type", subjectType.String()),
			slog.String("subject_id", req.SubjectID.String()),
			slog.String("error", err.Error()))
		return
	}
	if err := audit.Record(ctx, entry); err != nil {
		observability.AuditWriteFailuresTotal.Inc()
		logger.WarnContext(ctx, "audit write failed",
			slog.String("subject_type", subjectType.String()),
			slog.String("subject_id", req.SubjectID.String()),
			slog.String("error", err.Error()))
	}
}
