package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/observability"
)

// RescorePending re-runs the engine over a bounded batch of pending credit
// requests, oldest first. The workflow is re-entrant: each invocation picks
// up wherever the data currently stands.
type RescorePending struct {
	requests    port.CreditRequestRepository
	individuals port.IndividualProfileRepository
	companies   port.CompanyProfileRepository
	audit       port.PredictionLogRepository
	publisher   port.EventPublisher
	scorer      *service.RiskScorer
	batchSize   int
	logger      *slog.Logger
}

// NewRescorePending creates a new RescorePending use case.
func NewRescorePending(
	requests port.CreditRequestRepository,
	individuals port.IndividualProfileRepository,
	companies port.CompanyProfileRepository,
	audit port.PredictionLogRepository,
	publisher port.EventPublisher,
	scorer *service.RiskScorer,
	batchSize int,
	logger *slog.Logger,
) *RescorePending {
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RescorePending{
		requests:    requests,
		individuals: individuals,
		companies:   companies,
		audit:       audit,
		publisher:   publisher,
		scorer:      scorer,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// RescoreResult summarizes one batch run.
type RescoreResult struct {
	Selected int
	Rescored int
	Failed   int
}

// Execute processes one batch. Per-request failures are logged and skipped;
// only failing to select the batch itself is a hard error.
func (uc *RescorePending) Execute(ctx context.Context) (RescoreResult, error) {
	pending, err := uc.requests.FindPending(ctx, uc.batchSize)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("failed to select pending requests: %w", err)
	}

	result := RescoreResult{Selected: len(pending)}
	for _, request := range pending {
		if err := uc.rescore(ctx, request); err != nil {
			result.Failed++
			observability.RescoredRequestsTotal.WithLabelValues("failed").Inc()
			uc.logger.WarnContext(ctx, "rescore failed",
				slog.String("request_id", request.ID().String()),
				slog.String("error", err.Error()))
			continue
		}
		result.Rescored++
		observability.RescoredRequestsTotal.WithLabelValues("rescored").Inc()
	}

	uc.logger.InfoContext(ctx, "rescore batch complete",
		slog.Int("selected", result.Selected),
		slog.Int("rescored", result.Rescored),
		slog.Int("failed", result.Failed))
	return result, nil
}

func (uc *RescorePending) rescore(ctx context.Context, request *model.CreditRequest) error {
	features, err := uc.features(ctx, request)
	if err != nil {
		return err
	}

	pred, err := uc.scorer.Score(request.ApplicantType(), features)
	if err != nil {
		return err
	}
	observability.PredictionsTotal.WithLabelValues(request.ApplicantType().String(), pred.ModelVersion).Inc()

	if err := request.ApplyScore(pred.Score, pred.Explanation, pred.ModelVersion); err != nil {
		return err
	}
	if err := uc.requests.Save(ctx, request); err != nil {
		return fmt.Errorf("failed to save rescored request: %w", err)
	}

	uc.auditRescore(ctx, request, pred, features)
	uc.publish(ctx, request)
	return nil
}

func (uc *RescorePending) features(ctx context.Context, request *model.CreditRequest) (service.FeatureSet, error) {
	if request.ApplicantType().Equal(valueobject.ApplicantIndividual) {
		profile, err := uc.individuals.FindByID(ctx, request.SubjectID())
		if err != nil {
			return nil, fmt.Errorf("failed to load individual profile: %w", err)
		}
		return profile.Features(request.RequestedAmount()), nil
	}
	profile, err := uc.companies.FindByID(ctx, request.SubjectID())
	if err != nil {
		return nil, fmt.Errorf("failed to load company profile: %w", err)
	}
	return profile.Features(request.RequestedAmount()), nil
}

func (uc *RescorePending) auditRescore(ctx context.Context, request *model.CreditRequest, pred service.Prediction, features service.FeatureSet) {
	requestID := request.ID()
	entry, err := model.NewPredictionLog(
		request.ApplicantType(), request.SubjectID(), &requestID,
		pred.Score, pred.ModelVersion, pred.Explanation, features,
		map[string]any{"trigger": "rescore"},
	)
	if err == nil {
		err = uc.audit.Record(ctx, entry)
	}
	if err != nil {
		observability.AuditWriteFailuresTotal.Inc()
		uc.logger.WarnContext(ctx, "audit write failed",
			slog.String("request_id", requestID.String()),
			slog.String("error", err.Error()))
	}
}

func (uc *RescorePending) publish(ctx context.Context, request *model.CreditRequest) {
	evts := request.DomainEvents()
	if len(evts) == 0 {
		return
	}
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.WarnContext(ctx, "event publish failed",
			slog.String("request_id", request.ID().String()),
			slog.String("error", err.Error()))
		return
	}
	request.ClearEvents()
}
