package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/dto"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/observability"
)

// SubmitCreditRequest creates a credit request for an existing profile,
// scores it synchronously and audits the prediction.
type SubmitCreditRequest struct {
	requests    port.CreditRequestRepository
	individuals port.IndividualProfileRepository
	companies   port.CompanyProfileRepository
	audit       port.PredictionLogRepository
	publisher   port.EventPublisher
	scorer      *service.RiskScorer
	logger      *slog.Logger
}

// NewSubmitCreditRequest creates a new SubmitCreditRequest use case.
func NewSubmitCreditRequest(
	requests port.CreditRequestRepository,
	individuals port.IndividualProfileRepository,
	companies port.CompanyProfileRepository,
	audit port.PredictionLogRepository,
	publisher port.EventPublisher,
	scorer *service.RiskScorer,
	logger *slog.Logger,
) *SubmitCreditRequest {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmitCreditRequest{
		requests:    requests,
		individuals: individuals,
		companies:   companies,
		audit:       audit,
		publisher:   publisher,
		scorer:      scorer,
		logger:      logger,
	}
}

// Execute runs the full submission flow. Persisting the scored request is
// mandatory; the audit write, the profile score update and event publishing
// are best-effort.
func (uc *SubmitCreditRequest) Execute(ctx context.Context, req dto.SubmitCreditRequestRequest) (dto.CreditRequestResponse, error) {
	applicantType, err := valueobject.ApplicantTypeFromString(req.ApplicantType)
	if err != nil {
		return dto.CreditRequestResponse{}, err
	}

	features, recordScore, err := uc.loadProfile(ctx, applicantType, req)
	if err != nil {
		return dto.CreditRequestResponse{}, err
	}

	request, err := model.NewCreditRequest(applicantType, req.SubjectID, req.RequestedAmount, req.TermMonths, req.Purpose)
	if err != nil {
		return dto.CreditRequestResponse{}, fmt.Errorf("failed to create credit request: %w", err)
	}

	pred, err := uc.scorer.Score(applicantType, features)
	if err != nil {
		return dto.CreditRequestResponse{}, fmt.Errorf("failed to score credit request: %w", err)
	}
	observability.PredictionsTotal.WithLabelValues(applicantType.String(), pred.ModelVersion).Inc()

	if err := request.ApplyScore(pred.Score, pred.Explanation, pred.ModelVersion); err != nil {
		return dto.CreditRequestResponse{}, fmt.Errorf("failed to apply score: %w", err)
	}

	if err := uc.requests.Save(ctx, request); err != nil {
		return dto.CreditRequestResponse{}, fmt.Errorf("failed to save credit request: %w", err)
	}

	uc.auditRequest(ctx, request, pred, features)
	recordScore(ctx, pred)
	uc.publishEvents(ctx, request)

	return dto.FromCreditRequest(request), nil
}

// loadProfile fetches the applicant profile, builds the feature set and
// returns a closure that records the score back onto the profile.
func (uc *SubmitCreditRequest) loadProfile(
	ctx context.Context,
	applicantType valueobject.ApplicantType,
	req dto.SubmitCreditRequestRequest,
) (service.FeatureSet, func(context.Context, service.Prediction), error) {
	if applicantType.Equal(valueobject.ApplicantIndividual) {
		profile, err := uc.individuals.FindByID(ctx, req.SubjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load individual profile: %w", err)
		}
		record := func(ctx context.Context, pred service.Prediction) {
			uc.recordProfileScore(ctx, pred, func() error {
				if err := profile.RecordScore(pred.Score, pred.ModelVersion, time.Now().UTC()); err != nil {
					return err
				}
				return uc.individuals.Save(ctx, profile)
			})
		}
		return profile.Features(req.RequestedAmount), record, nil
	}

	profile, err := uc.companies.FindByID(ctx, req.SubjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load company profile: %w", err)
	}
	record := func(ctx context.Context, pred service.Prediction) {
		uc.recordProfileScore(ctx, pred, func() error {
			if err := profile.RecordScore(pred.Score, pred.ModelVersion, time.Now().UTC()); err != nil {
				return err
			}
			return uc.companies.Save(ctx, profile)
		})
	}
	return profile.Features(req.RequestedAmount), record, nil
}

func (uc *SubmitCreditRequest) recordProfileScore(ctx context.Context, pred service.Prediction, save func() error) {
	if err := save(); err != nil {
		uc.logger.WarnContext(ctx, "profile score update failed",
			slog.Int("score", pred.Score),
			slog.String("error", err.Error()))
	}
}

func (uc *SubmitCreditRequest) auditRequest(ctx context.Context, request *model.CreditRequest, pred service.Prediction, features service.FeatureSet) {
	requestID := request.ID()
	entry, err := model.NewPredictionLog(
		request.ApplicantType(), request.SubjectID(), &requestID,
		pred.Score, pred.ModelVersion, pred.Explanation, features, nil,
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

func (uc *SubmitCreditRequest) publishEvents(ctx context.Context, request *model.CreditRequest) {
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
