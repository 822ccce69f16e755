package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/dto"
	"github.com/Nozima-Rustamova/credit-ML/internal/application/usecase"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/event"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
)

type submitFixture struct {
	requests    *mockCreditRequestRepository
	individuals *mockIndividualProfileRepository
	companies   *mockCompanyProfileRepository
	audit       *mockPredictionLogRepository
	publisher   *mockEventPublisher
	uc          *usecase.SubmitCreditRequest
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		requests:    &mockCreditRequestRepository{},
		individuals: &mockIndividualProfileRepository{},
		companies:   &mockCompanyProfileRepository{},
		audit:       &mockPredictionLogRepository{},
		publisher:   &mockEventPublisher{},
	}
	f.uc = usecase.NewSubmitCreditRequest(
		f.requests, f.individuals, f.companies, f.audit, f.publisher,
		service.NewRuleBasedScorer(nil), nil,
	)
	return f
}

func TestSubmitCreditRequest_Execute(t *testing.T) {
	t.Run("individual request is scored, saved, audited and published", func(t *testing.T) {
		f := newSubmitFixture()
		profile := newIndividualProfile()
		require.NoError(t, f.individuals.Save(context.Background(), profile))

		resp, err := f.uc.Execute(context.Background(), dto.SubmitCreditRequestRequest{
			ApplicantType:   "individual",
			SubjectID:       profile.ID(),
			RequestedAmount: decimal.NewFromInt(150_000),
			TermMonths:      24,
			Purpose:         "mortgage",
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Score)
		assert.Equal(t, 74, *resp.Score)
		assert.Equal(t, "rule/v1", resp.ModelVersion)
		assert.Equal(t, "pending", resp.Status)

		require.Len(t, f.requests.saved, 1)
		require.Len(t, f.audit.recorded, 1)
		require.NotNil(t, f.audit.recorded[0].RequestID())
		assert.Equal(t, resp.ID, *f.audit.recorded[0].RequestID())

		require.Len(t, f.publisher.published, 1)
		scored, ok := f.publisher.published[0].(event.CreditRequestScored)
		require.True(t, ok)
		assert.Equal(t, 74, scored.Score)

		// Profile carries the latest score.
		require.NotNil(t, profile.LastScore())
		assert.Equal(t, 74, *profile.LastScore())
	})

	t.Run("company request", func(t *testing.T) {
		f := newSubmitFixture()
		profile := newCompanyProfile()
		require.NoError(t, f.companies.Save(context.Background(), profile))

		resp, err := f.uc.Execute(context.Background(), dto.SubmitCreditRequestRequest{
			ApplicantType:   "company",
			SubjectID:       profile.ID(),
			RequestedAmount: decimal.NewFromInt(500_000),
			TermMonths:      36,
			Purpose:         "equipment",
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Score)
		assert.Equal(t, 65, *resp.Score)
	})

	t.Run("low score publishes a second event", func(t *testing.T) {
		f := newSubmitFixture()
		// Negative margin plus high leverage drives the score to 20.
		profile, err := model.NewCompanyCreditProfile(
			"Samarkand Logistics LLC", "305999999",
			decimal.NewFromInt(1_000_000),
			decimal.NewFromInt(-100_000),
			decimal.NewFromInt(3_000_000),
			decimal.NewFromInt(2_500_000),
		)
		require.NoError(t, err)
		require.NoError(t, f.companies.Save(context.Background(), profile))

		resp, err := f.uc.Execute(context.Background(), dto.SubmitCreditRequestRequest{
			ApplicantType:   "company",
			SubjectID:       profile.ID(),
			RequestedAmount: decimal.NewFromInt(500_000),
			TermMonths:      12,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Score)
		assert.Equal(t, 20, *resp.Score)
		assert.Less(t, *resp.Score, event.LowScoreThreshold)

		require.Len(t, f.publisher.published, 2)
		_, ok := f.publisher.published[1].(event.LowScoreDetected)
		assert.True(t, ok)
	})

	t.Run("unknown applicant type", func(t *testing.T) {
		f := newSubmitFixture()
		_, err := f.uc.Execute(context.Background(), dto.SubmitCreditRequestRequest{
			ApplicantType:   "trust",
			RequestedAmount: decimal.NewFromInt(100),
			TermMonths:      12,
		})
		assert.Error(t, err)
	})

	t.Run("missing profile fails the submission", func(t *testing.T) {
		f := newSubmitFixture()
		_, err := f.uc.Execute(context.Background(), dto.SubmitCreditRequestRequest{
			ApplicantType:   "individual",
			SubjectID:       newIndividualProfile().ID(),
			RequestedAmount: decimal.NewFromInt(100),
			TermMonths:      12,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "individual profile")
	})

	t.Run("save failure is a hard error", func(t *testing.T) {
		f := newSubmitFixture()
		profile := newIndividualProfile()
		require.NoError(t, f.individuals.Save(context.Background(), profile))
		f.requests.saveFunc = func(context.Context, *model.CreditRequest) error { return fmt.Errorf("db down") }

		_, err := f.uc.Execute(context.Background(), dto.SubmitCreditRequestRequest{
			ApplicantType:   "individual",
			SubjectID:       profile.ID(),
			RequestedAmount: decimal.NewFromInt(100),
			TermMonths:      12,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save credit request")
	})

	t.Run("audit and publish failures do not fail the submission", func(t *testing.T) {
		f := newSubmitFixture()
		profile := newIndividualProfile()
		require.NoError(t, f.individuals.Save(context.Background(), profile))
		f.audit.recordErr = fmt.Errorf("db down")
		f.publisher.publishErr = fmt.Errorf("broker down")

		resp, err := f.uc.Execute(context.Background(), dto.SubmitCreditRequestRequest{
			ApplicantType:   "individual",
			SubjectID:       profile.ID(),
			RequestedAmount: decimal.NewFromInt(150_000),
			TermMonths:      24,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Score)
	})
}
