package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/event"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
)

func newPendingRequest(t *testing.T) *model.CreditRequest {
	t.Helper()
	r, err := model.NewCreditRequest(
		valueobject.ApplicantIndividual,
		uuid.New(),
		decimal.NewFromInt(150_000),
		24,
		"mortgage",
	)
	require.NoError(t, err)
	return r
}

func TestNewCreditRequest_Valid(t *testing.T) {
	r := newPendingRequest(t)

	assert.NotEqual(t, uuid.Nil, r.ID())
	assert.Equal(t, valueobject.StatusPending, r.Status())
	assert.Nil(t, r.Score())
	assert.Equal(t, 1, r.Version())
	assert.Empty(t, r.DomainEvents())
}

func TestNewCreditRequest_Validation(t *testing.T) {
	tests := []struct {
		name          string
		applicantType valueobject.ApplicantType
		subjectID     uuid.UUID
		amount        decimal.Decimal
		termMonths    int
		wantErr       string
	}{
		{
			name:       "zero applicant type",
			subjectID:  uuid.New(),
			amount:     decimal.NewFromInt(100),
			termMonths: 12,
			wantErr:    "unknown applicant type",
		},
		{
			name:          "nil subject ID",
			applicantType: valueobject.ApplicantIndividual,
			amount:        decimal.NewFromInt(100),
			termMonths:    12,
			wantErr:       "subject ID is required",
		},
		{
			name:          "zero amount",
			applicantType: valueobject.ApplicantCompany,
			subjectID:     uuid.New(),
			amount:        decimal.Zero,
			termMonths:    12,
			wantErr:       "requested amount must be positive",
		},
		{
			name:          "zero term",
			applicantType: valueobject.ApplicantIndividual,
			subjectID:     uuid.New(),
			amount:        decimal.NewFromInt(100),
			termMonths:    0,
			wantErr:       "term months must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewCreditRequest(tt.applicantType, tt.subjectID, tt.amount, tt.termMonths, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyScore_EmitsScoredEvent(t *testing.T) {
	r := newPendingRequest(t)

	explanation := valueobject.Explanation{
		{Feature: "debt_to_income", Impact: 12, Reason: "dti=0.10 very low"},
	}
	require.NoError(t, r.ApplyScore(74, explanation, "rule/v1"))

	require.NotNil(t, r.Score())
	assert.Equal(t, 74, *r.Score())
	assert.Equal(t, "rule/v1", r.ModelVersion())
	assert.NotNil(t, r.ScoredAt())
	assert.Equal(t, 2, r.Version())

	evts := r.DomainEvents()
	require.Len(t, evts, 1)
	scored, ok := evts[0].(event.CreditRequestScored)
	require.True(t, ok)
	assert.Equal(t, r.ID(), scored.RequestID)
	assert.Equal(t, 74, scored.Score)
	assert.Equal(t, "individual", scored.ApplicantType)
}

func TestApplyScore_LowScoreEmitsSecondEvent(t *testing.T) {
	r := newPendingRequest(t)

	require.NoError(t, r.ApplyScore(12, nil, "rule/v1"))

	evts := r.DomainEvents()
	require.Len(t, evts, 2)
	low, ok := evts[1].(event.LowScoreDetected)
	require.True(t, ok)
	assert.Equal(t, 12, low.Score)
	assert.Equal(t, event.LowScoreThreshold, low.Threshold)
}

func TestApplyScore_Validation(t *testing.T) {
	r := newPendingRequest(t)

	assert.Error(t, r.ApplyScore(-1, nil, "rule/v1"))
	assert.Error(t, r.ApplyScore(101, nil, "rule/v1"))
	assert.Error(t, r.ApplyScore(50, nil, ""))
	assert.Empty(t, r.DomainEvents())
}

func TestApplyScore_ExplanationIsCopied(t *testing.T) {
	r := newPendingRequest(t)

	explanation := valueobject.Explanation{
		{Feature: "profitability", Impact: 5, Reason: "profitability=0.04 low positive"},
	}
	require.NoError(t, r.ApplyScore(65, explanation, "rule/v1"))

	explanation[0].Impact = 999
	assert.Equal(t, 5, r.Explanation()[0].Impact)
}

func TestApproveReject(t *testing.T) {
	r := newPendingRequest(t)

	// Cannot approve before scoring.
	require.Error(t, r.Approve())

	require.NoError(t, r.ApplyScore(74, nil, "rule/v1"))
	require.NoError(t, r.Approve())
	assert.Equal(t, valueobject.StatusApproved, r.Status())

	// Terminal: no further transitions.
	assert.ErrorIs(t, r.Reject(), valueobject.ErrInvalidStatusTransition)
	assert.ErrorIs(t, r.Approve(), valueobject.ErrInvalidStatusTransition)
}

func TestReject(t *testing.T) {
	r := newPendingRequest(t)

	require.NoError(t, r.Reject())
	assert.Equal(t, valueobject.StatusRejected, r.Status())
}

func TestClearEvents(t *testing.T) {
	r := newPendingRequest(t)
	require.NoError(t, r.ApplyScore(74, nil, "rule/v1"))

	r.ClearEvents()
	assert.Empty(t, r.DomainEvents())
}

func TestReconstructCreditRequest_NoEvents(t *testing.T) {
	score := 40
	r := model.ReconstructCreditRequest(
		uuid.New(),
		valueobject.ApplicantCompany,
		uuid.New(),
		decimal.NewFromInt(1_000_000),
		36,
		"equipment",
		valueobject.StatusPending,
		&score,
		nil,
		"model:linear-2024-09",
		nil,
		3,
		time.Now().UTC(), time.Now().UTC(),
	)

	assert.Empty(t, r.DomainEvents())
	assert.Equal(t, 3, r.Version())
	assert.Equal(t, "model:linear-2024-09", r.ModelVersion())
}
