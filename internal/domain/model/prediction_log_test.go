package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
)

func TestNewPredictionLog(t *testing.T) {
	requestID := uuid.New()
	explanation := valueobject.Explanation{
		{Feature: "debt_to_income", Impact: 12, Reason: "dti=0.10 very low"},
	}
	features := service.FeatureSet{"yearly_income": 1_000_000.0}

	entry, err := model.NewPredictionLog(
		valueobject.ApplicantIndividual,
		uuid.New(),
		&requestID,
		74,
		"rule/v1",
		explanation,
		features,
		map[string]any{"origin": "analyst_review"},
	)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, entry.ID())
	assert.Equal(t, 74, entry.Score())
	require.NotNil(t, entry.RequestID())
	assert.Equal(t, requestID, *entry.RequestID())
	assert.False(t, entry.CreatedAt().IsZero())
	assert.Equal(t, "analyst_review", entry.Metadata()["origin"])

	// Stateless scoring produces entries with no request attached.
	entry, err = model.NewPredictionLog(
		valueobject.ApplicantCompany, uuid.New(), nil, 65, "rule/v1", nil, nil, nil,
	)
	require.NoError(t, err)
	assert.Nil(t, entry.RequestID())

	// The subject reference is weak: manual scorings carry no subject id at
	// all, and the entry is created regardless.
	entry, err = model.NewPredictionLog(
		valueobject.ApplicantIndividual, uuid.Nil, nil, 50, "rule/v1", nil, nil, nil,
	)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, entry.SubjectID())
}

func TestNewPredictionLog_Validation(t *testing.T) {
	_, err := model.NewPredictionLog(
		valueobject.ApplicantType{}, uuid.New(), nil, 50, "rule/v1", nil, nil, nil,
	)
	assert.ErrorIs(t, err, valueobject.ErrUnknownApplicantType)

	_, err = model.NewPredictionLog(
		valueobject.ApplicantIndividual, uuid.New(), nil, 101, "rule/v1", nil, nil, nil,
	)
	assert.Error(t, err)

	_, err = model.NewPredictionLog(
		valueobject.ApplicantIndividual, uuid.New(), nil, 50, "", nil, nil, nil,
	)
	assert.Error(t, err)
}

func TestExternalRecord(t *testing.T) {
	fetchedAt := time.Now().UTC().Add(-2 * time.Hour)
	rec, err := model.NewExternalRecord(model.SourceSoliq, "305123456", map[string]any{
		"declared_income": 5_000_000.0,
	}, fetchedAt)
	require.NoError(t, err)

	assert.True(t, rec.StaleAt(time.Now().UTC(), time.Hour))
	assert.False(t, rec.StaleAt(time.Now().UTC(), 3*time.Hour))

	_, err = model.NewExternalRecord("census", "x", nil, fetchedAt)
	assert.Error(t, err)

	_, err = model.NewExternalRecord(model.SourceKadastr, "", nil, fetchedAt)
	assert.Error(t, err)
}
