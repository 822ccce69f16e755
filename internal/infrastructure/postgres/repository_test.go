package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
)

func TestConstructors(t *testing.T) {
	assert.NotNil(t, NewCreditRequestRepository(nil))
	assert.NotNil(t, NewIndividualProfileRepository(nil))
	assert.NotNil(t, NewCompanyProfileRepository(nil))
	assert.NotNil(t, NewPredictionLogRepository(nil))
	assert.NotNil(t, NewExternalRecordRepository(nil))
}

func TestExplanationRoundTrip(t *testing.T) {
	explanation := valueobject.Explanation{
		{Feature: "debt_to_income", Impact: 12, Reason: "dti=0.10 very low"},
		{Feature: "criminal_history", Impact: -40, Reason: "criminal history present"},
	}

	raw, err := marshalExplanation(explanation)
	require.NoError(t, err)

	got, err := unmarshalExplanation(raw)
	require.NoError(t, err)
	assert.Equal(t, explanation, got)
}

func TestExplanationEmptyIsNull(t *testing.T) {
	raw, err := marshalExplanation(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	got, err := unmarshalExplanation(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(""))
	s := nullableString("rule/v1")
	require.NotNil(t, s)
	assert.Equal(t, "rule/v1", *s)

	assert.Equal(t, "", stringValue(nil))
	assert.Equal(t, "rule/v1", stringValue(s))
}
