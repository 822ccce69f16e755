package service_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
)

type stubProbability struct {
	p   float64
	err error
}

func (s stubProbability) PredictProbability(_ []float64) (float64, error) {
	return s.p, s.err
}

type stubValue struct {
	v   float64
	err error
}

func (s stubValue) Predict(_ []float64) (float64, error) {
	return s.v, s.err
}

func individualFeatures() service.FeatureSet {
	return service.FeatureSet{
		"yearly_income":    1_000_000,
		"existing_debt":    100_000,
		"requested_amount": 150_000,
		"collateral_value": 200_000,
	}
}

func TestScoreIndividual_ProbabilityModel(t *testing.T) {
	model := service.NewProbabilityModel("logreg-2024-09", stubProbability{p: 0.83})
	scorer := service.NewRiskScorer(model, service.AbsentModel, nil)

	pred := scorer.ScoreIndividual(individualFeatures())

	assert.Equal(t, 83, pred.Score)
	assert.Equal(t, "model:logreg-2024-09", pred.ModelVersion)
	require.Len(t, pred.Explanation, 1)
	assert.Equal(t, "model", pred.Explanation[0].Feature)
	assert.Equal(t, 0, pred.Explanation[0].Impact)
}

func TestScoreCompany_ValueModelIsScaled(t *testing.T) {
	model := service.NewValueModel("linear-2024-09", stubValue{v: 72.4})
	scorer := service.NewRiskScorer(service.AbsentModel, model, nil)

	pred := scorer.ScoreCompany(service.FeatureSet{
		"revenue":     5_000_000,
		"net_income":  200_000,
		"assets":      10_000_000,
		"liabilities": 2_000_000,
	})

	assert.Equal(t, 72, pred.Score)
	assert.Equal(t, "model:linear-2024-09", pred.ModelVersion)
}

func TestScoreIndividual_ValueModelClamps(t *testing.T) {
	model := service.NewValueModel("linear", stubValue{v: 250})
	scorer := service.NewRiskScorer(model, service.AbsentModel, nil)

	pred := scorer.ScoreIndividual(individualFeatures())
	assert.Equal(t, 100, pred.Score)

	model = service.NewValueModel("linear", stubValue{v: -40})
	scorer = service.NewRiskScorer(model, service.AbsentModel, nil)

	pred = scorer.ScoreIndividual(individualFeatures())
	assert.Equal(t, 0, pred.Score)
}

func TestScoreIndividual_ModelErrorFallsBackToRules(t *testing.T) {
	model := service.NewProbabilityModel("flaky", stubProbability{err: errors.New("inference timed out")})
	scorer := service.NewRiskScorer(model, service.AbsentModel, nil)

	pred := scorer.ScoreIndividual(individualFeatures())

	// Indistinguishable from a plain rule-based run.
	want := service.NewRuleBasedScorer(nil).ScoreIndividual(individualFeatures())
	assert.Equal(t, want.Score, pred.Score)
	assert.Equal(t, "rule/v1", pred.ModelVersion)
	assert.Equal(t, want.Explanation, pred.Explanation)
}

func TestScoreIndividual_ModelNaNFallsBackToRules(t *testing.T) {
	model := service.NewProbabilityModel("broken", stubProbability{p: math.NaN()})
	scorer := service.NewRiskScorer(model, service.AbsentModel, nil)

	pred := scorer.ScoreIndividual(individualFeatures())
	assert.Equal(t, "rule/v1", pred.ModelVersion)

	model = service.NewProbabilityModel("broken", stubProbability{p: math.Inf(1)})
	scorer = service.NewRiskScorer(model, service.AbsentModel, nil)

	pred = scorer.ScoreIndividual(individualFeatures())
	assert.Equal(t, "rule/v1", pred.ModelVersion)
}

func TestScoreIndividual_ProbabilityClampedToUnitInterval(t *testing.T) {
	model := service.NewProbabilityModel("hot", stubProbability{p: 1.7})
	scorer := service.NewRiskScorer(model, service.AbsentModel, nil)

	pred := scorer.ScoreIndividual(individualFeatures())
	assert.Equal(t, 100, pred.Score)
}

func TestScoreCompany_AbsentModelUsesRules(t *testing.T) {
	scorer := service.NewRiskScorer(service.AbsentModel, service.AbsentModel, nil)

	pred := scorer.ScoreCompany(service.FeatureSet{
		"revenue":    1_000_000,
		"net_income": 150_000,
	})
	assert.Equal(t, "rule/v1", pred.ModelVersion)
}

func TestModelsArePerApplicantType(t *testing.T) {
	individualModel := service.NewProbabilityModel("ind", stubProbability{p: 0.9})
	scorer := service.NewRiskScorer(individualModel, service.AbsentModel, nil)

	ind := scorer.ScoreIndividual(individualFeatures())
	assert.Equal(t, "model:ind", ind.ModelVersion)

	co := scorer.ScoreCompany(service.FeatureSet{"revenue": 1_000_000})
	assert.Equal(t, "rule/v1", co.ModelVersion)
}

func TestVectors(t *testing.T) {
	iv := service.IndividualVector(service.FeatureSet{
		"yearly_income":        1_000_000,
		"existing_debt":        100_000,
		"requested_amount":     150_000,
		"collateral_value":     200_000,
		"credit_history_score": 640,
		"criminal_history":     true,
	})
	require.Len(t, iv, 8)
	assert.Equal(t, 1_000_000.0, iv[0])
	assert.Equal(t, 1.0, iv[5])    // criminal flag
	assert.Equal(t, 0.1, iv[6])    // dti
	assert.InDelta(t, 200_000.0/150_000.0, iv[7], 1e-9)

	cv := service.CompanyVector(service.FeatureSet{
		"revenue":     5_000_000,
		"net_income":  200_000,
		"assets":      10_000_000,
		"liabilities": 2_000_000,
	})
	require.Len(t, cv, 6)
	assert.Equal(t, 0.04, cv[4]) // profit margin
	assert.Equal(t, 0.25, cv[5]) // leverage
}
