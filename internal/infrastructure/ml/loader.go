package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
)

// modelFile is the on-disk JSON format for model parameters. Files are
// produced by the offline training pipeline.
type modelFile struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// LoadModel reads model parameters from a JSON file. An empty path is the
// normal no-model case and yields the absent model, meaning the rule engine
// scores that applicant type alone.
func LoadModel(path string) (service.Model, error) {
	if path == "" {
		return service.AbsentModel, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return service.AbsentModel, fmt.Errorf("ml: failed to read model file: %w", err)
	}

	var mf modelFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return service.AbsentModel, fmt.Errorf("ml: failed to parse model file %s: %w", path, err)
	}
	if mf.ID == "" {
		return service.AbsentModel, fmt.Errorf("ml: model file %s has no id", path)
	}
	if len(mf.Weights) == 0 {
		return service.AbsentModel, fmt.Errorf("ml: model file %s has no weights", path)
	}

	switch mf.Kind {
	case "logistic":
		return service.NewProbabilityModel(mf.ID, &logisticModel{intercept: mf.Intercept, weights: mf.Weights}), nil
	case "linear":
		return service.NewValueModel(mf.ID, &linearModel{intercept: mf.Intercept, weights: mf.Weights}), nil
	default:
		return service.AbsentModel, fmt.Errorf("ml: unknown model kind %q in %s", mf.Kind, path)
	}
}

// logisticModel is a logistic regression over the feature vector, producing
// a default probability in [0, 1].
type logisticModel struct {
	intercept float64
	weights   []float64
}

func (m *logisticModel) PredictProbability(vector []float64) (float64, error) {
	z, err := dot(m.intercept, m.weights, vector)
	if err != nil {
		return 0, err
	}
	return 1.0 / (1.0 + math.Exp(-z)), nil
}

// linearModel is a linear regression producing a raw score value.
type linearModel struct {
	intercept float64
	weights   []float64
}

func (m *linearModel) Predict(vector []float64) (float64, error) {
	return dot(m.intercept, m.weights, vector)
}

func dot(intercept float64, weights, vector []float64) (float64, error) {
	if len(vector) != len(weights) {
		return 0, fmt.Errorf("ml: feature vector has %d entries, model expects %d", len(vector), len(weights))
	}
	z := intercept
	for i, w := range weights {
		z += w * vector[i]
	}
	return z, nil
}
