package service

import "math"

// ProbabilityPredictor produces a default probability in [0,1] for a fixed-order
// feature vector.
type ProbabilityPredictor interface {
	PredictProbability(vector []float64) (float64, error)
}

// ValuePredictor produces a raw predicted value for a fixed-order feature
// vector. The engine coerces the value to a probability by dividing by 100
// and clamping.
type ValuePredictor interface {
	Predict(vector []float64) (float64, error)
}

// Model is a tagged capability around an optional pre-trained statistical
// model. Exactly one of the two predictor variants is set, or neither
// (absent). Models are loaded once at startup and never change afterwards,
// so a Model value is safe to share across goroutines.
type Model struct {
	id          string
	probability ProbabilityPredictor
	value       ValuePredictor
}

// AbsentModel is the zero Model: no statistical model available.
var AbsentModel = Model{}

// NewProbabilityModel wraps a probability-producing model.
func NewProbabilityModel(id string, p ProbabilityPredictor) Model {
	return Model{id: id, probability: p}
}

// NewValueModel wraps a predict-only model.
func NewValueModel(id string, v ValuePredictor) Model {
	return Model{id: id, value: v}
}

// ID returns the opaque model identifier used in the model version string.
func (m Model) ID() string {
	return m.id
}

// IsAbsent reports whether no statistical model is configured.
func (m Model) IsAbsent() bool {
	return m.probability == nil && m.value == nil
}

// probabilityFor dispatches to whichever predictor variant is set and
// normalizes the result to a probability in [0,1]. The boolean is false when
// the model is absent, inference fails, or the output is unusable.
func (m Model) probabilityFor(vector []float64) (float64, bool) {
	var (
		p   float64
		err error
	)

	switch {
	case m.probability != nil:
		p, err = m.probability.PredictProbability(vector)
	case m.value != nil:
		p, err = m.value.Predict(vector)
		p = p / 100
	default:
		return 0, false
	}

	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}

	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p, true
}
