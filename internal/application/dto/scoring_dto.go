package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
)

// ScoreRequest is the input DTO for the stateless scoring use cases. The
// subject ID names the applicant being scored so the prediction can be
// audited against them.
type ScoreRequest struct {
	SubjectID uuid.UUID          `json:"subject_id"`
	Features  service.FeatureSet `json:"features"`
	Context   map[string]any     `json:"context,omitempty"`
}

// FactorDTO is a single explanation entry.
type FactorDTO struct {
	Feature string `json:"feature"`
	Impact  int    `json:"impact"`
	Reason  string `json:"reason"`
}

// ScoreResponse is the output DTO for every scoring operation.
type ScoreResponse struct {
	Score        int         `json:"score"`
	Explanation  []FactorDTO `json:"explanation"`
	ModelVersion string      `json:"model_version"`
}

// FromPrediction maps an engine prediction to the response DTO.
func FromPrediction(p service.Prediction) ScoreResponse {
	factors := make([]FactorDTO, 0, len(p.Explanation))
	for _, f := range p.Explanation {
		factors = append(factors, FactorDTO{Feature: f.Feature, Impact: f.Impact, Reason: f.Reason})
	}
	return ScoreResponse{
		Score:        p.Score,
		Explanation:  factors,
		ModelVersion: p.ModelVersion,
	}
}

// ListPredictionsRequest pages through the audit log for one subject.
type ListPredictionsRequest struct {
	SubjectType string    `json:"subject_type"`
	SubjectID   uuid.UUID `json:"subject_id"`
	Limit       int       `json:"limit"`
	Offset      int       `json:"offset"`
}

// PredictionLogResponse is one audit entry.
type PredictionLogResponse struct {
	ID           uuid.UUID          `json:"id"`
	SubjectType  string             `json:"subject_type"`
	SubjectID    uuid.UUID          `json:"subject_id"`
	RequestID    *uuid.UUID         `json:"request_id,omitempty"`
	Score        int                `json:"score"`
	ModelVersion string             `json:"model_version"`
	Explanation  []FactorDTO        `json:"explanation"`
	Features     service.FeatureSet `json:"features"`
	Metadata     map[string]any     `json:"metadata,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// FromPredictionLog maps an audit entry to its response DTO.
func FromPredictionLog(l *model.PredictionLog) PredictionLogResponse {
	factors := make([]FactorDTO, 0, len(l.Explanation()))
	for _, f := range l.Explanation() {
		factors = append(factors, FactorDTO{Feature: f.Feature, Impact: f.Impact, Reason: f.Reason})
	}
	return PredictionLogResponse{
		ID:           l.ID(),
		SubjectType:  l.SubjectType().String(),
		SubjectID:    l.SubjectID(),
		RequestID:    l.RequestID(),
		Score:        l.Score(),
		ModelVersion: l.ModelVersion(),
		Explanation:  factors,
		Features:     l.Features(),
		Metadata:     l.Metadata(),
		CreatedAt:    l.CreatedAt(),
	}
}
