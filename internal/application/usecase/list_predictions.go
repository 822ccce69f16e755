package usecase

import (
	"context"
	"fmt"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/dto"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
)

const (
	defaultPredictionPageSize = 50
	maxPredictionPageSize     = 500
)

// ListPredictions pages through the audit log for one subject, newest first.
type ListPredictions struct {
	audit port.PredictionLogRepository
}

// NewListPredictions creates a new ListPredictions use case.
func NewListPredictions(audit port.PredictionLogRepository) *ListPredictions {
	return &ListPredictions{audit: audit}
}

// Execute fetches one page of audit entries.
func (uc *ListPredictions) Execute(ctx context.Context, req dto.ListPredictionsRequest) ([]dto.PredictionLogResponse, error) {
	subjectType, err := valueobject.ApplicantTypeFromString(req.SubjectType)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPredictionPageSize
	}
	if limit > maxPredictionPageSize {
		limit = maxPredictionPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	entries, err := uc.audit.FindBySubject(ctx, subjectType, req.SubjectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	out := make([]dto.PredictionLogResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.FromPredictionLog(entry))
	}
	return out, nil
}
