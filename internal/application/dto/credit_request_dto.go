package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/model"
)

// SubmitCreditRequestRequest is the input DTO for submitting a credit request.
type SubmitCreditRequestRequest struct {
	ApplicantType   string          `json:"applicant_type"`
	SubjectID       uuid.UUID       `json:"subject_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	TermMonths      int             `json:"term_months"`
	Purpose         string          `json:"purpose"`
}

// GetCreditRequestRequest is the input DTO for retrieving a credit request.
type GetCreditRequestRequest struct {
	RequestID uuid.UUID `json:"request_id"`
}

// CreditRequestResponse is the output DTO for credit request operations.
type CreditRequestResponse struct {
	ID              uuid.UUID   `json:"id"`
	ApplicantType   string      `json:"applicant_type"`
	SubjectID       uuid.UUID   `json:"subject_id"`
	RequestedAmount string      `json:"requested_amount"`
	TermMonths      int         `json:"term_months"`
	Purpose         string      `json:"purpose"`
	Status          string      `json:"status"`
	Score           *int        `json:"score,omitempty"`
	Explanation     []FactorDTO `json:"explanation,omitempty"`
	ModelVersion    string      `json:"model_version,omitempty"`
	ScoredAt        *time.Time  `json:"scored_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// FromCreditRequest maps a credit request aggregate to its response DTO.
func FromCreditRequest(r *model.CreditRequest) CreditRequestResponse {
	var factors []FactorDTO
	for _, f := range r.Explanation() {
		factors = append(factors, FactorDTO{Feature: f.Feature, Impact: f.Impact, Reason: f.Reason})
	}
	return CreditRequestResponse{
		ID:              r.ID(),
		ApplicantType:   r.ApplicantType().String(),
		SubjectID:       r.SubjectID(),
		RequestedAmount: r.RequestedAmount().String(),
		TermMonths:      r.TermMonths(),
		Purpose:         r.Purpose(),
		Status:          r.Status().String(),
		Score:           r.Score(),
		Explanation:     factors,
		ModelVersion:    r.ModelVersion(),
		ScoredAt:        r.ScoredAt(),
		CreatedAt:       r.CreatedAt(),
	}
}
