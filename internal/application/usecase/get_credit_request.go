package usecase

import (
	"context"
	"fmt"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/dto"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
)

// GetCreditRequest retrieves a single credit request by ID.
type GetCreditRequest struct {
	requests port.CreditRequestRepository
}

// NewGetCreditRequest creates a new GetCreditRequest use case.
func NewGetCreditRequest(requests port.CreditRequestRepository) *GetCreditRequest {
	return &GetCreditRequest{requests: requests}
}

// Execute fetches the request.
func (uc *GetCreditRequest) Execute(ctx context.Context, req dto.GetCreditRequestRequest) (dto.CreditRequestResponse, error) {
	request, err := uc.requests.FindByID(ctx, req.RequestID)
	if err != nil {
		return dto.CreditRequestResponse{}, fmt.Errorf("failed to load credit request: %w", err)
	}
	return dto.FromCreditRequest(request), nil
}
