package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Nozima-Rustamova/credit-ML/internal/application/dto"
	"github.com/Nozima-Rustamova/credit-ML/internal/application/usecase"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/port"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
	"github.com/Nozima-Rustamova/credit-ML/internal/domain/valueobject"
	"github.com/Nozima-Rustamova/credit-ML/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that ScoringServiceHandler implements ScoringServiceServer.
var _ ScoringServiceServer = (*ScoringServiceHandler)(nil)

// ScoringServiceHandler implements the gRPC ScoringServiceServer interface.
type ScoringServiceHandler struct {
	UnimplementedScoringServiceServer
	scoreIndividual     *usecase.ScoreIndividual
	scoreCompany        *usecase.ScoreCompany
	submitCreditRequest *usecase.SubmitCreditRequest
	getCreditRequest    *usecase.GetCreditRequest
	listPredictions     *usecase.ListPredictions
	logger              *slog.Logger
}

// NewScoringServiceHandler creates a new gRPC handler.
func NewScoringServiceHandler(
	scoreIndividual *usecase.ScoreIndividual,
	scoreCompany *usecase.ScoreCompany,
	submitCreditRequest *usecase.SubmitCreditRequest,
	getCreditRequest *usecase.GetCreditRequest,
	listPredictions *usecase.ListPredictions,
	logger *slog.Logger,
) *ScoringServiceHandler {
	return &ScoringServiceHandler{
		scoreIndividual:     scoreIndividual,
		scoreCompany:        scoreCompany,
		submitCreditRequest: submitCreditRequest,
		getCreditRequest:    getCreditRequest,
		listPredictions:     listPredictions,
		logger:              logger,
	}
}

// Proto-aligned request/response message types.

// ScoreIndividualRequest represents the proto ScoreIndividualRequest message.
type ScoreIndividualRequest struct {
	SubjectID string                 `json:"subject_id"`
	Features  map[string]interface{} `json:"features"`
	Context   map[string]interface{} `json:"context"`
}

// ScoreCompanyRequest represents the proto ScoreCompanyRequest message.
type ScoreCompanyRequest struct {
	SubjectID string                 `json:"subject_id"`
	Features  map[string]interface{} `json:"features"`
	Context   map[string]interface{} `json:"context"`
}

// FactorMsg represents the proto Factor message, one explanation entry.
type FactorMsg struct {
	Feature string `json:"feature"`
	Impact  int32  `json:"impact"`
	Reason  string `json:"reason"`
}

// ScoreResponse represents the proto ScoreResponse message.
type ScoreResponse struct {
	Score        int32        `json:"score"`
	Explanation  []*FactorMsg `json:"explanation"`
	ModelVersion string       `json:"model_version"`
}

// SubmitCreditRequestRequest represents the proto SubmitCreditRequestRequest message.
type SubmitCreditRequestRequest struct {
	ApplicantType   string `json:"applicant_type"`
	SubjectID       string `json:"subject_id"`
	RequestedAmount string `json:"requested_amount"`
	TermMonths      int32  `json:"term_months"`
	Purpose         string `json:"purpose"`
}

// CreditRequestMsg represents the proto CreditRequest message.
type CreditRequestMsg struct {
	ID              string       `json:"id"`
	ApplicantType   string       `json:"applicant_type"`
	SubjectID       string       `json:"subject_id"`
	RequestedAmount string       `json:"requested_amount"`
	TermMonths      int32        `json:"term_months"`
	Purpose         string       `json:"purpose"`
	Status          string       `json:"status"`
	Score           int32        `json:"score"`
	Scored          bool         `json:"scored"`
	Explanation     []*FactorMsg `json:"explanation"`
	ModelVersion    string       `json:"model_version"`
}

// SubmitCreditRequestResponse represents the proto SubmitCreditRequestResponse message.
type SubmitCreditRequestResponse struct {
	Request *CreditRequestMsg `json:"request"`
}

// GetCreditRequestRequest represents the proto GetCreditRequestRequest message.
type GetCreditRequestRequest struct {
	ID string `json:"id"`
}

// GetCreditRequestResponse represents the proto GetCreditRequestResponse message.
type GetCreditRequestResponse struct {
	Request *CreditRequestMsg `json:"request"`
}

// ListPredictionsRequest represents the proto ListPredictionsRequest message.
type ListPredictionsRequest struct {
	SubjectType string `json:"subject_type"`
	SubjectID   string `json:"subject_id"`
	Limit       int32  `json:"limit"`
	Offset      int32  `json:"offset"`
}

// PredictionLogMsg represents the proto PredictionLog message.
type PredictionLogMsg struct {
	ID           string       `json:"id"`
	SubjectType  string       `json:"subject_type"`
	SubjectID    string       `json:"subject_id"`
	RequestID    string       `json:"request_id,omitempty"`
	Score        int32        `json:"score"`
	ModelVersion string       `json:"model_version"`
	Explanation  []*FactorMsg `json:"explanation"`
	CreatedAt    string       `json:"created_at"`
}

// ListPredictionsResponse represents the proto ListPredictionsResponse message.
type ListPredictionsResponse struct {
	Predictions []*PredictionLogMsg `json:"predictions"`
}

// ScoreIndividual handles a stateless individual scoring request.
func (h *ScoringServiceHandler) ScoreIndividual(ctx context.Context, req *ScoreIndividualRequest) (*ScoreResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	subjectID, err := parseOptionalUUID(req.SubjectID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid subject_id: %v", err)
	}

	result, err := h.scoreIndividual.Execute(ctx, dto.ScoreRequest{
		SubjectID: subjectID,
		Features:  service.FeatureSet(req.Features),
		Context:   req.Context,
	})
	if err != nil {
		h.logger.Error("failed to score individual",
			slog.String("subject_id", req.SubjectID),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return toScoreResponse(result), nil
}

// ScoreCompany handles a stateless company scoring request.
func (h *ScoringServiceHandler) ScoreCompany(ctx context.Context, req *ScoreCompanyRequest) (*ScoreResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	subjectID, err := parseOptionalUUID(req.SubjectID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid subject_id: %v", err)
	}

	result, err := h.scoreCompany.Execute(ctx, dto.ScoreRequest{
		SubjectID: subjectID,
		Features:  service.FeatureSet(req.Features),
		Context:   req.Context,
	})
	if err != nil {
		h.logger.Error("failed to score company",
			slog.String("subject_id", req.SubjectID),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return toScoreResponse(result), nil
}

// SubmitCreditRequest handles credit request submission and synchronous scoring.
func (h *ScoringServiceHandler) SubmitCreditRequest(ctx context.Context, req *SubmitCreditRequestRequest) (*SubmitCreditRequestResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if _, err := valueobject.ApplicantTypeFromString(req.ApplicantType); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid applicant_type: %v", err)
	}

	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid subject_id: %v", err)
	}

	requestedAmount, err := decimal.NewFromString(req.RequestedAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid requested_amount: %v", err)
	}

	h.logger.Info("submitting credit request",
		slog.String("applicant_type", req.ApplicantType),
		slog.String("subject_id", subjectID.String()),
	)

	result, err := h.submitCreditRequest.Execute(ctx, dto.SubmitCreditRequestRequest{
		ApplicantType:   req.ApplicantType,
		SubjectID:       subjectID,
		RequestedAmount: requestedAmount,
		TermMonths:      int(req.TermMonths),
		Purpose:         req.Purpose,
	})
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "profile %s not found", subjectID)
		}
		h.logger.Error("failed to submit credit request",
			slog.String("subject_id", subjectID.String()),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &SubmitCreditRequestResponse{Request: toCreditRequestMsg(result)}, nil
}

// GetCreditRequest handles a credit request lookup.
func (h *ScoringServiceHandler) GetCreditRequest(ctx context.Context, req *GetCreditRequestRequest) (*GetCreditRequestResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	requestID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getCreditRequest.Execute(ctx, dto.GetCreditRequestRequest{RequestID: requestID})
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "credit request %s not found", requestID)
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetCreditRequestResponse{Request: toCreditRequestMsg(result)}, nil
}

// ListPredictions handles an audit log page request.
func (h *ScoringServiceHandler) ListPredictions(ctx context.Context, req *ListPredictionsRequest) (*ListPredictionsResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAuditor); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if _, err := valueobject.ApplicantTypeFromString(req.SubjectType); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid subject_type: %v", err)
	}

	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid subject_id: %v", err)
	}

	result, err := h.listPredictions.Execute(ctx, dto.ListPredictionsRequest{
		SubjectType: req.SubjectType,
		SubjectID:   subjectID,
		Limit:       int(req.Limit),
		Offset:      int(req.Offset),
	})
	if err != nil {
		h.logger.Error("failed to list predictions",
			slog.String("subject_id", subjectID.String()),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	predictions := make([]*PredictionLogMsg, 0, len(result))
	for _, entry := range result {
		predictions = append(predictions, toPredictionLogMsg(entry))
	}
	return &ListPredictionsResponse{Predictions: predictions}, nil
}

// parseOptionalUUID parses a UUID string, treating an empty string as uuid.Nil.
func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

func toFactorMsgs(factors []dto.FactorDTO) []*FactorMsg {
	msgs := make([]*FactorMsg, 0, len(factors))
	for _, f := range factors {
		msgs = append(msgs, &FactorMsg{Feature: f.Feature, Impact: int32(f.Impact), Reason: f.Reason})
	}
	return msgs
}

func toScoreResponse(r dto.ScoreResponse) *ScoreResponse {
	return &ScoreResponse{
		Score:        int32(r.Score),
		Explanation:  toFactorMsgs(r.Explanation),
		ModelVersion: r.ModelVersion,
	}
}

func toCreditRequestMsg(r dto.CreditRequestResponse) *CreditRequestMsg {
	msg := &CreditRequestMsg{
		ID:              r.ID.String(),
		ApplicantType:   r.ApplicantType,
		SubjectID:       r.SubjectID.String(),
		RequestedAmount: r.RequestedAmount,
		TermMonths:      int32(r.TermMonths),
		Purpose:         r.Purpose,
		Status:          r.Status,
		Explanation:     toFactorMsgs(r.Explanation),
		ModelVersion:    r.ModelVersion,
	}
	if r.Score != nil {
		msg.Score = int32(*r.Score)
		msg.Scored = true
	}
	return msg
}

func toPredictionLogMsg(entry dto.PredictionLogResponse) *PredictionLogMsg {
	msg := &PredictionLogMsg{
		ID:           entry.ID.String(),
		SubjectType:  entry.SubjectType,
		SubjectID:    entry.SubjectID.String(),
		Score:        int32(entry.Score),
		ModelVersion: entry.ModelVersion,
		Explanation:  toFactorMsgs(entry.Explanation),
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.RequestID != nil {
		msg.RequestID = entry.RequestID.String()
	}
	return msg
}
