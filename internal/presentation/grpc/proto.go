package grpc

// proto.go defines the gRPC server interface derived from scoring/v1/scoring.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/Nozima-Rustamova/credit-ML/api/gen/go/scoring/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ScoringServiceServer is the server API for ScoringService.
type ScoringServiceServer interface {
	ScoreIndividual(context.Context, *ScoreIndividualRequest) (*ScoreResponse, error)
	ScoreCompany(context.Context, *ScoreCompanyRequest) (*ScoreResponse, error)
	SubmitCreditRequest(context.Context, *SubmitCreditRequestRequest) (*SubmitCreditRequestResponse, error)
	GetCreditRequest(context.Context, *GetCreditRequestRequest) (*GetCreditRequestResponse, error)
	ListPredictions(context.Context, *ListPredictionsRequest) (*ListPredictionsResponse, error)
	mustEmbedUnimplementedScoringServiceServer()
}

// UnimplementedScoringServiceServer provides forward-compatible default implementations.
type UnimplementedScoringServiceServer struct{}

func (UnimplementedScoringServiceServer) ScoreIndividual(context.Context, *ScoreIndividualRequest) (*ScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreIndividual not implemented")
}
func (UnimplementedScoringServiceServer) ScoreCompany(context.Context, *ScoreCompanyRequest) (*ScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreCompany not implemented")
}
func (UnimplementedScoringServiceServer) SubmitCreditRequest(context.Context, *SubmitCreditRequestRequest) (*SubmitCreditRequestResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitCreditRequest not implemented")
}
func (UnimplementedScoringServiceServer) GetCreditRequest(context.Context, *GetCreditRequestRequest) (*GetCreditRequestResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCreditRequest not implemented")
}
func (UnimplementedScoringServiceServer) ListPredictions(context.Context, *ListPredictionsRequest) (*ListPredictionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPredictions not implemented")
}
func (UnimplementedScoringServiceServer) mustEmbedUnimplementedScoringServiceServer() {}

// RegisterScoringServiceServer registers the ScoringServiceServer with the gRPC server.
func RegisterScoringServiceServer(s *grpclib.Server, srv ScoringServiceServer) {
	s.RegisterService(&_ScoringService_serviceDesc, srv)
}

var _ScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "scoring.v1.ScoringService",
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreIndividual", Handler: _ScoringService_ScoreIndividual_Handler},
		{MethodName: "ScoreCompany", Handler: _ScoringService_ScoreCompany_Handler},
		{MethodName: "SubmitCreditRequest", Handler: _ScoringService_SubmitCreditRequest_Handler},
		{MethodName: "GetCreditRequest", Handler: _ScoringService_GetCreditRequest_Handler},
		{MethodName: "ListPredictions", Handler: _ScoringService_ListPredictions_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _ScoringService_ScoreIndividual_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreIndividualRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).ScoreIndividual(ctx, req)
}

func _ScoringService_ScoreCompany_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreCompanyRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).ScoreCompany(ctx, req)
}

func _ScoringService_SubmitCreditRequest_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(SubmitCreditRequestRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).SubmitCreditRequest(ctx, req)
}

func _ScoringService_GetCreditRequest_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetCreditRequestRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).GetCreditRequest(ctx, req)
}

func _ScoringService_ListPredictions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListPredictionsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).ListPredictions(ctx, req)
}
