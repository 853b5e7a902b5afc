package handler

import (
	"context"
	"errors"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	authv1 "account-console/backend/api/auth/v1"
	"account-console/backend/internal/identity/service"
)

// AuthServer implements AuthService (login with realm username and password).
type AuthServer struct {
	authv1.UnimplementedAuthServiceServer
	auth *service.AuthService
}

// NewAuthServer returns a new Auth gRPC server. Pass nil for stub (Unimplemented).
func NewAuthServer(auth *service.AuthService) *AuthServer {
	return &AuthServer{auth: auth}
}

// Login authenticates the user and returns an access token.
func (s *AuthServer) Login(ctx context.Context, req *authv1.LoginRequest) (*authv1.LoginResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method Login not implemented")
	}
	if req.GetRealm() == "" || req.GetUsername() == "" || req.GetPassword() == "" {
		return nil, status.Error(codes.InvalidArgument, "realm, username and password are required")
	}
	res, err := s.auth.Login(ctx, req.GetRealm(), req.GetUsername(), req.GetPassword())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		log.Printf("auth: login: %v", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &authv1.LoginResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   timestamppb.New(res.ExpiresAt),
		UserId:      res.UserID,
		RealmId:     res.RealmID,
	}, nil
}
