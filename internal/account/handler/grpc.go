package handler

import (
	"context"
	"errors"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	accountv1 "account-console/backend/api/account/v1"
	"account-console/backend/internal/account/service"
	credentialdomain "account-console/backend/internal/credential/domain"
	"account-console/backend/internal/credential/passwordpolicy"
	"account-console/backend/internal/panel"
	"account-console/backend/internal/security"
	"account-console/backend/internal/server/interceptors"
)

// CredentialService is the account service used by the handler.
type CredentialService interface {
	GetSigningIn(ctx context.Context, realmID, userID string) ([]panel.Row, error)
	MoveCredential(ctx context.Context, realmID, userID string, t credentialdomain.TypeID, dir panel.Direction) ([]panel.Row, error)
	StartCredentialSetup(ctx context.Context, realmID, userID string, t credentialdomain.TypeID) (*service.SetupResult, error)
	CompleteOtpSetup(ctx context.Context, realmID, userID, setupID, code, label string) (*credentialdomain.Credential, error)
	CompleteRecoveryCodesSetup(ctx context.Context, realmID, userID, setupID string, confirmed bool) (*credentialdomain.Credential, error)
	UpdatePassword(ctx context.Context, realmID, userID, newPassword, confirmation string) error
	RemoveCredential(ctx context.Context, realmID, userID, credentialID string) error
}

// Server implements AccountService for the authenticated caller's own credentials.
type Server struct {
	accountv1.UnimplementedAccountServiceServer
	svc CredentialService
}

// NewServer returns a new Account gRPC server. Pass nil svc for stub (Unimplemented).
func NewServer(svc CredentialService) *Server {
	return &Server{svc: svc}
}

func (s *Server) caller(ctx context.Context, method string) (security.Identity, error) {
	if s.svc == nil {
		return security.Identity{}, status.Errorf(codes.Unimplemented, "method %s not implemented", method)
	}
	id, ok := interceptors.IdentityFrom(ctx)
	if !ok || id.UserID == "" || id.RealmID == "" {
		return security.Identity{}, status.Error(codes.Unauthenticated, "authentication required")
	}
	return id, nil
}

// GetSigningIn returns the caller's signing-in panel.
func (s *Server) GetSigningIn(ctx context.Context, req *accountv1.GetSigningInRequest) (*accountv1.GetSigningInResponse, error) {
	id, err := s.caller(ctx, "GetSigningIn")
	if err != nil {
		return nil, err
	}
	rows, err := s.svc.GetSigningIn(ctx, id.RealmID, id.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &accountv1.GetSigningInResponse{Rows: rowsToProto(rows)}, nil
}

// MoveCredential moves a credential type one position up or down.
func (s *Server) MoveCredential(ctx context.Context, req *accountv1.MoveCredentialRequest) (*accountv1.MoveCredentialResponse, error) {
	id, err := s.caller(ctx, "MoveCredential")
	if err != nil {
		return nil, err
	}
	t, err := credentialdomain.ParseTypeID(req.GetType())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	var dir panel.Direction
	switch req.GetDirection() {
	case accountv1.Direction_UP:
		dir = panel.Up
	case accountv1.Direction_DOWN:
		dir = panel.Down
	default:
		return nil, status.Errorf(codes.InvalidArgument, "direction must be %s or %s", accountv1.Direction_UP, accountv1.Direction_DOWN)
	}
	rows, err := s.svc.MoveCredential(ctx, id.RealmID, id.UserID, t, dir)
	if err != nil {
		return nil, toStatus(err)
	}
	return &accountv1.MoveCredentialResponse{Rows: rowsToProto(rows)}, nil
}

// StartCredentialSetup begins registering a credential type offered for creation.
func (s *Server) StartCredentialSetup(ctx context.Context, req *accountv1.StartCredentialSetupRequest) (*accountv1.StartCredentialSetupResponse, error) {
	id, err := s.caller(ctx, "StartCredentialSetup")
	if err != nil {
		return nil, err
	}
	t, err := credentialdomain.ParseTypeID(req.GetType())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := s.svc.StartCredentialSetup(ctx, id.RealmID, id.UserID, t)
	if err != nil {
		return nil, toStatus(err)
	}
	out := &accountv1.StartCredentialSetupResponse{
		SetupId:        res.SetupID,
		Type:           string(res.Type),
		RequiredAction: string(res.RequiredAction),
		PageTitle:      res.PageTitle,
		Secret:         res.Secret,
		OtpauthUrl:     res.OTPAuthURL,
		RecoveryCodes:  res.RecoveryCodes,
	}
	if !res.ExpiresAt.IsZero() {
		out.ExpiresAt = timestamppb.New(res.ExpiresAt)
	}
	return out, nil
}

// CompleteOtpSetup verifies the authenticator code and stores the otp credential.
func (s *Server) CompleteOtpSetup(ctx context.Context, req *accountv1.CompleteOtpSetupRequest) (*accountv1.CompleteOtpSetupResponse, error) {
	id, err := s.caller(ctx, "CompleteOtpSetup")
	if err != nil {
		return nil, err
	}
	if req.GetSetupId() == "" || req.GetCode() == "" {
		return nil, status.Error(codes.InvalidArgument, "setup_id and code are required")
	}
	c, err := s.svc.CompleteOtpSetup(ctx, id.RealmID, id.UserID, req.GetSetupId(), req.GetCode(), req.GetLabel())
	if err != nil {
		return nil, toStatus(err)
	}
	return &accountv1.CompleteOtpSetupResponse{Credential: credentialToProto(c)}, nil
}

// CompleteRecoveryCodesSetup stores the recovery codes once the caller confirmed saving them.
func (s *Server) CompleteRecoveryCodesSetup(ctx context.Context, req *accountv1.CompleteRecoveryCodesSetupRequest) (*accountv1.CompleteRecoveryCodesSetupResponse, error) {
	id, err := s.caller(ctx, "CompleteRecoveryCodesSetup")
	if err != nil {
		return nil, err
	}
	if req.GetSetupId() == "" {
		return nil, status.Error(codes.InvalidArgument, "setup_id is required")
	}
	c, err := s.svc.CompleteRecoveryCodesSetup(ctx, id.RealmID, id.UserID, req.GetSetupId(), req.GetConfirmed())
	if err != nil {
		return nil, toStatus(err)
	}
	return &accountv1.CompleteRecoveryCodesSetupResponse{Credential: credentialToProto(c)}, nil
}

// UpdatePassword sets or replaces the caller's password.
func (s *Server) UpdatePassword(ctx context.Context, req *accountv1.UpdatePasswordRequest) (*accountv1.UpdatePasswordResponse, error) {
	id, err := s.caller(ctx, "UpdatePassword")
	if err != nil {
		return nil, err
	}
	if err := s.svc.UpdatePassword(ctx, id.RealmID, id.UserID, req.GetNewPassword(), req.GetConfirmation()); err != nil {
		return nil, toStatus(err)
	}
	return &accountv1.UpdatePasswordResponse{}, nil
}

// RemoveCredential deletes one of the caller's removable credentials.
func (s *Server) RemoveCredential(ctx context.Context, req *accountv1.RemoveCredentialRequest) (*accountv1.RemoveCredentialResponse, error) {
	id, err := s.caller(ctx, "RemoveCredential")
	if err != nil {
		return nil, err
	}
	if req.GetCredentialId() == "" {
		return nil, status.Error(codes.InvalidArgument, "credential_id is required")
	}
	if err := s.svc.RemoveCredential(ctx, id.RealmID, id.UserID, req.GetCredentialId()); err != nil {
		return nil, toStatus(err)
	}
	return &accountv1.RemoveCredentialResponse{}, nil
}

func toStatus(err error) error {
	var violations *passwordpolicy.ViolationError
	switch {
	case errors.As(err, &violations):
		return status.Error(codes.InvalidArgument, violations.Error())
	case errors.Is(err, panel.ErrExecutionNotFound),
		errors.Is(err, service.ErrCreateNotOffered),
		errors.Is(err, service.ErrNotRemovable):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, panel.ErrNotReorderable),
		errors.Is(err, service.ErrInvalidOTPCode),
		errors.Is(err, service.ErrNotConfirmed),
		errors.Is(err, service.ErrPasswordConfirm),
		errors.Is(err, security.ErrEmptyPassword),
		errors.Is(err, security.ErrPasswordTooLong):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrCredentialNotFound),
		errors.Is(err, service.ErrSetupNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		log.Printf("account: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func rowsToProto(rows []panel.Row) []*accountv1.CredentialRow {
	out := make([]*accountv1.CredentialRow, 0, len(rows))
	for _, r := range rows {
		pr := &accountv1.CredentialRow{
			Type:         string(r.Type),
			Title:        r.Title,
			Configured:   r.Configured,
			Fixed:        r.Fixed,
			NotSetUpText: r.NotSetUpText,
			CreateAction: actionToProto(r.Create),
			UpdateAction: actionToProto(r.Update),
			Removable:    r.Removable,
		}
		for _, it := range r.Items {
			pr.Items = append(pr.Items, &accountv1.CredentialItem{CredentialId: it.CredentialID, Label: it.Label})
		}
		if r.Up != nil {
			pr.Up = &accountv1.Control{Enabled: r.Up.Enabled}
		}
		if r.Down != nil {
			pr.Down = &accountv1.Control{Enabled: r.Down.Enabled}
		}
		out = append(out, pr)
	}
	return out
}

func actionToProto(a *panel.Action) *accountv1.Action {
	if a == nil {
		return nil
	}
	return &accountv1.Action{RequiredAction: string(a.RequiredAction), PageTitle: a.PageTitle}
}

func credentialToProto(c *credentialdomain.Credential) *accountv1.Credential {
	if c == nil {
		return nil
	}
	out := &accountv1.Credential{Id: c.ID, Type: string(c.Type), Label: c.Label()}
	if !c.CreatedAt.IsZero() {
		out.CreatedAt = timestamppb.New(c.CreatedAt)
	}
	return out
}
