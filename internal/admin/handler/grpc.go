package handler

import (
	"context"
	"errors"
	"log"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	adminv1 "account-console/backend/api/admin/v1"
	"account-console/backend/internal/admin/service"
	auditdomain "account-console/backend/internal/audit/domain"
	authflowdomain "account-console/backend/internal/authflow/domain"
	credentialdomain "account-console/backend/internal/credential/domain"
	"account-console/backend/internal/platform/rbac"
	policydomain "account-console/backend/internal/policy/domain"
)

// AdminService is the realm administration service used by the handler.
type AdminService interface {
	ListUserCredentials(ctx context.Context, realmID, userID string) ([]*credentialdomain.Credential, error)
	DeleteUserCredential(ctx context.Context, realmID, userID, credentialID string) error
	ListExecutions(ctx context.Context, realmID, flow string) ([]*authflowdomain.Execution, error)
	UpdateExecution(ctx context.Context, realmID, executionID, requirement string) (*authflowdomain.Execution, error)
	ListCredentialPolicies(ctx context.Context, realmID string) ([]*policydomain.Policy, error)
	PutCredentialPolicy(ctx context.Context, realmID, name, rules string, enabled bool) (*policydomain.Policy, error)
	ListAuditLogs(ctx context.Context, realmID string, f auditdomain.Filter, pageSize, offset int32) ([]*auditdomain.AuditLog, error)
}

// Server implements AdminService for realm administrators. Every RPC requires the
// caller to hold the admin role in the realm of their access token.
type Server struct {
	adminv1.UnimplementedAdminServiceServer
	svc         AdminService
	memberships rbac.RealmMembershipGetter
}

// NewServer returns a new Admin gRPC server. Pass nil svc for stub (Unimplemented).
func NewServer(svc AdminService, memberships rbac.RealmMembershipGetter) *Server {
	return &Server{svc: svc, memberships: memberships}
}

func (s *Server) admin(ctx context.Context, method string) (string, error) {
	if s.svc == nil {
		return "", status.Errorf(codes.Unimplemented, "method %s not implemented", method)
	}
	realmID, _, err := rbac.RequireRealmAdmin(ctx, s.memberships)
	return realmID, err
}

// ListUserCredentials returns every credential of a realm user.
func (s *Server) ListUserCredentials(ctx context.Context, req *adminv1.ListUserCredentialsRequest) (*adminv1.ListUserCredentialsResponse, error) {
	realmID, err := s.admin(ctx, "ListUserCredentials")
	if err != nil {
		return nil, err
	}
	if req.GetUserId() == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	creds, err := s.svc.ListUserCredentials(ctx, realmID, req.GetUserId())
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]*adminv1.UserCredential, 0, len(creds))
	for _, c := range creds {
		out = append(out, &adminv1.UserCredential{
			Id:        c.ID,
			UserId:    c.UserID,
			Type:      string(c.Type),
			Label:     c.Label(),
			CreatedAt: timestamppb.New(c.CreatedAt),
		})
	}
	return &adminv1.ListUserCredentialsResponse{Credentials: out}, nil
}

// DeleteUserCredential removes any credential of a realm user.
func (s *Server) DeleteUserCredential(ctx context.Context, req *adminv1.DeleteUserCredentialRequest) (*adminv1.DeleteUserCredentialResponse, error) {
	realmID, err := s.admin(ctx, "DeleteUserCredential")
	if err != nil {
		return nil, err
	}
	if req.GetUserId() == "" || req.GetCredentialId() == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id and credential_id are required")
	}
	if err := s.svc.DeleteUserCredential(ctx, realmID, req.GetUserId(), req.GetCredentialId()); err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.DeleteUserCredentialResponse{}, nil
}

// ListExecutions returns the executions of a realm flow.
func (s *Server) ListExecutions(ctx context.Context, req *adminv1.ListExecutionsRequest) (*adminv1.ListExecutionsResponse, error) {
	realmID, err := s.admin(ctx, "ListExecutions")
	if err != nil {
		return nil, err
	}
	execs, err := s.svc.ListExecutions(ctx, realmID, req.GetFlow())
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]*adminv1.Execution, 0, len(execs))
	for _, e := range execs {
		out = append(out, executionToProto(e))
	}
	return &adminv1.ListExecutionsResponse{Executions: out}, nil
}

// UpdateExecution changes the requirement of a flow execution.
func (s *Server) UpdateExecution(ctx context.Context, req *adminv1.UpdateExecutionRequest) (*adminv1.UpdateExecutionResponse, error) {
	realmID, err := s.admin(ctx, "UpdateExecution")
	if err != nil {
		return nil, err
	}
	if req.GetExecutionId() == "" {
		return nil, status.Error(codes.InvalidArgument, "execution_id is required")
	}
	e, err := s.svc.UpdateExecution(ctx, realmID, req.GetExecutionId(), req.GetRequirement())
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.UpdateExecutionResponse{Execution: executionToProto(e)}, nil
}

// ListCredentialPolicies returns the realm's credential policies.
func (s *Server) ListCredentialPolicies(ctx context.Context, req *adminv1.ListCredentialPoliciesRequest) (*adminv1.ListCredentialPoliciesResponse, error) {
	realmID, err := s.admin(ctx, "ListCredentialPolicies")
	if err != nil {
		return nil, err
	}
	list, err := s.svc.ListCredentialPolicies(ctx, realmID)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]*adminv1.CredentialPolicy, 0, len(list))
	for _, p := range list {
		out = append(out, policyToProto(p))
	}
	return &adminv1.ListCredentialPoliciesResponse{Policies: out}, nil
}

// PutCredentialPolicy creates or replaces a realm credential policy.
func (s *Server) PutCredentialPolicy(ctx context.Context, req *adminv1.PutCredentialPolicyRequest) (*adminv1.PutCredentialPolicyResponse, error) {
	realmID, err := s.admin(ctx, "PutCredentialPolicy")
	if err != nil {
		return nil, err
	}
	p, err := s.svc.PutCredentialPolicy(ctx, realmID, req.GetName(), req.GetRules(), req.GetEnabled())
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.PutCredentialPolicyResponse{Policy: policyToProto(p)}, nil
}

// ListAuditLogs returns one page of the realm's audit log.
func (s *Server) ListAuditLogs(ctx context.Context, req *adminv1.ListAuditLogsRequest) (*adminv1.ListAuditLogsResponse, error) {
	realmID, err := s.admin(ctx, "ListAuditLogs")
	if err != nil {
		return nil, err
	}
	var offset int32
	if req.PageToken != "" {
		n, err := strconv.ParseInt(req.PageToken, 10, 32)
		if err != nil || n < 0 {
			return nil, status.Error(codes.InvalidArgument, "invalid page_token")
		}
		offset = int32(n)
	}
	f := auditdomain.Filter{UserID: req.UserId, Action: req.Action, Resource: req.Resource}
	logs, err := s.svc.ListAuditLogs(ctx, realmID, f, req.PageSize, offset)
	if err != nil {
		return nil, toStatus(err)
	}
	out := &adminv1.ListAuditLogsResponse{Logs: make([]*adminv1.AuditLog, 0, len(logs))}
	for _, a := range logs {
		out.Logs = append(out.Logs, &adminv1.AuditLog{
			Id:        a.ID,
			UserId:    a.UserID,
			Action:    a.Action,
			Resource:  a.Resource,
			Ip:        a.IP,
			Metadata:  a.Metadata,
			CreatedAt: timestamppb.New(a.CreatedAt),
		})
	}
	if pageSize := service.PageSize(req.PageSize); int32(len(logs)) == pageSize {
		out.NextPageToken = strconv.FormatInt(int64(offset+pageSize), 10)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCredentialNotFound),
		errors.Is(err, service.ErrExecutionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrInvalidRequirement),
		errors.Is(err, policydomain.ErrInvalidPolicy):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		log.Printf("admin: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func executionToProto(e *authflowdomain.Execution) *adminv1.Execution {
	if e == nil {
		return nil
	}
	return &adminv1.Execution{
		Id:          e.ID,
		FlowAlias:   e.FlowAlias,
		ProviderId:  e.ProviderID,
		DisplayName: e.DisplayName,
		Requirement: string(e.Requirement),
		Priority:    int32(e.Priority),
	}
}

func policyToProto(p *policydomain.Policy) *adminv1.CredentialPolicy {
	if p == nil {
		return nil
	}
	return &adminv1.CredentialPolicy{
		Id:        p.ID,
		Name:      p.Name,
		Rules:     p.Rules,
		Enabled:   p.Enabled,
		CreatedAt: timestamppb.New(p.CreatedAt),
	}
}
