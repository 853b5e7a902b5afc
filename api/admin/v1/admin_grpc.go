package adminv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-console/backend/api/rpc"
)

const ServiceName = "console.admin.v1.AdminService"

const (
	AdminService_ListUserCredentials_FullMethodName    = "/console.admin.v1.AdminService/ListUserCredentials"
	AdminService_DeleteUserCredential_FullMethodName   = "/console.admin.v1.AdminService/DeleteUserCredential"
	AdminService_ListExecutions_FullMethodName         = "/console.admin.v1.AdminService/ListExecutions"
	AdminService_UpdateExecution_FullMethodName        = "/console.admin.v1.AdminService/UpdateExecution"
	AdminService_ListCredentialPolicies_FullMethodName = "/console.admin.v1.AdminService/ListCredentialPolicies"
	AdminService_PutCredentialPolicy_FullMethodName    = "/console.admin.v1.AdminService/PutCredentialPolicy"
	AdminService_ListAuditLogs_FullMethodName          = "/console.admin.v1.AdminService/ListAuditLogs"
)

// AdminServiceClient is the client API for AdminService.
type AdminServiceClient interface {
	ListUserCredentials(ctx context.Context, in *ListUserCredentialsRequest, opts ...grpc.CallOption) (*ListUserCredentialsResponse, error)
	DeleteUserCredential(ctx context.Context, in *DeleteUserCredentialRequest, opts ...grpc.CallOption) (*DeleteUserCredentialResponse, error)
	ListExecutions(ctx context.Context, in *ListExecutionsRequest, opts ...grpc.CallOption) (*ListExecutionsResponse, error)
	UpdateExecution(ctx context.Context, in *UpdateExecutionRequest, opts ...grpc.CallOption) (*UpdateExecutionResponse, error)
	ListCredentialPolicies(ctx context.Context, in *ListCredentialPoliciesRequest, opts ...grpc.CallOption) (*ListCredentialPoliciesResponse, error)
	PutCredentialPolicy(ctx context.Context, in *PutCredentialPolicyRequest, opts ...grpc.CallOption) (*PutCredentialPolicyResponse, error)
	ListAuditLogs(ctx context.Context, in *ListAuditLogsRequest, opts ...grpc.CallOption) (*ListAuditLogsResponse, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc}
}

func (c *adminServiceClient) ListUserCredentials(ctx context.Context, in *ListUserCredentialsRequest, opts ...grpc.CallOption) (*ListUserCredentialsResponse, error) {
	return rpc.Invoke[ListUserCredentialsResponse](ctx, c.cc, AdminService_ListUserCredentials_FullMethodName, in, opts...)
}

func (c *adminServiceClient) DeleteUserCredential(ctx context.Context, in *DeleteUserCredentialRequest, opts ...grpc.CallOption) (*DeleteUserCredentialResponse, error) {
	return rpc.Invoke[DeleteUserCredentialResponse](ctx, c.cc, AdminService_DeleteUserCredential_FullMethodName, in, opts...)
}

func (c *adminServiceClient) ListExecutions(ctx context.Context, in *ListExecutionsRequest, opts ...grpc.CallOption) (*ListExecutionsResponse, error) {
	return rpc.Invoke[ListExecutionsResponse](ctx, c.cc, AdminService_ListExecutions_FullMethodName, in, opts...)
}

func (c *adminServiceClient) UpdateExecution(ctx context.Context, in *UpdateExecutionRequest, opts ...grpc.CallOption) (*UpdateExecutionResponse, error) {
	return rpc.Invoke[UpdateExecutionResponse](ctx, c.cc, AdminService_UpdateExecution_FullMethodName, in, opts...)
}

func (c *adminServiceClient) ListCredentialPolicies(ctx context.Context, in *ListCredentialPoliciesRequest, opts ...grpc.CallOption) (*ListCredentialPoliciesResponse, error) {
	return rpc.Invoke[ListCredentialPoliciesResponse](ctx, c.cc, AdminService_ListCredentialPolicies_FullMethodName, in, opts...)
}

func (c *adminServiceClient) PutCredentialPolicy(ctx context.Context, in *PutCredentialPolicyRequest, opts ...grpc.CallOption) (*PutCredentialPolicyResponse, error) {
	return rpc.Invoke[PutCredentialPolicyResponse](ctx, c.cc, AdminService_PutCredentialPolicy_FullMethodName, in, opts...)
}

func (c *adminServiceClient) ListAuditLogs(ctx context.Context, in *ListAuditLogsRequest, opts ...grpc.CallOption) (*ListAuditLogsResponse, error) {
	return rpc.Invoke[ListAuditLogsResponse](ctx, c.cc, AdminService_ListAuditLogs_FullMethodName, in, opts...)
}

// AdminServiceServer is the server API for AdminService.
// Implementations must embed UnimplementedAdminServiceServer.
type AdminServiceServer interface {
	ListUserCredentials(context.Context, *ListUserCredentialsRequest) (*ListUserCredentialsResponse, error)
	DeleteUserCredential(context.Context, *DeleteUserCredentialRequest) (*DeleteUserCredentialResponse, error)
	ListExecutions(context.Context, *ListExecutionsRequest) (*ListExecutionsResponse, error)
	UpdateExecution(context.Context, *UpdateExecutionRequest) (*UpdateExecutionResponse, error)
	ListCredentialPolicies(context.Context, *ListCredentialPoliciesRequest) (*ListCredentialPoliciesResponse, error)
	PutCredentialPolicy(context.Context, *PutCredentialPolicyRequest) (*PutCredentialPolicyResponse, error)
	ListAuditLogs(context.Context, *ListAuditLogsRequest) (*ListAuditLogsResponse, error)
	mustEmbedUnimplementedAdminServiceServer()
}

type UnimplementedAdminServiceServer struct{}

func (UnimplementedAdminServiceServer) ListUserCredentials(context.Context, *ListUserCredentialsRequest) (*ListUserCredentialsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUserCredentials not implemented")
}
func (UnimplementedAdminServiceServer) DeleteUserCredential(context.Context, *DeleteUserCredentialRequest) (*DeleteUserCredentialResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteUserCredential not implemented")
}
func (UnimplementedAdminServiceServer) ListExecutions(context.Context, *ListExecutionsRequest) (*ListExecutionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListExecutions not implemented")
}
func (UnimplementedAdminServiceServer) UpdateExecution(context.Context, *UpdateExecutionRequest) (*UpdateExecutionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateExecution not implemented")
}
func (UnimplementedAdminServiceServer) ListCredentialPolicies(context.Context, *ListCredentialPoliciesRequest) (*ListCredentialPoliciesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCredentialPolicies not implemented")
}
func (UnimplementedAdminServiceServer) PutCredentialPolicy(context.Context, *PutCredentialPolicyRequest) (*PutCredentialPolicyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PutCredentialPolicy not implemented")
}
func (UnimplementedAdminServiceServer) ListAuditLogs(context.Context, *ListAuditLogsRequest) (*ListAuditLogsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAuditLogs not implemented")
}
func (UnimplementedAdminServiceServer) mustEmbedUnimplementedAdminServiceServer() {}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

// AdminService_ServiceDesc is the grpc.ServiceDesc for AdminService.
var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListUserCredentials", Handler: rpc.Unary(AdminService_ListUserCredentials_FullMethodName, AdminServiceServer.ListUserCredentials)},
		{MethodName: "DeleteUserCredential", Handler: rpc.Unary(AdminService_DeleteUserCredential_FullMethodName, AdminServiceServer.DeleteUserCredential)},
		{MethodName: "ListExecutions", Handler: rpc.Unary(AdminService_ListExecutions_FullMethodName, AdminServiceServer.ListExecutions)},
		{MethodName: "UpdateExecution", Handler: rpc.Unary(AdminService_UpdateExecution_FullMethodName, AdminServiceServer.UpdateExecution)},
		{MethodName: "ListCredentialPolicies", Handler: rpc.Unary(AdminService_ListCredentialPolicies_FullMethodName, AdminServiceServer.ListCredentialPolicies)},
		{MethodName: "PutCredentialPolicy", Handler: rpc.Unary(AdminService_PutCredentialPolicy_FullMethodName, AdminServiceServer.PutCredentialPolicy)},
		{MethodName: "ListAuditLogs", Handler: rpc.Unary(AdminService_ListAuditLogs_FullMethodName, AdminServiceServer.ListAuditLogs)},
	},
	Streams: []grpc.StreamDesc{},
}
