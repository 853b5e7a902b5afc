package accountv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-console/backend/api/rpc"
)

const ServiceName = "console.account.v1.AccountService"

const (
	AccountService_GetSigningIn_FullMethodName               = "/console.account.v1.AccountService/GetSigningIn"
	AccountService_MoveCredential_FullMethodName             = "/console.account.v1.AccountService/MoveCredential"
	AccountService_StartCredentialSetup_FullMethodName       = "/console.account.v1.AccountService/StartCredentialSetup"
	AccountService_CompleteOtpSetup_FullMethodName           = "/console.account.v1.AccountService/CompleteOtpSetup"
	AccountService_CompleteRecoveryCodesSetup_FullMethodName = "/console.account.v1.AccountService/CompleteRecoveryCodesSetup"
	AccountService_UpdatePassword_FullMethodName             = "/console.account.v1.AccountService/UpdatePassword"
	AccountService_RemoveCredential_FullMethodName           = "/console.account.v1.AccountService/RemoveCredential"
)

// AccountServiceClient is the client API for AccountService.
type AccountServiceClient interface {
	GetSigningIn(ctx context.Context, in *GetSigningInRequest, opts ...grpc.CallOption) (*GetSigningInResponse, error)
	MoveCredential(ctx context.Context, in *MoveCredentialRequest, opts ...grpc.CallOption) (*MoveCredentialResponse, error)
	StartCredentialSetup(ctx context.Context, in *StartCredentialSetupRequest, opts ...grpc.CallOption) (*StartCredentialSetupResponse, error)
	CompleteOtpSetup(ctx context.Context, in *CompleteOtpSetupRequest, opts ...grpc.CallOption) (*CompleteOtpSetupResponse, error)
	CompleteRecoveryCodesSetup(ctx context.Context, in *CompleteRecoveryCodesSetupRequest, opts ...grpc.CallOption) (*CompleteRecoveryCodesSetupResponse, error)
	UpdatePassword(ctx context.Context, in *UpdatePasswordRequest, opts ...grpc.CallOption) (*UpdatePasswordResponse, error)
	RemoveCredential(ctx context.Context, in *RemoveCredentialRequest, opts ...grpc.CallOption) (*RemoveCredentialResponse, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAccountServiceClient returns a client that sends every call with the JSON codec.
func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc}
}

func (c *accountServiceClient) GetSigningIn(ctx context.Context, in *GetSigningInRequest, opts ...grpc.CallOption) (*GetSigningInResponse, error) {
	return rpc.Invoke[GetSigningInResponse](ctx, c.cc, AccountService_GetSigningIn_FullMethodName, in, opts...)
}

func (c *accountServiceClient) MoveCredential(ctx context.Context, in *MoveCredentialRequest, opts ...grpc.CallOption) (*MoveCredentialResponse, error) {
	return rpc.Invoke[MoveCredentialResponse](ctx, c.cc, AccountService_MoveCredential_FullMethodName, in, opts...)
}

func (c *accountServiceClient) StartCredentialSetup(ctx context.Context, in *StartCredentialSetupRequest, opts ...grpc.CallOption) (*StartCredentialSetupResponse, error) {
	return rpc.Invoke[StartCredentialSetupResponse](ctx, c.cc, AccountService_StartCredentialSetup_FullMethodName, in, opts...)
}

func (c *accountServiceClient) CompleteOtpSetup(ctx context.Context, in *CompleteOtpSetupRequest, opts ...grpc.CallOption) (*CompleteOtpSetupResponse, error) {
	return rpc.Invoke[CompleteOtpSetupResponse](ctx, c.cc, AccountService_CompleteOtpSetup_FullMethodName, in, opts...)
}

func (c *accountServiceClient) CompleteRecoveryCodesSetup(ctx context.Context, in *CompleteRecoveryCodesSetupRequest, opts ...grpc.CallOption) (*CompleteRecoveryCodesSetupResponse, error) {
	return rpc.Invoke[CompleteRecoveryCodesSetupResponse](ctx, c.cc, AccountService_CompleteRecoveryCodesSetup_FullMethodName, in, opts...)
}

func (c *accountServiceClient) UpdatePassword(ctx context.Context, in *UpdatePasswordRequest, opts ...grpc.CallOption) (*UpdatePasswordResponse, error) {
	return rpc.Invoke[UpdatePasswordResponse](ctx, c.cc, AccountService_UpdatePassword_FullMethodName, in, opts...)
}

func (c *accountServiceClient) RemoveCredential(ctx context.Context, in *RemoveCredentialRequest, opts ...grpc.CallOption) (*RemoveCredentialResponse, error) {
	return rpc.Invoke[RemoveCredentialResponse](ctx, c.cc, AccountService_RemoveCredential_FullMethodName, in, opts...)
}

// AccountServiceServer is the server API for AccountService.
// Implementations must embed UnimplementedAccountServiceServer.
type AccountServiceServer interface {
	GetSigningIn(context.Context, *GetSigningInRequest) (*GetSigningInResponse, error)
	MoveCredential(context.Context, *MoveCredentialRequest) (*MoveCredentialResponse, error)
	StartCredentialSetup(context.Context, *StartCredentialSetupRequest) (*StartCredentialSetupResponse, error)
	CompleteOtpSetup(context.Context, *CompleteOtpSetupRequest) (*CompleteOtpSetupResponse, error)
	CompleteRecoveryCodesSetup(context.Context, *CompleteRecoveryCodesSetupRequest) (*CompleteRecoveryCodesSetupResponse, error)
	UpdatePassword(context.Context, *UpdatePasswordRequest) (*UpdatePasswordResponse, error)
	RemoveCredential(context.Context, *RemoveCredentialRequest) (*RemoveCredentialResponse, error)
	mustEmbedUnimplementedAccountServiceServer()
}

type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) GetSigningIn(context.Context, *GetSigningInRequest) (*GetSigningInResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSigningIn not implemented")
}
func (UnimplementedAccountServiceServer) MoveCredential(context.Context, *MoveCredentialRequest) (*MoveCredentialResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MoveCredential not implemented")
}
func (UnimplementedAccountServiceServer) StartCredentialSetup(context.Context, *StartCredentialSetupRequest) (*StartCredentialSetupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartCredentialSetup not implemented")
}
func (UnimplementedAccountServiceServer) CompleteOtpSetup(context.Context, *CompleteOtpSetupRequest) (*CompleteOtpSetupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteOtpSetup not implemented")
}
func (UnimplementedAccountServiceServer) CompleteRecoveryCodesSetup(context.Context, *CompleteRecoveryCodesSetupRequest) (*CompleteRecoveryCodesSetupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteRecoveryCodesSetup not implemented")
}
func (UnimplementedAccountServiceServer) UpdatePassword(context.Context, *UpdatePasswordRequest) (*UpdatePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePassword not implemented")
}
func (UnimplementedAccountServiceServer) RemoveCredential(context.Context, *RemoveCredentialRequest) (*RemoveCredentialResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveCredential not implemented")
}
func (UnimplementedAccountServiceServer) mustEmbedUnimplementedAccountServiceServer() {}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}

// AccountService_ServiceDesc is the grpc.ServiceDesc for AccountService.
var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSigningIn", Handler: rpc.Unary(AccountService_GetSigningIn_FullMethodName, AccountServiceServer.GetSigningIn)},
		{MethodName: "MoveCredential", Handler: rpc.Unary(AccountService_MoveCredential_FullMethodName, AccountServiceServer.MoveCredential)},
		{MethodName: "StartCredentialSetup", Handler: rpc.Unary(AccountService_StartCredentialSetup_FullMethodName, AccountServiceServer.StartCredentialSetup)},
		{MethodName: "CompleteOtpSetup", Handler: rpc.Unary(AccountService_CompleteOtpSetup_FullMethodName, AccountServiceServer.CompleteOtpSetup)},
		{MethodName: "CompleteRecoveryCodesSetup", Handler: rpc.Unary(AccountService_CompleteRecoveryCodesSetup_FullMethodName, AccountServiceServer.CompleteRecoveryCodesSetup)},
		{MethodName: "UpdatePassword", Handler: rpc.Unary(AccountService_UpdatePassword_FullMethodName, AccountServiceServer.UpdatePassword)},
		{MethodName: "RemoveCredential", Handler: rpc.Unary(AccountService_RemoveCredential_FullMethodName, AccountServiceServer.RemoveCredential)},
	},
	Streams: []grpc.StreamDesc{},
}
