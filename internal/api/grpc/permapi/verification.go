package permapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Verification_RegisterEntity_FullMethodName   = "/healthperm.v1.Verification/RegisterEntity"
	Verification_IsVerifiedEntity_FullMethodName = "/healthperm.v1.Verification/IsVerifiedEntity"
)

// VerificationServer is the server API of healthperm.v1.Verification, which manages verified data consumers.
type VerificationServer interface {
	RegisterEntity(context.Context, *RegisterEntityRequest) (*Empty, error)
	IsVerifiedEntity(context.Context, *IsVerifiedEntityRequest) (*BoolResponse, error)
}

// UnimplementedVerificationServer can be embedded to have forward compatible implementations.
type UnimplementedVerificationServer struct{}

func (UnimplementedVerificationServer) RegisterEntity(context.Context, *RegisterEntityRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterEntity not implemented")
}

func (UnimplementedVerificationServer) IsVerifiedEntity(context.Context, *IsVerifiedEntityRequest) (*BoolResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsVerifiedEntity not implemented")
}

var Verification_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "healthperm.v1.Verification",
	HandlerType: (*VerificationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterEntity", Handler: unaryHandler(Verification_RegisterEntity_FullMethodName, VerificationServer.RegisterEntity)},
		{MethodName: "IsVerifiedEntity", Handler: unaryHandler(Verification_IsVerifiedEntity_FullMethodName, VerificationServer.IsVerifiedEntity)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "healthperm/v1/verification",
}

func RegisterVerificationServer(s grpc.ServiceRegistrar, srv VerificationServer) {
	s.RegisterService(&Verification_ServiceDesc, srv)
}

// VerificationClient is the client API of healthperm.v1.Verification.
type VerificationClient struct {
	cc grpc.ClientConnInterface
}

func NewVerificationClient(cc grpc.ClientConnInterface) *VerificationClient {
	return &VerificationClient{cc: cc}
}

func (c *VerificationClient) RegisterEntity(ctx context.Context, in *RegisterEntityRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Verification_RegisterEntity_FullMethodName, in, opts)
}

func (c *VerificationClient) IsVerifiedEntity(ctx context.Context, in *IsVerifiedEntityRequest, opts ...grpc.CallOption) (*BoolResponse, error) {
	return invoke[BoolResponse](ctx, c.cc, Verification_IsVerifiedEntity_FullMethodName, in, opts)
}
