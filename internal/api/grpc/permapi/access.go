package permapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Access_AuthorizeAccess_FullMethodName = "/healthperm.v1.Access/AuthorizeAccess"
	Access_RevokeAccess_FullMethodName    = "/healthperm.v1.Access/RevokeAccess"
	Access_CheckAccess_FullMethodName     = "/healthperm.v1.Access/CheckAccess"
	Access_GetGrant_FullMethodName        = "/healthperm.v1.Access/GetGrant"
)

// AccessServer is the server API of healthperm.v1.Access, which manages the access grant ledger.
type AccessServer interface {
	AuthorizeAccess(context.Context, *AuthorizeAccessRequest) (*Empty, error)
	RevokeAccess(context.Context, *RevokeAccessRequest) (*Empty, error)
	CheckAccess(context.Context, *CheckAccessRequest) (*BoolResponse, error)
	GetGrant(context.Context, *GetGrantRequest) (*Grant, error)
}

// UnimplementedAccessServer can be embedded to have forward compatible implementations.
type UnimplementedAccessServer struct{}

func (UnimplementedAccessServer) AuthorizeAccess(context.Context, *AuthorizeAccessRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method AuthorizeAccess not implemented")
}

func (UnimplementedAccessServer) RevokeAccess(context.Context, *RevokeAccessRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokeAccess not implemented")
}

func (UnimplementedAccessServer) CheckAccess(context.Context, *CheckAccessRequest) (*BoolResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckAccess not implemented")
}

func (UnimplementedAccessServer) GetGrant(context.Context, *GetGrantRequest) (*Grant, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGrant not implemented")
}

var Access_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "healthperm.v1.Access",
	HandlerType: (*AccessServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AuthorizeAccess", Handler: unaryHandler(Access_AuthorizeAccess_FullMethodName, AccessServer.AuthorizeAccess)},
		{MethodName: "RevokeAccess", Handler: unaryHandler(Access_RevokeAccess_FullMethodName, AccessServer.RevokeAccess)},
		{MethodName: "CheckAccess", Handler: unaryHandler(Access_CheckAccess_FullMethodName, AccessServer.CheckAccess)},
		{MethodName: "GetGrant", Handler: unaryHandler(Access_GetGrant_FullMethodName, AccessServer.GetGrant)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "healthperm/v1/access",
}

func RegisterAccessServer(s grpc.ServiceRegistrar, srv AccessServer) {
	s.RegisterService(&Access_ServiceDesc, srv)
}

// AccessClient is the client API of healthperm.v1.Access.
type AccessClient struct {
	cc grpc.ClientConnInterface
}

func NewAccessClient(cc grpc.ClientConnInterface) *AccessClient {
	return &AccessClient{cc: cc}
}

func (c *AccessClient) AuthorizeAccess(ctx context.Context, in *AuthorizeAccessRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Access_AuthorizeAccess_FullMethodName, in, opts)
}

func (c *AccessClient) RevokeAccess(ctx context.Context, in *RevokeAccessRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Access_RevokeAccess_FullMethodName, in, opts)
}

func (c *AccessClient) CheckAccess(ctx context.Context, in *CheckAccessRequest, opts ...grpc.CallOption) (*BoolResponse, error) {
	return invoke[BoolResponse](ctx, c.cc, Access_CheckAccess_FullMethodName, in, opts)
}

func (c *AccessClient) GetGrant(ctx context.Context, in *GetGrantRequest, opts ...grpc.CallOption) (*Grant, error) {
	return invoke[Grant](ctx, c.cc, Access_GetGrant_FullMethodName, in, opts)
}
