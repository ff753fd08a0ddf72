package permapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Identity_OnboardUser_FullMethodName        = "/healthperm.v1.Identity/OnboardUser"
	Identity_LinkDevice_FullMethodName         = "/healthperm.v1.Identity/LinkDevice"
	Identity_UnlinkDevice_FullMethodName       = "/healthperm.v1.Identity/UnlinkDevice"
	Identity_IsRegisteredUser_FullMethodName   = "/healthperm.v1.Identity/IsRegisteredUser"
	Identity_IsRegisteredDevice_FullMethodName = "/healthperm.v1.Identity/IsRegisteredDevice"
	Identity_GetDevice_FullMethodName          = "/healthperm.v1.Identity/GetDevice"
)

// IdentityServer is the server API of healthperm.v1.Identity, which manages registered users and their devices.
type IdentityServer interface {
	OnboardUser(context.Context, *OnboardUserRequest) (*Empty, error)
	LinkDevice(context.Context, *LinkDeviceRequest) (*Empty, error)
	UnlinkDevice(context.Context, *UnlinkDeviceRequest) (*Empty, error)
	IsRegisteredUser(context.Context, *IsRegisteredUserRequest) (*BoolResponse, error)
	IsRegisteredDevice(context.Context, *IsRegisteredDeviceRequest) (*BoolResponse, error)
	GetDevice(context.Context, *GetDeviceRequest) (*Device, error)
}

// UnimplementedIdentityServer can be embedded to have forward compatible implementations.
type UnimplementedIdentityServer struct{}

func (UnimplementedIdentityServer) OnboardUser(context.Context, *OnboardUserRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method OnboardUser not implemented")
}

func (UnimplementedIdentityServer) LinkDevice(context.Context, *LinkDeviceRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method LinkDevice not implemented")
}

func (UnimplementedIdentityServer) UnlinkDevice(context.Context, *UnlinkDeviceRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method UnlinkDevice not implemented")
}

func (UnimplementedIdentityServer) IsRegisteredUser(context.Context, *IsRegisteredUserRequest) (*BoolResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsRegisteredUser not implemented")
}

func (UnimplementedIdentityServer) IsRegisteredDevice(context.Context, *IsRegisteredDeviceRequest) (*BoolResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsRegisteredDevice not implemented")
}

func (UnimplementedIdentityServer) GetDevice(context.Context, *GetDeviceRequest) (*Device, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDevice not implemented")
}

var Identity_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "healthperm.v1.Identity",
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OnboardUser", Handler: unaryHandler(Identity_OnboardUser_FullMethodName, IdentityServer.OnboardUser)},
		{MethodName: "LinkDevice", Handler: unaryHandler(Identity_LinkDevice_FullMethodName, IdentityServer.LinkDevice)},
		{MethodName: "UnlinkDevice", Handler: unaryHandler(Identity_UnlinkDevice_FullMethodName, IdentityServer.UnlinkDevice)},
		{MethodName: "IsRegisteredUser", Handler: unaryHandler(Identity_IsRegisteredUser_FullMethodName, IdentityServer.IsRegisteredUser)},
		{MethodName: "IsRegisteredDevice", Handler: unaryHandler(Identity_IsRegisteredDevice_FullMethodName, IdentityServer.IsRegisteredDevice)},
		{MethodName: "GetDevice", Handler: unaryHandler(Identity_GetDevice_FullMethodName, IdentityServer.GetDevice)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "healthperm/v1/identity",
}

func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&Identity_ServiceDesc, srv)
}

// IdentityClient is the client API of healthperm.v1.Identity.
type IdentityClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityClient(cc grpc.ClientConnInterface) *IdentityClient {
	return &IdentityClient{cc: cc}
}

func (c *IdentityClient) OnboardUser(ctx context.Context, in *OnboardUserRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Identity_OnboardUser_FullMethodName, in, opts)
}

func (c *IdentityClient) LinkDevice(ctx context.Context, in *LinkDeviceRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Identity_LinkDevice_FullMethodName, in, opts)
}

func (c *IdentityClient) UnlinkDevice(ctx context.Context, in *UnlinkDeviceRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Identity_UnlinkDevice_FullMethodName, in, opts)
}

func (c *IdentityClient) IsRegisteredUser(ctx context.Context, in *IsRegisteredUserRequest, opts ...grpc.CallOption) (*BoolResponse, error) {
	return invoke[BoolResponse](ctx, c.cc, Identity_IsRegisteredUser_FullMethodName, in, opts)
}

func (c *IdentityClient) IsRegisteredDevice(ctx context.Context, in *IsRegisteredDeviceRequest, opts ...grpc.CallOption) (*BoolResponse, error) {
	return invoke[BoolResponse](ctx, c.cc, Identity_IsRegisteredDevice_FullMethodName, in, opts)
}

func (c *IdentityClient) GetDevice(ctx context.Context, in *GetDeviceRequest, opts ...grpc.CallOption) (*Device, error) {
	return invoke[Device](ctx, c.cc, Identity_GetDevice_FullMethodName, in, opts)
}
