package permapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Audit_LogAccess_FullMethodName      = "/healthperm.v1.Audit/LogAccess"
	Audit_RequestAccess_FullMethodName  = "/healthperm.v1.Audit/RequestAccess"
	Audit_GetAuditEntry_FullMethodName  = "/healthperm.v1.Audit/GetAuditEntry"
	Audit_GetLogCounter_FullMethodName  = "/healthperm.v1.Audit/GetLogCounter"
	Audit_ListUserAccess_FullMethodName = "/healthperm.v1.Audit/ListUserAccess"
	Audit_VerifyChain_FullMethodName    = "/healthperm.v1.Audit/VerifyChain"
	Audit_ExportRange_FullMethodName    = "/healthperm.v1.Audit/ExportRange"
	Audit_VerifyArchive_FullMethodName  = "/healthperm.v1.Audit/VerifyArchive"
)

// AuditServer is the server API of healthperm.v1.Audit, which manages the audit log and its archives.
type AuditServer interface {
	LogAccess(context.Context, *LogAccessRequest) (*AccessIDResponse, error)
	RequestAccess(context.Context, *RequestAccessRequest) (*AccessIDResponse, error)
	GetAuditEntry(context.Context, *GetAuditEntryRequest) (*GetAuditEntryResponse, error)
	GetLogCounter(context.Context, *GetLogCounterRequest) (*CounterResponse, error)
	ListUserAccess(context.Context, *ListUserAccessRequest) (*ListUserAccessResponse, error)
	VerifyChain(context.Context, *VerifyChainRequest) (*ChainReport, error)
	ExportRange(context.Context, *ExportRangeRequest) (*ExportRangeResponse, error)
	VerifyArchive(context.Context, *VerifyArchiveRequest) (*ChainReport, error)
}

// UnimplementedAuditServer can be embedded to have forward compatible implementations.
type UnimplementedAuditServer struct{}

func (UnimplementedAuditServer) LogAccess(context.Context, *LogAccessRequest) (*AccessIDResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LogAccess not implemented")
}

func (UnimplementedAuditServer) RequestAccess(context.Context, *RequestAccessRequest) (*AccessIDResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestAccess not implemented")
}

func (UnimplementedAuditServer) GetAuditEntry(context.Context, *GetAuditEntryRequest) (*GetAuditEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAuditEntry not implemented")
}

func (UnimplementedAuditServer) GetLogCounter(context.Context, *GetLogCounterRequest) (*CounterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLogCounter not implemented")
}

func (UnimplementedAuditServer) ListUserAccess(context.Context, *ListUserAccessRequest) (*ListUserAccessResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUserAccess not implemented")
}

func (UnimplementedAuditServer) VerifyChain(context.Context, *VerifyChainRequest) (*ChainReport, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyChain not implemented")
}

func (UnimplementedAuditServer) ExportRange(context.Context, *ExportRangeRequest) (*ExportRangeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportRange not implemented")
}

func (UnimplementedAuditServer) VerifyArchive(context.Context, *VerifyArchiveRequest) (*ChainReport, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyArchive not implemented")
}

var Audit_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "healthperm.v1.Audit",
	HandlerType: (*AuditServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "LogAccess", Handler: unaryHandler(Audit_LogAccess_FullMethodName, AuditServer.LogAccess)},
		{MethodName: "RequestAccess", Handler: unaryHandler(Audit_RequestAccess_FullMethodName, AuditServer.RequestAccess)},
		{MethodName: "GetAuditEntry", Handler: unaryHandler(Audit_GetAuditEntry_FullMethodName, AuditServer.GetAuditEntry)},
		{MethodName: "GetLogCounter", Handler: unaryHandler(Audit_GetLogCounter_FullMethodName, AuditServer.GetLogCounter)},
		{MethodName: "ListUserAccess", Handler: unaryHandler(Audit_ListUserAccess_FullMethodName, AuditServer.ListUserAccess)},
		{MethodName: "VerifyChain", Handler: unaryHandler(Audit_VerifyChain_FullMethodName, AuditServer.VerifyChain)},
		{MethodName: "ExportRange", Handler: unaryHandler(Audit_ExportRange_FullMethodName, AuditServer.ExportRange)},
		{MethodName: "VerifyArchive", Handler: unaryHandler(Audit_VerifyArchive_FullMethodName, AuditServer.VerifyArchive)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "healthperm/v1/audit",
}

func RegisterAuditServer(s grpc.ServiceRegistrar, srv AuditServer) {
	s.RegisterService(&Audit_ServiceDesc, srv)
}

// AuditClient is the client API of healthperm.v1.Audit.
type AuditClient struct {
	cc grpc.ClientConnInterface
}

func NewAuditClient(cc grpc.ClientConnInterface) *AuditClient {
	return &AuditClient{cc: cc}
}

func (c *AuditClient) LogAccess(ctx context.Context, in *LogAccessRequest, opts ...grpc.CallOption) (*AccessIDResponse, error) {
	return invoke[AccessIDResponse](ctx, c.cc, Audit_LogAccess_FullMethodName, in, opts)
}

func (c *AuditClient) RequestAccess(ctx context.Context, in *RequestAccessRequest, opts ...grpc.CallOption) (*AccessIDResponse, error) {
	return invoke[AccessIDResponse](ctx, c.cc, Audit_RequestAccess_FullMethodName, in, opts)
}

func (c *AuditClient) GetAuditEntry(ctx context.Context, in *GetAuditEntryRequest, opts ...grpc.CallOption) (*GetAuditEntryResponse, error) {
	return invoke[GetAuditEntryResponse](ctx, c.cc, Audit_GetAuditEntry_FullMethodName, in, opts)
}

func (c *AuditClient) GetLogCounter(ctx context.Context, in *GetLogCounterRequest, opts ...grpc.CallOption) (*CounterResponse, error) {
	return invoke[CounterResponse](ctx, c.cc, Audit_GetLogCounter_FullMethodName, in, opts)
}

func (c *AuditClient) ListUserAccess(ctx context.Context, in *ListUserAccessRequest, opts ...grpc.CallOption) (*ListUserAccessResponse, error) {
	return invoke[ListUserAccessResponse](ctx, c.cc, Audit_ListUserAccess_FullMethodName, in, opts)
}

func (c *AuditClient) VerifyChain(ctx context.Context, in *VerifyChainRequest, opts ...grpc.CallOption) (*ChainReport, error) {
	return invoke[ChainReport](ctx, c.cc, Audit_VerifyChain_FullMethodName, in, opts)
}

func (c *AuditClient) ExportRange(ctx context.Context, in *ExportRangeRequest, opts ...grpc.CallOption) (*ExportRangeResponse, error) {
	return invoke[ExportRangeResponse](ctx, c.cc, Audit_ExportRange_FullMethodName, in, opts)
}

func (c *AuditClient) VerifyArchive(ctx context.Context, in *VerifyArchiveRequest, opts ...grpc.CallOption) (*ChainReport, error) {
	return invoke[ChainReport](ctx, c.cc, Audit_VerifyArchive_FullMethodName, in, opts)
}
