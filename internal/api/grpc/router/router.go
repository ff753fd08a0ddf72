package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/healthperm-server/internal/api/grpc/handler"
	"github.com/dtroode/healthperm-server/internal/api/grpc/middleware"
	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
)

// Services bundles the domain services exposed over gRPC.
type Services struct {
	Identity     handler.IdentityService
	Verification handler.VerificationService
	Ledger       handler.LedgerService
	Audit        handler.AuditService
	Archive      handler.ArchiveService
}

// Router registers the permission services and their interceptors on a gRPC server.
type Router struct {
	services       Services
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	services Services,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		tokenService:   tokenService,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Pure queries that anyone may call without a token.
var publicMethods = map[string]struct{}{
	permapi.Identity_IsRegisteredUser_FullMethodName:     {},
	permapi.Identity_IsRegisteredDevice_FullMethodName:   {},
	permapi.Identity_GetDevice_FullMethodName:            {},
	permapi.Verification_IsVerifiedEntity_FullMethodName: {},
	permapi.Access_CheckAccess_FullMethodName:            {},
	permapi.Access_GetGrant_FullMethodName:               {},
	permapi.Audit_GetAuditEntry_FullMethodName:           {},
	permapi.Audit_GetLogCounter_FullMethodName:           {},
	permapi.Audit_VerifyChain_FullMethodName:             {},
}

func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	if strings.HasPrefix(c.FullMethod(), "/grpc.health.v1.Health/") {
		return false
	}
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register builds a gRPC server with logging, metrics and authentication interceptors
// and all permission services plus the standard health service.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	requestMetrics := middleware.NewMetrics(r.metrics)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			requestMetrics.HandleGRPC,
			authenticate.StripCaller,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	r.registerIdentityRoutes(s)
	r.registerVerificationRoutes(s)
	r.registerAccessRoutes(s)
	r.registerAuditRoutes(s)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(s, healthServer)

	return s
}

func (r *Router) registerIdentityRoutes(server *grpc.Server) {
	h := handler.NewIdentity(r.services.Identity, r.contextManager, r.logger)
	permapi.RegisterIdentityServer(server, h)
}

func (r *Router) registerVerificationRoutes(server *grpc.Server) {
	h := handler.NewVerification(r.services.Verification, r.contextManager, r.logger)
	permapi.RegisterVerificationServer(server, h)
}

func (r *Router) registerAccessRoutes(server *grpc.Server) {
	h := handler.NewAccess(r.services.Ledger, r.contextManager, r.logger)
	permapi.RegisterAccessServer(server, h)
}

func (r *Router) registerAuditRoutes(server *grpc.Server) {
	h := handler.NewAudit(r.services.Audit, r.services.Archive, r.contextManager, r.logger)
	permapi.RegisterAuditServer(server, h)
}
