package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/model"
)

// TokenService resolves caller identities from bearer tokens.
type TokenService interface {
	GetIdentity(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the caller identity into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the token and returns a context with the caller.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	caller, authErr := m.authenticateCaller(ctx, tokenString)
	if authErr != nil {
		m.logger.Debug("Authenticate middleware: rejected request",
			"error", authErr.Error())
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetCallerToContext(ctx, caller), nil
}

// StripCaller removes a caller identity sent by the client as plain metadata.
// It runs for every method, ahead of AuthFunc.
func (m *Authenticate) StripCaller(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	return handler(m.contextManager.ClearCaller(ctx), req)
}

func (m *Authenticate) authenticateCaller(ctx context.Context, tokenString string) (model.Identity, error) {
	if tokenString == "" {
		return "", apierrors.NewErrMissingAuthorizationToken()
	}

	caller, err := m.tokenService.GetIdentity(ctx, tokenString)
	if err != nil || caller == "" {
		return "", apierrors.NewErrInvalidAuthorizationToken()
	}

	return caller, nil
}
