package context

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/dtroode/healthperm-server/internal/model"
)

// callerKey is the metadata key carrying the authenticated caller identity.
const (
	callerKey string = "x-healthperm-caller"
)

// Manager stores the authenticated caller in incoming gRPC metadata.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext returns a context whose incoming metadata carries caller.
// Metadata of ctx is copied, never mutated in place.
func (m *Manager) SetCallerToContext(ctx context.Context, caller model.Identity) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	md.Set(callerKey, string(caller))

	return metadata.NewIncomingContext(ctx, md)
}

// GetCallerFromContext returns the caller set by SetCallerToContext.
func (m *Manager) GetCallerFromContext(ctx context.Context) (model.Identity, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}

	callers := md.Get(callerKey)
	if len(callers) == 0 || callers[0] == "" {
		return "", false
	}

	return model.Identity(callers[0]), true
}

// ClearCaller drops any caller identity supplied by the client itself, so that only
// the authentication interceptor can set one.
func (m *Manager) ClearCaller(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok || len(md.Get(callerKey)) == 0 {
		return ctx
	}

	md = md.Copy()
	md.Delete(callerKey)
	return metadata.NewIncomingContext(ctx, md)
}
