package model

import "context"

// ContextManager carries the authenticated caller identity through request contexts.
type ContextManager interface {
	SetCallerToContext(ctx context.Context, caller Identity) context.Context
	GetCallerFromContext(ctx context.Context) (Identity, bool)
	ClearCaller(ctx context.Context) context.Context
}
