package model

import "context"

// UserStore defines persistence operations for onboarded users.
type UserStore interface {
	Get(ctx context.Context, identity Identity) (User, error)
	// Create stores a registered user. Returns ErrConflict when the identity is already registered.
	Create(ctx context.Context, user User) error
}

// User is an onboarded identity. Registration is permanent.
type User struct {
	Identity     Identity
	Registered   bool
	RegisteredAt LogicalTime
}
