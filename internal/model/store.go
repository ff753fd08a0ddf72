package model

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by stores when a key has no record.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by stores when a conditional write finds the key in the wrong state.
	ErrConflict = errors.New("conflict")
	// ErrReadOnly is returned when a write is attempted inside a read-only transaction.
	ErrReadOnly = errors.New("read-only transaction")
)

// Stores groups the entity stores bound to one transaction.
type Stores interface {
	Users() UserStore
	Devices() DeviceStore
	Entities() EntityStore
	Grants() GrantStore
	Audit() AuditStore
}

// Transactor executes each request as one indivisible unit: either every write of fn
// is applied or none is.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
	RunReadOnly(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
	Ping(ctx context.Context) error
}
