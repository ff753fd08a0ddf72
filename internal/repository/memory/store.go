// Package memory is the in-process storage backend. Every transaction runs under
// one store-wide lock; writes are journaled so a failed transaction leaves no trace.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.Transactor = (*Store)(nil)

type deviceKey struct {
	owner    model.Identity
	deviceID string
}

// Store holds every registry, the grant ledger and the audit arena.
type Store struct {
	mu sync.RWMutex

	users    map[model.Identity]model.User
	devices  map[deviceKey]model.Device
	entities map[model.Identity]model.VerifiedEntity
	grants   map[model.GrantKey]model.AccessGrant

	audit  []model.AuditEntry
	state  model.AuditState
	byUser map[model.Identity][]uint64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:    make(map[model.Identity]model.User),
		devices:  make(map[deviceKey]model.Device),
		entities: make(map[model.Identity]model.VerifiedEntity),
		grants:   make(map[model.GrantKey]model.AccessGrant),
		byUser:   make(map[model.Identity][]uint64),
	}
}

// RunInTx runs fn exclusively. If fn returns an error or panics, every write it made is undone.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txn{store: s}
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
		if err != nil {
			t.rollback()
		}
	}()

	return fn(ctx, t)
}

// RunReadOnly runs fn concurrently with other readers. Writes fail with model.ErrReadOnly.
func (s *Store) RunReadOnly(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, &txn{store: s, readOnly: true})
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// txn is the view of the store bound to one transaction.
type txn struct {
	store    *Store
	readOnly bool
	undo     []func()
}

func (t *txn) Users() model.UserStore      { return userStore{t} }
func (t *txn) Devices() model.DeviceStore  { return deviceStore{t} }
func (t *txn) Entities() model.EntityStore { return entityStore{t} }
func (t *txn) Grants() model.GrantStore    { return grantStore{t} }
func (t *txn) Audit() model.AuditStore     { return auditStore{t} }

// write registers the inverse of a mutation before it is applied.
func (t *txn) write(undo func()) error {
	if t.readOnly {
		return model.ErrReadOnly
	}
	t.undo = append(t.undo, undo)
	return nil
}

func (t *txn) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}
