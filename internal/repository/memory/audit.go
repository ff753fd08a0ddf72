package memory

import (
	"context"
	"fmt"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.AuditStore = auditStore{}

// auditStore is an append-only arena indexed by access id.
type auditStore struct{ t *txn }

func (s auditStore) Reserve(_ context.Context) (model.AuditState, error) {
	st := s.t.store
	prev := st.state
	if err := s.t.write(func() { st.state = prev }); err != nil {
		return model.AuditState{}, err
	}
	st.state.NextID++
	return prev, nil
}

func (s auditStore) Insert(_ context.Context, entry model.AuditEntry) error {
	st := s.t.store
	if entry.AccessID != uint64(len(st.audit)) || entry.AccessID >= st.state.NextID {
		return fmt.Errorf("access id %d was not reserved: %w", entry.AccessID, model.ErrConflict)
	}

	prevState := st.state
	prevIndex, hadIndex := st.byUser[entry.User]
	if err := s.t.write(func() {
		st.audit = st.audit[:len(st.audit)-1]
		st.state.HeadHash = prevState.HeadHash
		restore(st.byUser, entry.User, prevIndex, hadIndex)
	}); err != nil {
		return err
	}

	st.audit = append(st.audit, entry)
	st.state.HeadHash = entry.Hash
	// Full slice expression so rollback never shares a backing array with the restored index.
	st.byUser[entry.User] = append(prevIndex[:len(prevIndex):len(prevIndex)], entry.AccessID)
	return nil
}

func (s auditStore) Get(_ context.Context, accessID uint64) (model.AuditEntry, error) {
	audit := s.t.store.audit
	if accessID >= uint64(len(audit)) {
		return model.AuditEntry{}, model.ErrNotFound
	}
	return audit[accessID], nil
}

func (s auditStore) Counter(_ context.Context) (uint64, error) {
	return s.t.store.state.NextID, nil
}

func (s auditStore) Range(_ context.Context, from, to uint64) ([]model.AuditEntry, error) {
	audit := s.t.store.audit
	if to > uint64(len(audit)) {
		to = uint64(len(audit))
	}
	if from >= to {
		return nil, nil
	}
	return append([]model.AuditEntry(nil), audit[from:to]...), nil
}

func (s auditStore) ListByUser(_ context.Context, user model.Identity) ([]uint64, error) {
	return append([]uint64(nil), s.t.store.byUser[user]...), nil
}
