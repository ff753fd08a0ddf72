package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthperm-server/internal/model"
)

func TestStore_Users(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	err := s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		_, err := stores.Users().Get(ctx, "alice")
		assert.ErrorIs(t, err, model.ErrNotFound)

		require.NoError(t, stores.Users().Create(ctx, model.User{Identity: "alice", Registered: true, RegisteredAt: 5}))
		assert.ErrorIs(t, stores.Users().Create(ctx, model.User{Identity: "alice", Registered: true}), model.ErrConflict)
		return nil
	})
	require.NoError(t, err)

	err = s.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		u, err := stores.Users().Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, model.User{Identity: "alice", Registered: true, RegisteredAt: 5}, u)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_DeviceTombstone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	err := s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		devices := stores.Devices()

		assert.ErrorIs(t, devices.Unlink(ctx, "alice", "d1"), model.ErrNotFound)

		require.NoError(t, devices.Link(ctx, model.Device{Owner: "alice", DeviceID: "d1", DeviceType: "watch", RegisteredAt: 3}))
		assert.ErrorIs(t, devices.Link(ctx, model.Device{Owner: "alice", DeviceID: "d1", DeviceType: "ring"}), model.ErrConflict)

		require.NoError(t, devices.Unlink(ctx, "alice", "d1"))
		d, err := devices.Get(ctx, "alice", "d1")
		require.NoError(t, err)
		assert.Equal(t, model.Device{Owner: "alice", DeviceID: "d1"}, d)

		assert.ErrorIs(t, devices.Unlink(ctx, "alice", "d1"), model.ErrNotFound)

		require.NoError(t, devices.Link(ctx, model.Device{Owner: "alice", DeviceID: "d1", DeviceType: "ring", RegisteredAt: 9}))
		d, err = devices.Get(ctx, "alice", "d1")
		require.NoError(t, err)
		assert.True(t, d.Registered)
		assert.Equal(t, "ring", d.DeviceType)

		_, err = devices.Get(ctx, "bob", "d1")
		assert.ErrorIs(t, err, model.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_GrantsDetachExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()
	key := model.GrantKey{User: "alice", Consumer: "clinic", Category: model.CategoryCardioRate}

	expiry := model.LogicalTime(100)
	err := s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		return stores.Grants().Put(ctx, model.AccessGrant{GrantKey: key, Granted: true, Expiry: &expiry})
	})
	require.NoError(t, err)
	expiry = 1

	err = s.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		g, err := stores.Grants().Get(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, g.Expiry)
		assert.Equal(t, model.LogicalTime(100), *g.Expiry)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_RollbackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		require.NoError(t, stores.Users().Create(ctx, model.User{Identity: "alice", Registered: true}))
		require.NoError(t, stores.Devices().Link(ctx, model.Device{Owner: "alice", DeviceID: "d1", DeviceType: "watch"}))
		require.NoError(t, stores.Entities().Create(ctx, model.VerifiedEntity{Consumer: "clinic", Verified: true}))
		require.NoError(t, stores.Grants().Put(ctx, model.AccessGrant{GrantKey: model.GrantKey{User: "alice", Consumer: "clinic", Category: model.CategoryBodyWeight}, Granted: true}))

		st, err := stores.Audit().Reserve(ctx)
		require.NoError(t, err)
		require.NoError(t, stores.Audit().Insert(ctx, model.AuditEntry{AccessID: st.NextID, User: "alice", Hash: model.Hash{1}}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Empty(t, s.users)
	assert.Empty(t, s.devices)
	assert.Empty(t, s.entities)
	assert.Empty(t, s.grants)
	assert.Empty(t, s.audit)
	assert.Empty(t, s.byUser)
	assert.Equal(t, model.AuditState{}, s.state)
}

func TestStore_RollbackOnPanic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	assert.Panics(t, func() {
		_ = s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
			_ = stores.Users().Create(ctx, model.User{Identity: "alice", Registered: true})
			panic("boom")
		})
	})
	assert.Empty(t, s.users)
}

func TestStore_RollbackRestoresOverwrittenValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()
	key := model.GrantKey{User: "alice", Consumer: "clinic", Category: model.CategoryBodyWeight}

	require.NoError(t, s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		require.NoError(t, stores.Devices().Link(ctx, model.Device{Owner: "alice", DeviceID: "d1", DeviceType: "watch"}))
		return stores.Grants().Put(ctx, model.AccessGrant{GrantKey: key, Granted: true})
	}))

	err := s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		require.NoError(t, stores.Devices().Unlink(ctx, "alice", "d1"))
		require.NoError(t, stores.Grants().Put(ctx, model.AccessGrant{GrantKey: key}))
		return errors.New("abort")
	})
	require.Error(t, err)

	assert.True(t, s.devices[deviceKey{"alice", "d1"}].Registered)
	assert.True(t, s.grants[key].Granted)
}

func TestStore_ReadOnlyRejectsWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	err := s.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		return stores.Users().Create(ctx, model.User{Identity: "alice", Registered: true})
	})
	assert.ErrorIs(t, err, model.ErrReadOnly)
	assert.Empty(t, s.users)
}

func TestStore_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().RunInTx(ctx, func(context.Context, model.Stores) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_Audit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	users := []model.Identity{"alice", "bob", "alice"}
	for i, u := range users {
		err := s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
			st, err := stores.Audit().Reserve(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(i), st.NextID)
			return stores.Audit().Insert(ctx, model.AuditEntry{AccessID: st.NextID, User: u, PrevHash: st.HeadHash, Hash: model.Hash{byte(i + 1)}})
		})
		require.NoError(t, err)
	}

	err := s.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		audit := stores.Audit()

		n, err := audit.Counter(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), n)

		e, err := audit.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.Identity("bob"), e.User)
		assert.Equal(t, model.Hash{1}, e.PrevHash)

		_, err = audit.Get(ctx, 3)
		assert.ErrorIs(t, err, model.ErrNotFound)

		entries, err := audit.Range(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		entries, err = audit.Range(ctx, 5, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)

		ids, err := audit.ListByUser(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 2}, ids)

		ids, err = audit.ListByUser(ctx, "carol")
		require.NoError(t, err)
		assert.Empty(t, ids)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.Hash{3}, s.state.HeadHash)
}

func TestStore_AuditInsertRequiresReservation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	err := s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		return stores.Audit().Insert(ctx, model.AuditEntry{AccessID: 0})
	})
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestStore_ConcurrentReservationsAreContiguous(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	const n = 64
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
				st, err := stores.Audit().Reserve(ctx)
				if err != nil {
					return err
				}
				mu.Lock()
				ids[st.NextID] = struct{}{}
				mu.Unlock()
				return stores.Audit().Insert(ctx, model.AuditEntry{AccessID: st.NextID, User: "alice"})
			})
		}()
	}
	wg.Wait()

	require.Len(t, ids, n)
	for i := uint64(0); i < n; i++ {
		assert.Contains(t, ids, i)
	}
	assert.Equal(t, uint64(n), s.state.NextID)
}
