package memory

import (
	"context"

	"github.com/dtroode/healthperm-server/internal/model"
)

var (
	_ model.UserStore   = userStore{}
	_ model.DeviceStore = deviceStore{}
	_ model.EntityStore = entityStore{}
	_ model.GrantStore  = grantStore{}
)

type userStore struct{ t *txn }

func (s userStore) Get(_ context.Context, identity model.Identity) (model.User, error) {
	u, ok := s.t.store.users[identity]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s userStore) Create(_ context.Context, user model.User) error {
	users := s.t.store.users
	if existing, ok := users[user.Identity]; ok && existing.Registered {
		return model.ErrConflict
	}
	prev, had := users[user.Identity]
	if err := s.t.write(func() { restore(users, user.Identity, prev, had) }); err != nil {
		return err
	}
	users[user.Identity] = user
	return nil
}

type deviceStore struct{ t *txn }

func (s deviceStore) Get(_ context.Context, owner model.Identity, deviceID string) (model.Device, error) {
	d, ok := s.t.store.devices[deviceKey{owner, deviceID}]
	if !ok {
		return model.Device{}, model.ErrNotFound
	}
	return d, nil
}

func (s deviceStore) Link(_ context.Context, device model.Device) error {
	devices := s.t.store.devices
	key := deviceKey{device.Owner, device.DeviceID}
	prev, had := devices[key]
	if had && prev.Registered {
		return model.ErrConflict
	}
	if err := s.t.write(func() { restore(devices, key, prev, had) }); err != nil {
		return err
	}
	device.Registered = true
	devices[key] = device
	return nil
}

func (s deviceStore) Unlink(_ context.Context, owner model.Identity, deviceID string) error {
	devices := s.t.store.devices
	key := deviceKey{owner, deviceID}
	prev, had := devices[key]
	if !had || !prev.Registered {
		return model.ErrNotFound
	}
	if err := s.t.write(func() { devices[key] = prev }); err != nil {
		return err
	}
	devices[key] = model.Device{Owner: owner, DeviceID: deviceID}
	return nil
}

type entityStore struct{ t *txn }

func (s entityStore) Get(_ context.Context, consumer model.Identity) (model.VerifiedEntity, error) {
	e, ok := s.t.store.entities[consumer]
	if !ok {
		return model.VerifiedEntity{}, model.ErrNotFound
	}
	return e, nil
}

func (s entityStore) Create(_ context.Context, entity model.VerifiedEntity) error {
	entities := s.t.store.entities
	prev, had := entities[entity.Consumer]
	if had && prev.Verified {
		return model.ErrConflict
	}
	if err := s.t.write(func() { restore(entities, entity.Consumer, prev, had) }); err != nil {
		return err
	}
	entities[entity.Consumer] = entity
	return nil
}

type grantStore struct{ t *txn }

func (s grantStore) Get(_ context.Context, key model.GrantKey) (model.AccessGrant, error) {
	g, ok := s.t.store.grants[key]
	if !ok {
		return model.AccessGrant{}, model.ErrNotFound
	}
	return copyGrant(g), nil
}

func (s grantStore) Put(_ context.Context, grant model.AccessGrant) error {
	grants := s.t.store.grants
	prev, had := grants[grant.GrantKey]
	if err := s.t.write(func() { restore(grants, grant.GrantKey, prev, had) }); err != nil {
		return err
	}
	grants[grant.GrantKey] = copyGrant(grant)
	return nil
}

// copyGrant detaches the expiry pointer from the caller's value.
func copyGrant(g model.AccessGrant) model.AccessGrant {
	if g.Expiry != nil {
		exp := *g.Expiry
		g.Expiry = &exp
	}
	return g
}

func restore[K comparable, V any](m map[K]V, key K, prev V, had bool) {
	if had {
		m[key] = prev
		return
	}
	delete(m, key)
}
