package model

import "context"

// DeviceStore defines persistence operations for user devices.
type DeviceStore interface {
	Get(ctx context.Context, owner Identity, deviceID string) (Device, error)
	// Link writes an active device record, overwriting a tombstone.
	// Returns ErrConflict when the device is already active.
	Link(ctx context.Context, device Device) error
	// Unlink tombstones an active device record. Returns ErrNotFound when no active record exists.
	Unlink(ctx context.Context, owner Identity, deviceID string) error
}

// Device is a device identifier owned by a user. Unlinked devices are kept as tombstones
// with Registered=false, an empty type and a zero timestamp.
type Device struct {
	Owner        Identity
	DeviceID     string
	DeviceType   string
	Registered   bool
	RegisteredAt LogicalTime
}
