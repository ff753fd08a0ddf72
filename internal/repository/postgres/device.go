package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.DeviceStore = (*DeviceRepository)(nil)

type DeviceRepository struct {
	db querier
}

func NewDeviceRepository(db querier) *DeviceRepository {
	return &DeviceRepository{
		db: db,
	}
}

func (r *DeviceRepository) Get(ctx context.Context, owner model.Identity, deviceID string) (model.Device, error) {
	var (
		device       model.Device
		registeredAt int64
	)
	query := `SELECT owner_identity, device_id, device_type, registered, registered_at
			  FROM devices WHERE owner_identity = $1 AND device_id = $2`

	err := r.db.QueryRow(ctx, query, string(owner), deviceID).Scan(
		&device.Owner, &device.DeviceID, &device.DeviceType, &device.Registered, &registeredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Device{}, model.ErrNotFound
		}
		return model.Device{}, fmt.Errorf("failed to get device: %w", err)
	}
	device.RegisteredAt = model.LogicalTime(fromDB(registeredAt))

	return device, nil
}

func (r *DeviceRepository) Link(ctx context.Context, device model.Device) error {
	registeredAt, err := toDB(uint64(device.RegisteredAt))
	if err != nil {
		return fmt.Errorf("failed to link device: %w", err)
	}
	query := `INSERT INTO devices (owner_identity, device_id, device_type, registered, registered_at)
			  VALUES ($1, $2, $3, TRUE, $4)
			  ON CONFLICT (owner_identity, device_id) DO UPDATE
			  SET device_type = EXCLUDED.device_type, registered = TRUE, registered_at = EXCLUDED.registered_at
			  WHERE devices.registered = FALSE`

	tag, err := r.db.Exec(ctx, query, string(device.Owner), device.DeviceID, device.DeviceType, registeredAt)
	if err != nil {
		return fmt.Errorf("failed to link device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}

	return nil
}

func (r *DeviceRepository) Unlink(ctx context.Context, owner model.Identity, deviceID string) error {
	query := `UPDATE devices SET registered = FALSE, device_type = '', registered_at = 0
			  WHERE owner_identity = $1 AND device_id = $2 AND registered = TRUE`

	tag, err := r.db.Exec(ctx, query, string(owner), deviceID)
	if err != nil {
		return fmt.Errorf("failed to unlink device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
