package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
)

// Identity is the registry of onboarded users and their devices.
type Identity struct {
	tx      model.Transactor
	clock   model.Clock
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewIdentity(tx model.Transactor, clock model.Clock, metrics *metrics.Metrics, logger *logger.Logger) *Identity {
	return &Identity{
		tx:      tx,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// OnboardUser registers caller as a user.
func (s *Identity) OnboardUser(ctx context.Context, caller model.Identity) (err error) {
	defer func() { observe(s.metrics, "OnboardUser", err) }()

	s.logger.Debug("Identity service: onboarding user",
		"caller", caller)

	if err := validateIdentity("caller", caller); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		existing, err := stores.Users().Get(ctx, caller)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if err == nil && existing.Registered {
			return apierrors.NewErrAlreadyRegistered(string(caller))
		}

		err = stores.Users().Create(ctx, model.User{
			Identity:     caller,
			Registered:   true,
			RegisteredAt: s.clock.Now(),
		})
		if errors.Is(err, model.ErrConflict) {
			return apierrors.NewErrAlreadyRegistered(string(caller))
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		if !isAPIError(err) {
			s.logger.Error("Identity service: failed to onboard user",
				"caller", caller,
				"error", err.Error())
		}
		return err
	}

	s.logger.Info("Identity service: user onboarded",
		"caller", caller)

	return nil
}

// LinkDevice registers deviceID as a device of caller, overwriting a tombstone.
func (s *Identity) LinkDevice(ctx context.Context, caller model.Identity, deviceID, deviceType string) (err error) {
	defer func() { observe(s.metrics, "LinkDevice", err) }()

	s.logger.Debug("Identity service: linking device",
		"caller", caller,
		"device_id", deviceID)

	if err := validateIdentity("caller", caller); err != nil {
		return err
	}
	if err := validateBounded("device id", deviceID, model.MaxDeviceIDLength); err != nil {
		return err
	}
	if err := validateBounded("device type", deviceType, model.MaxDeviceTypeLength); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		if err := requireUser(ctx, stores, caller); err != nil {
			return err
		}

		err := stores.Devices().Link(ctx, model.Device{
			Owner:        caller,
			DeviceID:     deviceID,
			DeviceType:   deviceType,
			Registered:   true,
			RegisteredAt: s.clock.Now(),
		})
		if errors.Is(err, model.ErrConflict) {
			return apierrors.NewErrDeviceAlreadyRegistered(deviceID)
		}
		if err != nil {
			return fmt.Errorf("failed to link device: %w", err)
		}
		return nil
	})
	if err != nil {
		if !isAPIError(err) {
			s.logger.Error("Identity service: failed to link device",
				"caller", caller,
				"device_id", deviceID,
				"error", err.Error())
		}
		return err
	}

	s.logger.Info("Identity service: device linked",
		"caller", caller,
		"device_id", deviceID,
		"device_type", deviceType)

	return nil
}

// UnlinkDevice tombstones an active device of caller.
func (s *Identity) UnlinkDevice(ctx context.Context, caller model.Identity, deviceID string) (err error) {
	defer func() { observe(s.metrics, "UnlinkDevice", err) }()

	s.logger.Debug("Identity service: unlinking device",
		"caller", caller,
		"device_id", deviceID)

	if err := validateIdentity("caller", caller); err != nil {
		return err
	}
	if err := validateBounded("device id", deviceID, model.MaxDeviceIDLength); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		if err := requireUser(ctx, stores, caller); err != nil {
			return err
		}

		err := stores.Devices().Unlink(ctx, caller, deviceID)
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrDeviceNotRegistered(deviceID)
		}
		if err != nil {
			return fmt.Errorf("failed to unlink device: %w", err)
		}
		return nil
	})
	if err != nil {
		if !isAPIError(err) {
			s.logger.Error("Identity service: failed to unlink device",
				"caller", caller,
				"device_id", deviceID,
				"error", err.Error())
		}
		return err
	}

	s.logger.Info("Identity service: device unlinked",
		"caller", caller,
		"device_id", deviceID)

	return nil
}

// IsRegisteredUser reports whether identity is an onboarded user.
func (s *Identity) IsRegisteredUser(ctx context.Context, identity model.Identity) (bool, error) {
	var registered bool
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		user, err := stores.Users().Get(ctx, identity)
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		registered = user.Registered
		return nil
	})
	if err != nil {
		return false, err
	}
	return registered, nil
}

// IsRegisteredDevice reports whether deviceID is an active device of user.
func (s *Identity) IsRegisteredDevice(ctx context.Context, user model.Identity, deviceID string) (bool, error) {
	device, err := s.getDevice(ctx, user, deviceID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return device.Registered, nil
}

// GetDevice returns the device record of user, including tombstones.
func (s *Identity) GetDevice(ctx context.Context, user model.Identity, deviceID string) (model.Device, error) {
	device, err := s.getDevice(ctx, user, deviceID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Device{}, apierrors.NewErrNotFound(fmt.Sprintf("device %q of user %q", deviceID, user))
	}
	if err != nil {
		return model.Device{}, err
	}
	return device, nil
}

func (s *Identity) getDevice(ctx context.Context, user model.Identity, deviceID string) (model.Device, error) {
	var device model.Device
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		d, err := stores.Devices().Get(ctx, user, deviceID)
		if err != nil {
			return err
		}
		device = d
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Device{}, err
		}
		return model.Device{}, fmt.Errorf("failed to get device: %w", err)
	}
	return device, nil
}
