package handler

import (
	"context"

	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/model"
)

// IdentityService defines operations of the user and device registry.
type IdentityService interface {
	OnboardUser(ctx context.Context, caller model.Identity) error
	LinkDevice(ctx context.Context, caller model.Identity, deviceID, deviceType string) error
	UnlinkDevice(ctx context.Context, caller model.Identity, deviceID string) error
	IsRegisteredUser(ctx context.Context, identity model.Identity) (bool, error)
	IsRegisteredDevice(ctx context.Context, user model.Identity, deviceID string) (bool, error)
	GetDevice(ctx context.Context, user model.Identity, deviceID string) (model.Device, error)
}

// Identity handles healthperm.v1.Identity.
type Identity struct {
	permapi.UnimplementedIdentityServer
	identityService IdentityService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

func NewIdentity(identityService IdentityService, contextManager model.ContextManager, logger *logger.Logger) *Identity {
	return &Identity{
		identityService: identityService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

func (h *Identity) OnboardUser(ctx context.Context, _ *permapi.OnboardUserRequest) (*permapi.Empty, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Identity handler: processing onboard request",
		"caller", caller)

	if err := h.identityService.OnboardUser(ctx, caller); err != nil {
		return nil, handleError(err)
	}

	return &permapi.Empty{}, nil
}

func (h *Identity) LinkDevice(ctx context.Context, req *permapi.LinkDeviceRequest) (*permapi.Empty, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Identity handler: processing link device request",
		"caller", caller,
		"device_id", req.DeviceID)

	if err := h.identityService.LinkDevice(ctx, caller, req.DeviceID, req.DeviceType); err != nil {
		return nil, handleError(err)
	}

	return &permapi.Empty{}, nil
}

func (h *Identity) UnlinkDevice(ctx context.Context, req *permapi.UnlinkDeviceRequest) (*permapi.Empty, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Identity handler: processing unlink device request",
		"caller", caller,
		"device_id", req.DeviceID)

	if err := h.identityService.UnlinkDevice(ctx, caller, req.DeviceID); err != nil {
		return nil, handleError(err)
	}

	return &permapi.Empty{}, nil
}

func (h *Identity) IsRegisteredUser(ctx context.Context, req *permapi.IsRegisteredUserRequest) (*permapi.BoolResponse, error) {
	registered, err := h.identityService.IsRegisteredUser(ctx, model.Identity(req.Identity))
	if err != nil {
		h.logger.Error("Identity handler: is registered user query failed",
			"identity", req.Identity,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &permapi.BoolResponse{Value: registered}, nil
}

func (h *Identity) IsRegisteredDevice(ctx context.Context, req *permapi.IsRegisteredDeviceRequest) (*permapi.BoolResponse, error) {
	registered, err := h.identityService.IsRegisteredDevice(ctx, model.Identity(req.User), req.DeviceID)
	if err != nil {
		h.logger.Error("Identity handler: is registered device query failed",
			"user", req.User,
			"device_id", req.DeviceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &permapi.BoolResponse{Value: registered}, nil
}

func (h *Identity) GetDevice(ctx context.Context, req *permapi.GetDeviceRequest) (*permapi.Device, error) {
	device, err := h.identityService.GetDevice(ctx, model.Identity(req.User), req.DeviceID)
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.Device{
		Owner:        string(device.Owner),
		DeviceID:     device.DeviceID,
		DeviceType:   device.DeviceType,
		Registered:   device.Registered,
		RegisteredAt: uint64(device.RegisteredAt),
	}, nil
}
