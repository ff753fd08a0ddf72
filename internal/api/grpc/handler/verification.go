package handler

import (
	"context"

	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/model"
)

// VerificationService defines operations of the verified consumer registry.
type VerificationService interface {
	RegisterEntity(ctx context.Context, caller, consumer model.Identity, consumerType string) error
	IsVerifiedEntity(ctx context.Context, consumer model.Identity) (bool, error)
}

// Verification handles healthperm.v1.Verification.
type Verification struct {
	permapi.UnimplementedVerificationServer
	verificationService VerificationService
	contextManager      model.ContextManager
	logger              *logger.Logger
}

func NewVerification(verificationService VerificationService, contextManager model.ContextManager, logger *logger.Logger) *Verification {
	return &Verification{
		verificationService: verificationService,
		contextManager:      contextManager,
		logger:              logger,
	}
}

func (h *Verification) RegisterEntity(ctx context.Context, req *permapi.RegisterEntityRequest) (*permapi.Empty, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Verification handler: processing register entity request",
		"caller", caller,
		"consumer", req.Consumer)

	err = h.verificationService.RegisterEntity(ctx, caller, model.Identity(req.Consumer), req.ConsumerType)
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.Empty{}, nil
}

func (h *Verification) IsVerifiedEntity(ctx context.Context, req *permapi.IsVerifiedEntityRequest) (*permapi.BoolResponse, error) {
	verified, err := h.verificationService.IsVerifiedEntity(ctx, model.Identity(req.Consumer))
	if err != nil {
		h.logger.Error("Verification handler: is verified entity query failed",
			"consumer", req.Consumer,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &permapi.BoolResponse{Value: verified}, nil
}
