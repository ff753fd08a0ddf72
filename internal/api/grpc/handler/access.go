package handler

import (
	"context"

	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/model"
)

// LedgerService defines operations of the access grant ledger.
type LedgerService interface {
	AuthorizeAccess(ctx context.Context, caller, consumer model.Identity, category model.Category, expiry *model.LogicalTime) error
	RevokeAccess(ctx context.Context, caller, consumer model.Identity, category model.Category) error
	CheckAccess(ctx context.Context, user, consumer model.Identity, category model.Category) (bool, error)
	GetGrant(ctx context.Context, user, consumer model.Identity, category model.Category) (model.AccessGrant, error)
}

// Access handles healthperm.v1.Access.
type Access struct {
	permapi.UnimplementedAccessServer
	ledgerService  LedgerService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAccess(ledgerService LedgerService, contextManager model.ContextManager, logger *logger.Logger) *Access {
	return &Access{
		ledgerService:  ledgerService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Access) AuthorizeAccess(ctx context.Context, req *permapi.AuthorizeAccessRequest) (*permapi.Empty, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Access handler: processing authorize request",
		"caller", caller,
		"consumer", req.Consumer,
		"category", req.Category)

	err = h.ledgerService.AuthorizeAccess(ctx, caller, model.Identity(req.Consumer), model.Category(req.Category), expiryFromRequest(req.Expiry))
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.Empty{}, nil
}

func (h *Access) RevokeAccess(ctx context.Context, req *permapi.RevokeAccessRequest) (*permapi.Empty, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Access handler: processing revoke request",
		"caller", caller,
		"consumer", req.Consumer,
		"category", req.Category)

	err = h.ledgerService.RevokeAccess(ctx, caller, model.Identity(req.Consumer), model.Category(req.Category))
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.Empty{}, nil
}

func (h *Access) CheckAccess(ctx context.Context, req *permapi.CheckAccessRequest) (*permapi.BoolResponse, error) {
	active, err := h.ledgerService.CheckAccess(ctx, model.Identity(req.User), model.Identity(req.Consumer), model.Category(req.Category))
	if err != nil {
		h.logger.Error("Access handler: check access query failed",
			"user", req.User,
			"consumer", req.Consumer,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &permapi.BoolResponse{Value: active}, nil
}

func (h *Access) GetGrant(ctx context.Context, req *permapi.GetGrantRequest) (*permapi.Grant, error) {
	grant, err := h.ledgerService.GetGrant(ctx, model.Identity(req.User), model.Identity(req.Consumer), model.Category(req.Category))
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.Grant{
		User:      string(grant.User),
		Consumer:  string(grant.Consumer),
		Category:  string(grant.Category),
		Granted:   grant.Granted,
		Expiry:    expiryToResponse(grant.Expiry),
		GrantedAt: uint64(grant.GrantedAt),
	}, nil
}
