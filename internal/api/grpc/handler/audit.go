package handler

import (
	"context"

	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/model"
)

// AuditService defines operations of the audit log.
type AuditService interface {
	LogAccess(ctx context.Context, caller, user, consumer model.Identity, category model.Category, purpose string) (uint64, error)
	RequestAccess(ctx context.Context, consumer, user model.Identity, category model.Category, purpose string) (uint64, error)
	GetAuditEntry(ctx context.Context, accessID uint64) (model.AuditEntry, bool, error)
	GetLogCounter(ctx context.Context) (uint64, error)
	ListUserAccess(ctx context.Context, caller, user model.Identity) ([]uint64, error)
	VerifyChain(ctx context.Context, from, to uint64) (model.ChainReport, error)
}

// ArchiveService defines export and verification of audit archives.
type ArchiveService interface {
	ExportRange(ctx context.Context, caller model.Identity, from, to uint64) (string, error)
	VerifyArchive(ctx context.Context, caller model.Identity, key string) (model.ChainReport, error)
}

// Audit handles healthperm.v1.Audit.
type Audit struct {
	permapi.UnimplementedAuditServer
	auditService   AuditService
	archiveService ArchiveService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAudit(
	auditService AuditService,
	archiveService ArchiveService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Audit {
	return &Audit{
		auditService:   auditService,
		archiveService: archiveService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Audit) LogAccess(ctx context.Context, req *permapi.LogAccessRequest) (*permapi.AccessIDResponse, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Audit handler: processing log access request",
		"caller", caller,
		"user", req.User,
		"consumer", req.Consumer,
		"category", req.Category)

	id, err := h.auditService.LogAccess(ctx, caller, model.Identity(req.User), model.Identity(req.Consumer), model.Category(req.Category), req.Purpose)
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.AccessIDResponse{AccessID: id}, nil
}

func (h *Audit) RequestAccess(ctx context.Context, req *permapi.RequestAccessRequest) (*permapi.AccessIDResponse, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Audit handler: processing access request",
		"consumer", caller,
		"user", req.User,
		"category", req.Category)

	id, err := h.auditService.RequestAccess(ctx, caller, model.Identity(req.User), model.Category(req.Category), req.Purpose)
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.AccessIDResponse{AccessID: id}, nil
}

func (h *Audit) GetAuditEntry(ctx context.Context, req *permapi.GetAuditEntryRequest) (*permapi.GetAuditEntryResponse, error) {
	entry, ok, err := h.auditService.GetAuditEntry(ctx, req.AccessID)
	if err != nil {
		h.logger.Error("Audit handler: get audit entry failed",
			"access_id", req.AccessID,
			"error", err.Error())
		return nil, handleError(err)
	}
	if !ok {
		return &permapi.GetAuditEntryResponse{}, nil
	}

	return &permapi.GetAuditEntryResponse{
		Found: true,
		Entry: auditEntryToResponse(entry),
	}, nil
}

func (h *Audit) GetLogCounter(ctx context.Context, _ *permapi.GetLogCounterRequest) (*permapi.CounterResponse, error) {
	counter, err := h.auditService.GetLogCounter(ctx)
	if err != nil {
		h.logger.Error("Audit handler: get log counter failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return &permapi.CounterResponse{Counter: counter}, nil
}

func (h *Audit) ListUserAccess(ctx context.Context, req *permapi.ListUserAccessRequest) (*permapi.ListUserAccessResponse, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	ids, err := h.auditService.ListUserAccess(ctx, caller, model.Identity(req.User))
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.ListUserAccessResponse{AccessIDs: ids}, nil
}

func (h *Audit) VerifyChain(ctx context.Context, req *permapi.VerifyChainRequest) (*permapi.ChainReport, error) {
	report, err := h.auditService.VerifyChain(ctx, req.From, req.To)
	if err != nil {
		return nil, handleError(err)
	}

	return chainReportToResponse(report), nil
}

func (h *Audit) ExportRange(ctx context.Context, req *permapi.ExportRangeRequest) (*permapi.ExportRangeResponse, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Audit handler: processing export request",
		"caller", caller,
		"from", req.From,
		"to", req.To)

	key, err := h.archiveService.ExportRange(ctx, caller, req.From, req.To)
	if err != nil {
		return nil, handleError(err)
	}

	return &permapi.ExportRangeResponse{Key: key}, nil
}

func (h *Audit) VerifyArchive(ctx context.Context, req *permapi.VerifyArchiveRequest) (*permapi.ChainReport, error) {
	caller, err := callerFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	report, err := h.archiveService.VerifyArchive(ctx, caller, req.Key)
	if err != nil {
		return nil, handleError(err)
	}

	return chainReportToResponse(report), nil
}

func auditEntryToResponse(e model.AuditEntry) *permapi.AuditEntry {
	return &permapi.AuditEntry{
		AccessID:   e.AccessID,
		User:       string(e.User),
		Consumer:   string(e.Consumer),
		Category:   string(e.Category),
		AccessTime: uint64(e.AccessTime),
		Purpose:    e.Purpose,
		PrevHash:   e.PrevHash.String(),
		Hash:       e.Hash.String(),
	}
}

func chainReportToResponse(r model.ChainReport) *permapi.ChainReport {
	return &permapi.ChainReport{
		From:     r.From,
		To:       r.To,
		Checked:  r.Checked,
		Valid:    r.Valid,
		BrokenAt: r.BrokenAt,
	}
}
