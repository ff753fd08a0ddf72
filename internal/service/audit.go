package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/auditchain"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
)

// Audit is the append-only log of access events.
type Audit struct {
	tx        model.Transactor
	clock     model.Clock
	registrar model.Identity
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewAudit(
	tx model.Transactor,
	clock model.Clock,
	registrar model.Identity,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Audit {
	return &Audit{
		tx:        tx,
		clock:     clock,
		registrar: registrar,
		metrics:   metrics,
		logger:    logger,
	}
}

// LogAccess appends an entry and returns its access id. Only the consumer itself
// or the registrar may record an access.
func (s *Audit) LogAccess(
	ctx context.Context,
	caller, user, consumer model.Identity,
	category model.Category,
	purpose string,
) (accessID uint64, err error) {
	defer func() { observe(s.metrics, "LogAccess", err) }()

	s.logger.Debug("Audit service: logging access",
		"caller", caller,
		"user", user,
		"consumer", consumer,
		"category", category)

	if err := validateIdentity("caller", caller); err != nil {
		return 0, err
	}
	if err := validateEntry(user, consumer, category, purpose); err != nil {
		return 0, err
	}
	if caller != consumer && caller != s.registrar {
		s.logger.Info("Audit service: rejected access log from another identity",
			"caller", caller,
			"consumer", consumer)
		return 0, apierrors.NewErrUnauthorized(string(caller))
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		var err error
		accessID, err = s.appendEntry(ctx, stores, user, consumer, category, purpose)
		return err
	})
	if err != nil {
		s.logger.Error("Audit service: failed to log access",
			"user", user,
			"consumer", consumer,
			"error", err.Error())
		return 0, err
	}

	s.metrics.RecordAuditEntry(accessID + 1)
	s.logger.Info("Audit service: access logged",
		"access_id", accessID,
		"user", user,
		"consumer", consumer,
		"category", category)

	return accessID, nil
}

// RequestAccess evaluates consumer's grant on user's category and, when it is
// active, logs the access in the same unit. A denied request writes nothing.
func (s *Audit) RequestAccess(
	ctx context.Context,
	consumer, user model.Identity,
	category model.Category,
	purpose string,
) (accessID uint64, err error) {
	defer func() { observe(s.metrics, "RequestAccess", err) }()

	s.logger.Debug("Audit service: evaluating access request",
		"user", user,
		"consumer", consumer,
		"category", category)

	if err := validateEntry(user, consumer, category, purpose); err != nil {
		return 0, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		key := model.GrantKey{User: user, Consumer: consumer, Category: category}
		active, err := hasActiveGrant(ctx, stores, key, s.clock.Now())
		if err != nil {
			return err
		}
		if !active {
			return apierrors.NewErrAccessDenied(string(consumer), string(user), string(category))
		}

		accessID, err = s.appendEntry(ctx, stores, user, consumer, category, purpose)
		return err
	})
	if err != nil {
		if isAPIError(err) {
			s.logger.Info("Audit service: access request denied",
				"user", user,
				"consumer", consumer,
				"category", category)
		} else {
			s.logger.Error("Audit service: failed to evaluate access request",
				"user", user,
				"consumer", consumer,
				"error", err.Error())
		}
		return 0, err
	}

	s.metrics.RecordAuditEntry(accessID + 1)
	s.logger.Info("Audit service: access granted and logged",
		"access_id", accessID,
		"user", user,
		"consumer", consumer,
		"category", category)

	return accessID, nil
}

// appendEntry allocates the next id and writes the sealed entry. Both effects
// belong to the caller's transaction.
func (s *Audit) appendEntry(
	ctx context.Context,
	stores model.Stores,
	user, consumer model.Identity,
	category model.Category,
	purpose string,
) (uint64, error) {
	state, err := stores.Audit().Reserve(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve access id: %w", err)
	}

	entry, err := auditchain.Seal(model.AuditEntry{
		AccessID:   state.NextID,
		User:       user,
		Consumer:   consumer,
		Category:   category,
		AccessTime: s.clock.Now(),
		Purpose:    purpose,
	}, state.HeadHash)
	if err != nil {
		return 0, fmt.Errorf("failed to seal audit entry: %w", err)
	}

	if err := stores.Audit().Insert(ctx, entry); err != nil {
		return 0, fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return entry.AccessID, nil
}

// GetAuditEntry returns the entry with accessID; ok is false for unused ids.
func (s *Audit) GetAuditEntry(ctx context.Context, accessID uint64) (entry model.AuditEntry, ok bool, err error) {
	err = s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		e, err := stores.Audit().Get(ctx, accessID)
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get audit entry: %w", err)
		}
		entry, ok = e, true
		return nil
	})
	if err != nil {
		return model.AuditEntry{}, false, err
	}
	return entry, ok, nil
}

// GetLogCounter returns the next access id to be allocated.
func (s *Audit) GetLogCounter(ctx context.Context) (uint64, error) {
	var counter uint64
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		var err error
		counter, err = stores.Audit().Counter(ctx)
		if err != nil {
			return fmt.Errorf("failed to read audit counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return counter, nil
}

// ListUserAccess returns the ids of entries logged for user in ascending order.
// Only the user or the registrar may list them.
func (s *Audit) ListUserAccess(ctx context.Context, caller, user model.Identity) ([]uint64, error) {
	if err := validateIdentity("user", user); err != nil {
		return nil, err
	}
	if caller != user && caller != s.registrar {
		return nil, apierrors.NewErrUnauthorized(string(caller))
	}

	var ids []uint64
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		var err error
		ids, err = stores.Audit().ListByUser(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to list user audit entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// VerifyChain re-hashes the entries in [from, to), clamped to the log counter, and
// reports the first inconsistent id.
func (s *Audit) VerifyChain(ctx context.Context, from, to uint64) (model.ChainReport, error) {
	var report model.ChainReport
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		counter, err := stores.Audit().Counter(ctx)
		if err != nil {
			return fmt.Errorf("failed to read audit counter: %w", err)
		}
		from, to = clampRange(from, to, counter)

		anchor, entries, err := loadRange(ctx, stores, from, to)
		if err != nil {
			return err
		}

		report, err = verifyRange(from, to, anchor, entries)
		return err
	})
	if err != nil {
		s.logger.Error("Audit service: failed to verify chain",
			"from", from,
			"to", to,
			"error", err.Error())
		return model.ChainReport{}, err
	}

	if !report.Valid {
		s.logger.Warn("Audit service: audit chain is broken",
			"broken_at", report.BrokenAt)
	}

	return report, nil
}

func validateEntry(user, consumer model.Identity, category model.Category, purpose string) error {
	if err := validateIdentity("user", user); err != nil {
		return err
	}
	if err := validateIdentity("consumer", consumer); err != nil {
		return err
	}
	if !category.Valid() {
		return apierrors.NewErrInvalidCategory(string(category))
	}
	return validateBounded("purpose", purpose, model.MaxPurposeLength)
}

func clampRange(from, to, counter uint64) (uint64, uint64) {
	if to > counter {
		to = counter
	}
	if from > to {
		from = to
	}
	return from, to
}

// loadRange reads entries [from, to) and the hash the first of them must link to.
func loadRange(ctx context.Context, stores model.Stores, from, to uint64) (model.Hash, []model.AuditEntry, error) {
	var anchor model.Hash
	if from > 0 {
		prev, err := stores.Audit().Get(ctx, from-1)
		if err != nil {
			return model.Hash{}, nil, fmt.Errorf("failed to get audit entry %d: %w", from-1, err)
		}
		anchor = prev.Hash
	}

	entries, err := stores.Audit().Range(ctx, from, to)
	if err != nil {
		return model.Hash{}, nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return anchor, entries, nil
}

// verifyRange checks entries against the expected range, treating missing trailing
// entries as a break.
func verifyRange(from, to uint64, anchor model.Hash, entries []model.AuditEntry) (model.ChainReport, error) {
	report, err := auditchain.Verify(from, anchor, entries)
	if err != nil {
		return model.ChainReport{}, fmt.Errorf("failed to verify audit chain: %w", err)
	}
	if report.Valid && report.Checked < to-from {
		report.Valid = false
		report.BrokenAt = from + report.Checked
	}
	report.To = to
	return report, nil
}
