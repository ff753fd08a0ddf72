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

// Ledger records which consumers may access which categories of a user's data.
type Ledger struct {
	tx      model.Transactor
	clock   model.Clock
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewLedger(tx model.Transactor, clock model.Clock, metrics *metrics.Metrics, logger *logger.Logger) *Ledger {
	return &Ledger{
		tx:      tx,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// AuthorizeAccess grants consumer access to category of caller's data until expiry
// (or indefinitely when expiry is nil).
func (s *Ledger) AuthorizeAccess(
	ctx context.Context,
	caller, consumer model.Identity,
	category model.Category,
	expiry *model.LogicalTime,
) (err error) {
	defer func() { observe(s.metrics, "AuthorizeAccess", err) }()

	s.logger.Debug("Ledger service: authorizing access",
		"caller", caller,
		"consumer", consumer,
		"category", category)

	if err := validateIdentity("caller", caller); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		now := s.clock.Now()

		if err := requireUser(ctx, stores, caller); err != nil {
			return err
		}
		if err := validateIdentity("consumer", consumer); err != nil {
			return err
		}
		verified, err := isVerified(ctx, stores, consumer)
		if err != nil {
			return err
		}
		if !verified {
			return apierrors.NewErrConsumerNotVerified(string(consumer))
		}
		if !category.Valid() {
			return apierrors.NewErrInvalidCategory(string(category))
		}
		if expiry != nil && *expiry <= now {
			return apierrors.NewErrInvalidExpiry(uint64(*expiry), uint64(now))
		}

		err = stores.Grants().Put(ctx, model.AccessGrant{
			GrantKey:  model.GrantKey{User: caller, Consumer: consumer, Category: category},
			Granted:   true,
			Expiry:    expiry,
			GrantedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to put access grant: %w", err)
		}
		return nil
	})
	if err != nil {
		if !isAPIError(err) {
			s.logger.Error("Ledger service: failed to authorize access",
				"caller", caller,
				"consumer", consumer,
				"error", err.Error())
		}
		return err
	}

	s.logger.Info("Ledger service: access authorized",
		"caller", caller,
		"consumer", consumer,
		"category", category)

	return nil
}

// RevokeAccess clears any grant of category to consumer. Revoking a missing or
// already revoked grant succeeds.
func (s *Ledger) RevokeAccess(ctx context.Context, caller, consumer model.Identity, category model.Category) (err error) {
	defer func() { observe(s.metrics, "RevokeAccess", err) }()

	s.logger.Debug("Ledger service: revoking access",
		"caller", caller,
		"consumer", consumer,
		"category", category)

	if err := validateIdentity("caller", caller); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores model.Stores) error {
		if err := requireUser(ctx, stores, caller); err != nil {
			return err
		}
		if err := validateIdentity("consumer", consumer); err != nil {
			return err
		}
		if !category.Valid() {
			return apierrors.NewErrInvalidCategory(string(category))
		}

		err := stores.Grants().Put(ctx, model.AccessGrant{
			GrantKey:  model.GrantKey{User: caller, Consumer: consumer, Category: category},
			Granted:   false,
			GrantedAt: s.clock.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to put access grant: %w", err)
		}
		return nil
	})
	if err != nil {
		if !isAPIError(err) {
			s.logger.Error("Ledger service: failed to revoke access",
				"caller", caller,
				"consumer", consumer,
				"error", err.Error())
		}
		return err
	}

	s.logger.Info("Ledger service: access revoked",
		"caller", caller,
		"consumer", consumer,
		"category", category)

	return nil
}

// CheckAccess reports whether consumer currently holds an active grant for category
// of user's data.
func (s *Ledger) CheckAccess(ctx context.Context, user, consumer model.Identity, category model.Category) (bool, error) {
	if !category.Valid() {
		return false, nil
	}

	var active bool
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		var err error
		active, err = hasActiveGrant(ctx, stores, model.GrantKey{User: user, Consumer: consumer, Category: category}, s.clock.Now())
		return err
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

// GetGrant returns the stored grant record, active or not.
func (s *Ledger) GetGrant(ctx context.Context, user, consumer model.Identity, category model.Category) (model.AccessGrant, error) {
	if !category.Valid() {
		return model.AccessGrant{}, apierrors.NewErrInvalidCategory(string(category))
	}

	key := model.GrantKey{User: user, Consumer: consumer, Category: category}
	var grant model.AccessGrant
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		g, err := stores.Grants().Get(ctx, key)
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrNotFound(fmt.Sprintf("grant of %q to %q for %q", user, consumer, category))
		}
		if err != nil {
			return fmt.Errorf("failed to get access grant: %w", err)
		}
		grant = g
		return nil
	})
	if err != nil {
		return model.AccessGrant{}, err
	}
	return grant, nil
}
