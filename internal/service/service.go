// Package service implements the permission registries, the grant ledger and the
// audit log on top of a model.Transactor.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
)

func isAPIError(err error) bool {
	var apiErr *apierrors.APIError
	return errors.As(err, &apiErr)
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apierrors.KindOf(err))
}

func observe(m *metrics.Metrics, operation string, err error) {
	m.IncrementOperation(operation, result(err))
}

func validateIdentity(field string, id model.Identity) error {
	return validateBounded(field, string(id), model.MaxIdentityLength)
}

func validateBounded(field, value string, max int) error {
	if value == "" {
		return apierrors.NewErrInvalidInput(field, "must not be empty")
	}
	if len(value) > max {
		return apierrors.NewErrInvalidInput(field, fmt.Sprintf("must be at most %d bytes", max))
	}
	return nil
}

// requireUser fails with UnknownUser unless identity is a registered user.
func requireUser(ctx context.Context, stores model.Stores, identity model.Identity) error {
	user, err := stores.Users().Get(ctx, identity)
	if errors.Is(err, model.ErrNotFound) || (err == nil && !user.Registered) {
		return apierrors.NewErrUnknownUser(string(identity))
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}

func isVerified(ctx context.Context, stores model.Stores, consumer model.Identity) (bool, error) {
	entity, err := stores.Entities().Get(ctx, consumer)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get verified entity: %w", err)
	}
	return entity.Verified, nil
}

// hasActiveGrant evaluates the access predicate at now. A missing record is inactive.
func hasActiveGrant(ctx context.Context, stores model.Stores, key model.GrantKey, now model.LogicalTime) (bool, error) {
	grant, err := stores.Grants().Get(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get access grant: %w", err)
	}
	return grant.IsActive(now), nil
}
