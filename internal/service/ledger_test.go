package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/model"
)

func TestLedger_GrantRevokeRoundTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.onboard(t, "0xalice")
	env.verify(t, "0xclinic")

	require.NoError(t, env.ledger.AuthorizeAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate, nil))

	active, err := env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate)
	require.NoError(t, err)
	assert.True(t, active)

	// Grants are scoped to the exact category.
	active, err = env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryBloodPressure)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, env.ledger.RevokeAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate))

	active, err = env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate)
	require.NoError(t, err)
	assert.False(t, active)

	grant, err := env.ledger.GetGrant(ctx, "0xalice", "0xclinic", model.CategoryCardioRate)
	require.NoError(t, err)
	assert.False(t, grant.Granted)
	assert.Nil(t, grant.Expiry)
}

func TestLedger_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.onboard(t, "0xalice")
	env.verify(t, "0xclinic")

	now := env.clock.Now()

	err := env.ledger.AuthorizeAccess(ctx, "0xalice", "0xclinic", model.CategoryBodyWeight, at(now))
	assert.ErrorIs(t, err, apierrors.ErrInvalidExpiry)

	err = env.ledger.AuthorizeAccess(ctx, "0xalice", "0xclinic", model.CategoryBodyWeight, at(0))
	assert.ErrorIs(t, err, apierrors.ErrInvalidExpiry)

	deadline := now + 1
	require.NoError(t, env.ledger.AuthorizeAccess(ctx, "0xalice", "0xclinic", model.CategoryBodyWeight, at(deadline)))

	active, err := env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryBodyWeight)
	require.NoError(t, err)
	assert.True(t, active, "active while clock < expiry")

	env.clock.Set(deadline)
	active, err = env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryBodyWeight)
	require.NoError(t, err)
	assert.False(t, active, "inactive once clock reaches expiry")

	env.clock.Advance(100)
	active, err = env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryBodyWeight)
	require.NoError(t, err)
	assert.False(t, active)

	// The expired record stays in place until overwritten.
	grant, err := env.ledger.GetGrant(ctx, "0xalice", "0xclinic", model.CategoryBodyWeight)
	require.NoError(t, err)
	assert.True(t, grant.Granted)
	require.NotNil(t, grant.Expiry)
	assert.Equal(t, deadline, *grant.Expiry)
}

func TestLedger_AuthorizeAccess_PreconditionOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.onboard(t, "0xalice")
	env.verify(t, "0xclinic")
	past := at(1)

	tests := []struct {
		name     string
		caller   model.Identity
		consumer model.Identity
		category model.Category
		expiry   *model.LogicalTime
		want     error
	}{
		{
			name:     "unknown user wins over every other failure",
			caller:   "0xnobody",
			consumer: "0xunverified",
			category: "mood",
			expiry:   past,
			want:     apierrors.ErrUnknownUser,
		},
		{
			name:     "unknown user wins over a malformed consumer",
			caller:   "0xnobody",
			consumer: "",
			category: model.CategoryRestMetrics,
			want:     apierrors.ErrUnknownUser,
		},
		{
			name:     "malformed consumer of a registered user",
			caller:   "0xalice",
			consumer: "",
			category: model.CategoryRestMetrics,
			want:     apierrors.ErrInvalidInput,
		},
		{
			name:     "unverified consumer before category",
			caller:   "0xalice",
			consumer: "0xunverified",
			category: "mood",
			expiry:   past,
			want:     apierrors.ErrConsumerNotVerified,
		},
		{
			name:     "category before expiry",
			caller:   "0xalice",
			consumer: "0xclinic",
			category: "mood",
			expiry:   past,
			want:     apierrors.ErrInvalidCategory,
		},
		{
			name:     "expiry last",
			caller:   "0xalice",
			consumer: "0xclinic",
			category: model.CategoryRestMetrics,
			expiry:   past,
			want:     apierrors.ErrInvalidExpiry,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := env.ledger.AuthorizeAccess(ctx, tt.caller, tt.consumer, tt.category, tt.expiry)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLedger_FailedAuthorizeWritesNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.onboard(t, "0xalice")
	env.verify(t, "0xclinic")

	err := env.ledger.AuthorizeAccess(ctx, "0xalice", "0xclinic", model.CategoryRestMetrics, at(5))
	require.ErrorIs(t, err, apierrors.ErrInvalidExpiry)

	_, err = env.ledger.GetGrant(ctx, "0xalice", "0xclinic", model.CategoryRestMetrics)
	assert.ErrorIs(t, err, apierrors.ErrNotFound)
}

func TestLedger_RevokeAccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.onboard(t, "0xalice")

	err := env.ledger.RevokeAccess(ctx, "0xnobody", "0xclinic", model.CategoryCardioRate)
	assert.ErrorIs(t, err, apierrors.ErrUnknownUser)

	err = env.ledger.RevokeAccess(ctx, "0xnobody", "", model.CategoryCardioRate)
	assert.ErrorIs(t, err, apierrors.ErrUnknownUser)

	err = env.ledger.RevokeAccess(ctx, "0xalice", "", model.CategoryCardioRate)
	assert.ErrorIs(t, err, apierrors.ErrInvalidInput)

	err = env.ledger.RevokeAccess(ctx, "0xalice", "0xclinic", "mood")
	assert.ErrorIs(t, err, apierrors.ErrInvalidCategory)

	// Revoking without a grant and without a verified consumer succeeds, twice.
	require.NoError(t, env.ledger.RevokeAccess(ctx, "0xalice", "0xnever-verified", model.CategoryCardioRate))
	require.NoError(t, env.ledger.RevokeAccess(ctx, "0xalice", "0xnever-verified", model.CategoryCardioRate))

	grant, err := env.ledger.GetGrant(ctx, "0xalice", "0xnever-verified", model.CategoryCardioRate)
	require.NoError(t, err)
	assert.False(t, grant.Granted)
	assert.Nil(t, grant.Expiry)
}

func TestLedger_RegrantOverwritesExpiry(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.onboard(t, "0xalice")
	env.verify(t, "0xclinic")

	require.NoError(t, env.ledger.AuthorizeAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate, at(1010)))
	require.NoError(t, env.ledger.AuthorizeAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate, nil))

	env.clock.Advance(1 << 20)
	active, err := env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestLedger_Queries(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	active, err := env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", "mood")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = env.ledger.CheckAccess(ctx, "0xalice", "0xclinic", model.CategoryCardioRate)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = env.ledger.GetGrant(ctx, "0xalice", "0xclinic", "mood")
	assert.ErrorIs(t, err, apierrors.ErrInvalidCategory)
}
