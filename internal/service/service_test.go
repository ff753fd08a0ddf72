package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthperm-server/internal/clock"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
	"github.com/dtroode/healthperm-server/internal/repository/memory"
	"github.com/dtroode/healthperm-server/internal/testutil"
)

const testRegistrar = model.Identity("0xregistrar")

type testEnv struct {
	store        *memory.Store
	clock        *clock.Manual
	metrics      *metrics.Metrics
	identity     *Identity
	verification *Verification
	ledger       *Ledger
	audit        *Audit
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	clk := clock.NewManual(1000)
	m := metrics.New(prometheus.NewRegistry())
	lg := testutil.MakeNoopLogger()

	return &testEnv{
		store:        store,
		clock:        clk,
		metrics:      m,
		identity:     NewIdentity(store, clk, m, lg),
		verification: NewVerification(store, clk, testRegistrar, m, lg),
		ledger:       NewLedger(store, clk, m, lg),
		audit:        NewAudit(store, clk, testRegistrar, m, lg),
	}
}

func (e *testEnv) onboard(t *testing.T, users ...model.Identity) {
	t.Helper()
	for _, u := range users {
		require.NoError(t, e.identity.OnboardUser(context.Background(), u))
	}
}

func (e *testEnv) verify(t *testing.T, consumers ...model.Identity) {
	t.Helper()
	for _, c := range consumers {
		require.NoError(t, e.verification.RegisterEntity(context.Background(), testRegistrar, c, "clinic"))
	}
}

func (e *testEnv) grant(t *testing.T, user, consumer model.Identity, category model.Category) {
	t.Helper()
	require.NoError(t, e.ledger.AuthorizeAccess(context.Background(), user, consumer, category, nil))
}

func at(t model.LogicalTime) *model.LogicalTime {
	return &t
}

// tamperedTx rewrites audit entries read through it, simulating storage edited
// outside the service.
type tamperedTx struct {
	model.Transactor
	mutate func(*model.AuditEntry)
}

func (t tamperedTx) RunReadOnly(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	return t.Transactor.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		return fn(ctx, tamperedStores{Stores: stores, mutate: t.mutate})
	})
}

type tamperedStores struct {
	model.Stores
	mutate func(*model.AuditEntry)
}

func (s tamperedStores) Audit() model.AuditStore {
	return tamperedAudit{AuditStore: s.Stores.Audit(), mutate: s.mutate}
}

type tamperedAudit struct {
	model.AuditStore
	mutate func(*model.AuditEntry)
}

func (a tamperedAudit) Get(ctx context.Context, accessID uint64) (model.AuditEntry, error) {
	e, err := a.AuditStore.Get(ctx, accessID)
	if err == nil {
		a.mutate(&e)
	}
	return e, err
}

func (a tamperedAudit) Range(ctx context.Context, from, to uint64) ([]model.AuditEntry, error) {
	entries, err := a.AuditStore.Range(ctx, from, to)
	for i := range entries {
		a.mutate(&entries[i])
	}
	return entries, err
}
