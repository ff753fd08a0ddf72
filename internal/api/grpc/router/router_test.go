package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcContext "github.com/dtroode/healthperm-server/internal/api/grpc/context"
	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/clock"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
	"github.com/dtroode/healthperm-server/internal/repository/memory"
	"github.com/dtroode/healthperm-server/internal/service"
	"github.com/dtroode/healthperm-server/internal/testutil"
	"github.com/dtroode/healthperm-server/internal/token"
)

const registrar = model.Identity("0xregistrar")

type testEnv struct {
	conn   *grpc.ClientConn
	tokens *service.TokenService
	clock  *clock.Manual
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	clk := clock.NewManual(1000)
	lg := testutil.MakeNoopLogger()
	m := metrics.New(prometheus.NewRegistry())
	tokens := service.NewTokenService(token.NewJWT("router-test-secret", time.Minute), lg)

	services := Services{
		Identity:     service.NewIdentity(store, clk, m, lg),
		Verification: service.NewVerification(store, clk, registrar, m, lg),
		Ledger:       service.NewLedger(store, clk, m, lg),
		Audit:        service.NewAudit(store, clk, registrar, m, lg),
		Archive:      service.NewArchive(store, nil, registrar, lg),
	}

	lis := bufconn.Listen(1 << 20)
	srv := New(services, tokens, grpcContext.NewManager(), m, lg).Register()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testEnv{conn: conn, tokens: tokens, clock: clk}
}

func (e *testEnv) as(t *testing.T, identity model.Identity) context.Context {
	t.Helper()

	tok, err := e.tokens.Issue(identity)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+tok)
}

func TestRouter_EndToEnd(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	identity := permapi.NewIdentityClient(env.conn)
	verification := permapi.NewVerificationClient(env.conn)
	access := permapi.NewAccessClient(env.conn)
	audit := permapi.NewAuditClient(env.conn)

	alice := env.as(t, "0xalice")
	clinic := env.as(t, "0xclinic")
	reg := env.as(t, registrar)

	_, err := identity.OnboardUser(alice, &permapi.OnboardUserRequest{})
	require.NoError(t, err)
	_, err = identity.LinkDevice(alice, &permapi.LinkDeviceRequest{DeviceID: "watch-1", DeviceType: "smartwatch"})
	require.NoError(t, err)

	dev, err := identity.GetDevice(context.Background(), &permapi.GetDeviceRequest{User: "0xalice", DeviceID: "watch-1"})
	require.NoError(t, err)
	assert.True(t, dev.Registered)
	assert.Equal(t, "smartwatch", dev.DeviceType)
	assert.Equal(t, uint64(1000), dev.RegisteredAt)

	_, err = verification.RegisterEntity(reg, &permapi.RegisterEntityRequest{Consumer: "0xclinic", ConsumerType: "clinic"})
	require.NoError(t, err)

	expiry := uint64(2000)
	_, err = access.AuthorizeAccess(alice, &permapi.AuthorizeAccessRequest{Consumer: "0xclinic", Category: "cardio-rate", Expiry: &expiry})
	require.NoError(t, err)

	checked, err := access.CheckAccess(context.Background(), &permapi.CheckAccessRequest{User: "0xalice", Consumer: "0xclinic", Category: "cardio-rate"})
	require.NoError(t, err)
	assert.True(t, checked.Value)

	first, err := audit.RequestAccess(clinic, &permapi.RequestAccessRequest{User: "0xalice", Category: "cardio-rate", Purpose: "checkup"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.AccessID)

	second, err := audit.LogAccess(clinic, &permapi.LogAccessRequest{User: "0xalice", Consumer: "0xclinic", Category: "cardio-rate", Purpose: "follow-up"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.AccessID)

	counter, err := audit.GetLogCounter(context.Background(), &permapi.GetLogCounterRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), counter.Counter)

	entry, err := audit.GetAuditEntry(context.Background(), &permapi.GetAuditEntryRequest{AccessID: 1})
	require.NoError(t, err)
	require.True(t, entry.Found)
	assert.Equal(t, "follow-up", entry.Entry.Purpose)
	assert.Len(t, entry.Entry.Hash, 64)

	missing, err := audit.GetAuditEntry(context.Background(), &permapi.GetAuditEntryRequest{AccessID: 7})
	require.NoError(t, err)
	assert.False(t, missing.Found)

	ids, err := audit.ListUserAccess(alice, &permapi.ListUserAccessRequest{User: "0xalice"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, ids.AccessIDs)

	report, err := audit.VerifyChain(context.Background(), &permapi.VerifyChainRequest{From: 0, To: 2})
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, uint64(2), report.Checked)

	_, err = access.RevokeAccess(alice, &permapi.RevokeAccessRequest{Consumer: "0xclinic", Category: "cardio-rate"})
	require.NoError(t, err)

	_, err = audit.RequestAccess(clinic, &permapi.RequestAccessRequest{User: "0xalice", Category: "cardio-rate", Purpose: "again"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestRouter_ErrorMapping(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	identity := permapi.NewIdentityClient(env.conn)
	verification := permapi.NewVerificationClient(env.conn)
	access := permapi.NewAccessClient(env.conn)
	audit := permapi.NewAuditClient(env.conn)

	bob := env.as(t, "0xbob")

	_, err := identity.LinkDevice(bob, &permapi.LinkDeviceRequest{DeviceID: "d", DeviceType: "t"})
	assert.Equal(t, codes.NotFound, status.Code(err), "unknown user")

	_, err = identity.OnboardUser(bob, &permapi.OnboardUserRequest{})
	require.NoError(t, err)
	_, err = identity.OnboardUser(bob, &permapi.OnboardUserRequest{})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = verification.RegisterEntity(bob, &permapi.RegisterEntityRequest{Consumer: "0xlab", ConsumerType: "lab"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err), "only the registrar verifies")

	_, err = access.AuthorizeAccess(bob, &permapi.AuthorizeAccessRequest{Consumer: "0xlab", Category: "body-weight"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err), "consumer not verified")

	checked, err := access.CheckAccess(context.Background(), &permapi.CheckAccessRequest{User: "0xbob", Consumer: "0xlab", Category: "mood"})
	require.NoError(t, err, "checkAccess is a pure query")
	assert.False(t, checked.Value)

	_, err = access.GetGrant(context.Background(), &permapi.GetGrantRequest{User: "0xbob", Consumer: "0xlab", Category: "mood"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = audit.ExportRange(env.as(t, registrar), &permapi.ExportRangeRequest{From: 0, To: 0})
	assert.Equal(t, codes.Unavailable, status.Code(err), "archive storage not configured")

	_, err = audit.ListUserAccess(bob, &permapi.ListUserAccessRequest{User: "0xalice"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestRouter_Authentication(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	identity := permapi.NewIdentityClient(env.conn)

	_, err := identity.OnboardUser(context.Background(), &permapi.OnboardUserRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer not-a-jwt")
	_, err = identity.OnboardUser(bad, &permapi.OnboardUserRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	// A caller identity smuggled in metadata is ignored.
	spoofed := metadata.AppendToOutgoingContext(context.Background(), "x-healthperm-caller", "0xalice")
	_, err = identity.OnboardUser(spoofed, &permapi.OnboardUserRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	registered, err := identity.IsRegisteredUser(context.Background(), &permapi.IsRegisteredUserRequest{Identity: "0xalice"})
	require.NoError(t, err)
	assert.False(t, registered.Value)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp, err := healthpb.NewHealthClient(env.conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
