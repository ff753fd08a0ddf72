package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	grpcContext "github.com/dtroode/healthperm-server/internal/api/grpc/context"
	"github.com/dtroode/healthperm-server/internal/api/grpc/router"
	"github.com/dtroode/healthperm-server/internal/clock"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
	"github.com/dtroode/healthperm-server/internal/repository/memory"
	"github.com/dtroode/healthperm-server/internal/service"
	"github.com/dtroode/healthperm-server/internal/testutil"
	"github.com/dtroode/healthperm-server/internal/token"
)

const (
	testSecret = "ctl-test-secret"
	registrar  = model.Identity("0xregistrar")
)

// newTestCLI starts an in-process server and returns a cli dialing it.
func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()

	store := memory.NewStore()
	clk := clock.NewManual(1000)
	lg := testutil.MakeNoopLogger()
	m := metrics.New(prometheus.NewRegistry())
	tokens := service.NewTokenService(token.NewJWT(testSecret, time.Minute), lg)

	services := router.Services{
		Identity:     service.NewIdentity(store, clk, m, lg),
		Verification: service.NewVerification(store, clk, registrar, m, lg),
		Ledger:       service.NewLedger(store, clk, m, lg),
		Audit:        service.NewAudit(store, clk, registrar, m, lg),
		Archive:      service.NewArchive(store, nil, registrar, lg),
	}

	lis := bufconn.Listen(1 << 20)
	srv := router.New(services, tokens, grpcContext.NewManager(), m, lg).Register()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	stdout := &bytes.Buffer{}
	c := &cli{
		stdout: stdout,
		stderr: &bytes.Buffer{},
		dial: func(connection) (*grpc.ClientConn, error) {
			return grpc.NewClient("passthrough:///bufnet",
				grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
					return lis.DialContext(ctx)
				}),
				grpc.WithTransportCredentials(insecure.NewCredentials()),
			)
		},
	}
	return c, stdout
}

func mint(t *testing.T, identity model.Identity) string {
	t.Helper()

	tok, err := token.NewJWT(testSecret, time.Minute).GenerateAccessToken(identity)
	require.NoError(t, err)
	return tok
}

func TestCLI_Token(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	c := &cli{stdout: stdout, stderr: &bytes.Buffer{}, dial: func(connection) (*grpc.ClientConn, error) {
		t.Fatal("token must not dial")
		return nil, nil
	}}

	err := c.run(context.Background(), []string{"token", "--identity", "0xalice", "--secret", testSecret})
	require.NoError(t, err)

	identity, err := token.NewJWT(testSecret, time.Minute).ParseAccessToken(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, model.Identity("0xalice"), identity)
}

func TestCLI_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown command", args: []string{"frobnicate"}, wantErr: `unknown command "frobnicate"`},
		{name: "missing required flags", args: []string{"check-access", "--user", "0xalice"}, wantErr: "required flags not set: --consumer, --category"},
		{name: "unknown flag", args: []string{"log-counter", "--nope"}, wantErr: "unknown flag: --nope"},
		{name: "positional argument", args: []string{"log-counter", "extra"}, wantErr: `unexpected argument "extra"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &cli{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, dial: dial}
			err := c.run(context.Background(), tt.args)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCLI_Help(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	c := &cli{stdout: &bytes.Buffer{}, stderr: stderr, dial: dial}
	require.NoError(t, c.run(context.Background(), nil))
	assert.Contains(t, stderr.String(), "authorize-access")
	assert.Contains(t, stderr.String(), "verify-archive")
}

func TestCLI_AgainstServer(t *testing.T) {
	t.Parallel()

	c, stdout := newTestCLI(t)
	ctx := context.Background()
	alice := mint(t, "0xalice")
	clinic := mint(t, "0xclinic")
	reg := mint(t, registrar)

	steps := []struct {
		args []string
		want string
	}{
		{args: []string{"onboard-user", "--token", alice}, want: "{}"},
		{args: []string{"register-entity", "--token", reg, "--consumer", "0xclinic", "--type", "clinic"}, want: "{}"},
		{args: []string{"authorize-access", "--token", alice, "--consumer", "0xclinic", "--category", "blood-pressure"}, want: "{}"},
		{args: []string{"check-access", "--user", "0xalice", "--consumer", "0xclinic", "--category", "blood-pressure"}, want: `"Value": true`},
		{args: []string{"request-access", "--token", clinic, "--user", "0xalice", "--category", "blood-pressure", "--purpose", "review"}, want: `"AccessID": 0`},
		{args: []string{"log-counter"}, want: `"Counter": 1`},
		{args: []string{"verify-chain", "--to", "1"}, want: `"Valid": true`},
	}

	for _, step := range steps {
		stdout.Reset()
		require.NoError(t, c.run(ctx, step.args), step.args[0])
		assert.Contains(t, stdout.String(), step.want, step.args[0])
	}

	err := c.run(ctx, []string{"onboard-user"})
	assert.ErrorContains(t, err, "Unauthenticated")
}
