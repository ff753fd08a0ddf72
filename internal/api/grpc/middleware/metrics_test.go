package middleware

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"

	"github.com/dtroode/healthperm-server/internal/metrics"
)

func TestMetrics_HandleGRPC(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	mw := NewMetrics(m)

	info := &grpc.UnaryServerInfo{FullMethod: "/healthperm.v1.Access/CheckAccess"}
	handler := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	for i := 0; i < 3; i++ {
		resp, err := mw.HandleGRPC(context.Background(), struct{}{}, info, handler)
		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestLatency))
}

func TestMetrics_HandleGRPC_NilMetrics(t *testing.T) {
	t.Parallel()

	mw := NewMetrics(nil)
	info := &grpc.UnaryServerInfo{FullMethod: "/healthperm.v1.Access/CheckAccess"}

	resp, err := mw.HandleGRPC(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return 1, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp)
}
