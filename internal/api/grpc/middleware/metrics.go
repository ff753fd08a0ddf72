package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/dtroode/healthperm-server/internal/metrics"
)

// Metrics records request latency per gRPC method.
type Metrics struct {
	metrics *metrics.Metrics
}

func NewMetrics(m *metrics.Metrics) *Metrics {
	return &Metrics{metrics: m}
}

func (m *Metrics) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	m.metrics.ObserveRequestLatency(info.FullMethod, time.Since(start))
	return resp, err
}
