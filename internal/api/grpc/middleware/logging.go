package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/healthperm-server/internal/logger"
)

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	log := l.logger.With(
		"request_id", uuid.NewString(),
		"method", info.FullMethod)

	log.Info("gRPC request started")

	resp, err := handler(ctx, req)

	duration := time.Since(start)
	statusCode := codeOf(err)

	log.Info("gRPC request completed",
		"duration_ms", duration.Milliseconds(),
		"status", statusCode.String())

	if err != nil {
		log.Error("gRPC request failed",
			"error", err.Error(),
			"status", statusCode.String())
	}

	return resp, err
}

func codeOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Internal
}
