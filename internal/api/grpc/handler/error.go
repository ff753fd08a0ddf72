package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/model"
)

// handleError converts a service error into a gRPC status. Anything that is not a
// typed API error is reported as internal without details.
func handleError(err error) error {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) && apiErr.Kind != apierrors.KindInternal {
		return status.Error(apiErr.GRPCCode, apiErr.Message)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request deadline exceeded")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// callerFromContext returns the authenticated caller placed in ctx by the auth interceptor.
func callerFromContext(ctx context.Context, contextManager model.ContextManager) (model.Identity, error) {
	caller, ok := contextManager.GetCallerFromContext(ctx)
	if !ok || caller == "" {
		return "", status.Error(codes.Unauthenticated, apierrors.NewErrMissingAuthorizationToken().Error())
	}
	return caller, nil
}

func expiryFromRequest(expiry *uint64) *model.LogicalTime {
	if expiry == nil {
		return nil
	}
	t := model.LogicalTime(*expiry)
	return &t
}

func expiryToResponse(expiry *model.LogicalTime) *uint64 {
	if expiry == nil {
		return nil
	}
	v := uint64(*expiry)
	return &v
}
