// Package apierrors defines the typed, caller-correctable errors returned by the
// permission services and their mapping onto gRPC status codes.
package apierrors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

// Kind identifies a class of API error.
type Kind string

const (
	KindAlreadyRegistered         Kind = "already_registered"
	KindUnknownUser               Kind = "unknown_user"
	KindDeviceAlreadyRegistered   Kind = "device_already_registered"
	KindDeviceNotRegistered       Kind = "device_not_registered"
	KindUnauthorized              Kind = "unauthorized"
	KindAlreadyVerified           Kind = "already_verified"
	KindConsumerNotVerified       Kind = "consumer_not_verified"
	KindInvalidCategory           Kind = "invalid_category"
	KindInvalidExpiry             Kind = "invalid_expiry"
	KindInvalidInput              Kind = "invalid_input"
	KindAccessDenied              Kind = "access_denied"
	KindNotFound                  Kind = "not_found"
	KindUnavailable               Kind = "unavailable"
	KindMissingAuthorizationToken Kind = "missing_authorization_token"
	KindInvalidAuthorizationToken Kind = "invalid_authorization_token"
	KindInternal                  Kind = "internal"
)

// APIError is an expected failure surfaced to the caller.
type APIError struct {
	Kind     Kind
	GRPCCode codes.Code
	Template string
	Args     []any
	Message  string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is matches any APIError of the same kind, so callers can compare against the
// exported sentinels with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, code codes.Code, template string, args ...any) *APIError {
	return &APIError{
		Kind:     kind,
		GRPCCode: code,
		Template: template,
		Args:     args,
		Message:  fmt.Sprintf(template, args...),
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrAlreadyRegistered         = &APIError{Kind: KindAlreadyRegistered}
	ErrUnknownUser               = &APIError{Kind: KindUnknownUser}
	ErrDeviceAlreadyRegistered   = &APIError{Kind: KindDeviceAlreadyRegistered}
	ErrDeviceNotRegistered       = &APIError{Kind: KindDeviceNotRegistered}
	ErrUnauthorized              = &APIError{Kind: KindUnauthorized}
	ErrAlreadyVerified           = &APIError{Kind: KindAlreadyVerified}
	ErrConsumerNotVerified       = &APIError{Kind: KindConsumerNotVerified}
	ErrInvalidCategory           = &APIError{Kind: KindInvalidCategory}
	ErrInvalidExpiry             = &APIError{Kind: KindInvalidExpiry}
	ErrInvalidInput              = &APIError{Kind: KindInvalidInput}
	ErrAccessDenied              = &APIError{Kind: KindAccessDenied}
	ErrNotFound                  = &APIError{Kind: KindNotFound}
	ErrUnavailable               = &APIError{Kind: KindUnavailable}
	ErrMissingAuthorizationToken = &APIError{Kind: KindMissingAuthorizationToken}
	ErrInvalidAuthorizationToken = &APIError{Kind: KindInvalidAuthorizationToken}
)

func NewErrAlreadyRegistered(identity string) *APIError {
	return newError(KindAlreadyRegistered, codes.AlreadyExists, "user %q is already registered", identity)
}

func NewErrUnknownUser(identity string) *APIError {
	return newError(KindUnknownUser, codes.NotFound, "user %q is not registered", identity)
}

func NewErrDeviceAlreadyRegistered(deviceID string) *APIError {
	return newError(KindDeviceAlreadyRegistered, codes.AlreadyExists, "device %q is already registered", deviceID)
}

func NewErrDeviceNotRegistered(deviceID string) *APIError {
	return newError(KindDeviceNotRegistered, codes.NotFound, "device %q is not registered", deviceID)
}

func NewErrUnauthorized(identity string) *APIError {
	return newError(KindUnauthorized, codes.PermissionDenied, "identity %q is not allowed to perform this operation", identity)
}

func NewErrAlreadyVerified(consumer string) *APIError {
	return newError(KindAlreadyVerified, codes.AlreadyExists, "consumer %q is already verified", consumer)
}

func NewErrConsumerNotVerified(consumer string) *APIError {
	return newError(KindConsumerNotVerified, codes.FailedPrecondition, "consumer %q is not a verified entity", consumer)
}

func NewErrInvalidCategory(category string) *APIError {
	return newError(KindInvalidCategory, codes.InvalidArgument, "invalid category %q", category)
}

func NewErrInvalidExpiry(expiry, now uint64) *APIError {
	return newError(KindInvalidExpiry, codes.FailedPrecondition, "expiry %d must be later than current time %d", expiry, now)
}

func NewErrInvalidInput(field, reason string) *APIError {
	return newError(KindInvalidInput, codes.InvalidArgument, "invalid %s: %s", field, reason)
}

func NewErrAccessDenied(consumer, user, category string) *APIError {
	return newError(KindAccessDenied, codes.PermissionDenied, "consumer %q has no active grant for %q of user %q", consumer, category, user)
}

func NewErrNotFound(what string) *APIError {
	return newError(KindNotFound, codes.NotFound, "%s not found", what)
}

func NewErrUnavailable(what string) *APIError {
	return newError(KindUnavailable, codes.Unavailable, "%s is not configured", what)
}

func NewErrMissingAuthorizationToken() *APIError {
	return newError(KindMissingAuthorizationToken, codes.Unauthenticated, "missing authorization token")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return newError(KindInvalidAuthorizationToken, codes.Unauthenticated, "invalid authorization token")
}

func NewErrInternalServerError(err error) *APIError {
	return &APIError{
		Kind:     KindInternal,
		GRPCCode: codes.Internal,
		Template: "internal server error",
		Args:     []any{err},
		Message:  "internal server error",
	}
}

// KindOf returns the kind of err, or "" when err is nil and KindInternal when it is
// not an APIError.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}
