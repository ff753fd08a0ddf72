package model

import "context"

// EntityStore defines persistence operations for verified data consumers.
type EntityStore interface {
	Get(ctx context.Context, consumer Identity) (VerifiedEntity, error)
	// Create stores a verified entity. Returns ErrConflict when the consumer is already verified.
	Create(ctx context.Context, entity VerifiedEntity) error
}

// VerifiedEntity is a data consumer approved by the registrar. Verification is permanent.
type VerifiedEntity struct {
	Consumer     Identity
	ConsumerType string
	Verified     bool
	VerifiedAt   LogicalTime
}
