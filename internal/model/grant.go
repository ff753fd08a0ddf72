package model

import "context"

// GrantStore defines persistence operations for access grants.
type GrantStore interface {
	Get(ctx context.Context, key GrantKey) (AccessGrant, error)
	// Put writes or overwrites the grant under its key.
	Put(ctx context.Context, grant AccessGrant) error
}

// GrantKey addresses a grant: grantor user, consumer and category.
type GrantKey struct {
	User     Identity
	Consumer Identity
	Category Category
}

// AccessGrant records whether a consumer may access a user's category.
// Revocation overwrites the record with Granted=false and no expiry.
type AccessGrant struct {
	GrantKey
	Granted   bool
	Expiry    *LogicalTime
	GrantedAt LogicalTime
}

// IsActive reports whether the grant is effective at now.
func (g AccessGrant) IsActive(now LogicalTime) bool {
	if !g.Granted {
		return false
	}
	return g.Expiry == nil || now < *g.Expiry
}
