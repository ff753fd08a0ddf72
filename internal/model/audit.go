package model

import (
	"context"
	"encoding/hex"
)

// HashSize is the length of audit chain hashes.
const HashSize = 32

// Hash is a BLAKE3 digest linking audit entries.
type Hash [HashSize]byte

// String returns the hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the genesis (all-zero) hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// AuditStore defines persistence operations for the append-only audit log.
type AuditStore interface {
	// Reserve allocates the next access id and returns it together with the current chain head.
	// The counter is advanced in the surrounding transaction.
	Reserve(ctx context.Context) (AuditState, error)
	// Insert appends an entry under a reserved id and advances the chain head to its hash.
	Insert(ctx context.Context, entry AuditEntry) error
	Get(ctx context.Context, accessID uint64) (AuditEntry, error)
	// Counter returns the next access id to be allocated.
	Counter(ctx context.Context) (uint64, error)
	// Range returns entries with ids in [from, to) in ascending order.
	Range(ctx context.Context, from, to uint64) ([]AuditEntry, error)
	// ListByUser returns the access ids logged for user in ascending order.
	ListByUser(ctx context.Context, user Identity) ([]uint64, error)
}

// AuditState is the process-wide audit counter together with the chain head.
type AuditState struct {
	NextID   uint64
	HeadHash Hash
}

// AuditEntry is an immutable record of one access event.
type AuditEntry struct {
	AccessID   uint64
	User       Identity
	Consumer   Identity
	Category   Category
	AccessTime LogicalTime
	Purpose    string
	PrevHash   Hash
	Hash       Hash
}

// ChainReport is the outcome of an audit chain verification.
type ChainReport struct {
	From     uint64
	To       uint64
	Checked  uint64
	Valid    bool
	BrokenAt uint64
}
