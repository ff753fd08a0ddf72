// Package auditchain links audit entries into a tamper-evident hash chain.
//
// Each entry hash is a BLAKE3 keyed hash over the deterministic CBOR encoding of
// the entry fields and the previous entry hash. The first entry links to the zero
// hash.
package auditchain

import (
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/dtroode/healthperm-server/internal/codec"
	"github.com/dtroode/healthperm-server/internal/model"
)

type domainKey [32]byte

// entryDomainKey is the ASCII domain name zero-padded to 32 bytes. Changing it
// invalidates every stored chain.
var entryDomainKey = domainKey{
	'h', 'e', 'a', 'l', 't', 'h', 'p', 'e', 'r', 'm', '.', 'a', 'u', 'd', 'i', 't',
	'.', 'e', 'n', 't', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// hashInput is the canonical hashed form of an entry. Field keys are fixed
// integers so renaming Go fields does not change hashes.
type hashInput struct {
	AccessID   uint64 `cbor:"1,keyasint"`
	User       string `cbor:"2,keyasint"`
	Consumer   string `cbor:"3,keyasint"`
	Category   string `cbor:"4,keyasint"`
	AccessTime uint64 `cbor:"5,keyasint"`
	Purpose    string `cbor:"6,keyasint"`
	PrevHash   []byte `cbor:"7,keyasint"`
}

// Hash computes the chain hash of entry. entry.Hash is ignored.
func Hash(entry model.AuditEntry) (model.Hash, error) {
	data, err := codec.Marshal(hashInput{
		AccessID:   entry.AccessID,
		User:       string(entry.User),
		Consumer:   string(entry.Consumer),
		Category:   string(entry.Category),
		AccessTime: uint64(entry.AccessTime),
		Purpose:    entry.Purpose,
		PrevHash:   entry.PrevHash[:],
	})
	if err != nil {
		return model.Hash{}, fmt.Errorf("failed to encode audit entry %d: %w", entry.AccessID, err)
	}
	return keyedHash(entryDomainKey, data), nil
}

// Seal links entry to prev and fills in its hash.
func Seal(entry model.AuditEntry, prev model.Hash) (model.AuditEntry, error) {
	entry.PrevHash = prev
	h, err := Hash(entry)
	if err != nil {
		return model.AuditEntry{}, err
	}
	entry.Hash = h
	return entry, nil
}

// Verify checks a contiguous run of entries. prev is the hash the first entry must
// link to. The report covers [from, from+len(entries)).
func Verify(from uint64, prev model.Hash, entries []model.AuditEntry) (model.ChainReport, error) {
	report := model.ChainReport{From: from, To: from + uint64(len(entries)), Valid: true}

	for i, e := range entries {
		want := from + uint64(i)
		if e.AccessID != want || e.PrevHash != prev {
			return broken(report, want), nil
		}
		h, err := Hash(e)
		if err != nil {
			return model.ChainReport{}, err
		}
		if h != e.Hash {
			return broken(report, want), nil
		}
		prev = e.Hash
		report.Checked++
	}

	return report, nil
}

func broken(r model.ChainReport, at uint64) model.ChainReport {
	r.Valid = false
	r.BrokenAt = at
	return r
}

func keyedHash(key domainKey, data []byte) model.Hash {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("auditchain: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var h model.Hash
	copy(h[:], hasher.Sum(nil))
	return h
}
