package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/codec"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/model"
)

// maxArchiveSize bounds the bytes read back from object storage.
const maxArchiveSize = 64 << 20

// archiveDocument is the stored form of an exported audit range.
type archiveDocument struct {
	From    uint64          `cbor:"1,keyasint"`
	To      uint64          `cbor:"2,keyasint"`
	Anchor  []byte          `cbor:"3,keyasint"`
	Entries []archivedEntry `cbor:"4,keyasint"`
}

type archivedEntry struct {
	AccessID   uint64 `cbor:"1,keyasint"`
	User       string `cbor:"2,keyasint"`
	Consumer   string `cbor:"3,keyasint"`
	Category   string `cbor:"4,keyasint"`
	AccessTime uint64 `cbor:"5,keyasint"`
	Purpose    string `cbor:"6,keyasint"`
	PrevHash   []byte `cbor:"7,keyasint"`
	Hash       []byte `cbor:"8,keyasint"`
}

// Archive exports audit ranges to object storage and verifies stored archives.
// A nil storage disables it.
type Archive struct {
	tx        model.Transactor
	storage   model.Storage
	registrar model.Identity
	logger    *logger.Logger
}

func NewArchive(tx model.Transactor, storage model.Storage, registrar model.Identity, logger *logger.Logger) *Archive {
	return &Archive{
		tx:        tx,
		storage:   storage,
		registrar: registrar,
		logger:    logger,
	}
}

// ArchiveKey returns the object key of the archive of [from, to).
func ArchiveKey(from, to uint64) string {
	return fmt.Sprintf("audit/%d-%d.cbor", from, to)
}

// ExportRange uploads entries [from, to) and returns the object key. An archive
// already present under the key is left untouched.
func (s *Archive) ExportRange(ctx context.Context, caller model.Identity, from, to uint64) (string, error) {
	if err := s.authorize(caller); err != nil {
		return "", err
	}
	if from >= to {
		return "", apierrors.NewErrInvalidInput("range", fmt.Sprintf("from %d must be less than to %d", from, to))
	}

	s.logger.Debug("Archive service: exporting audit range",
		"from", from,
		"to", to)

	key := ArchiveKey(from, to)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		s.logger.Error("Archive service: failed to check archive",
			"key", key,
			"error", err.Error())
		return "", fmt.Errorf("failed to check archive: %w", err)
	}
	if exists {
		s.logger.Info("Archive service: archive already exists",
			"key", key)
		return key, nil
	}

	var doc archiveDocument
	err = s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		counter, err := stores.Audit().Counter(ctx)
		if err != nil {
			return fmt.Errorf("failed to read audit counter: %w", err)
		}
		if to > counter {
			return apierrors.NewErrInvalidInput("range", fmt.Sprintf("to %d exceeds log counter %d", to, counter))
		}

		anchor, entries, err := loadRange(ctx, stores, from, to)
		if err != nil {
			return err
		}
		doc = newArchiveDocument(from, to, anchor, entries)
		return nil
	})
	if err != nil {
		if !isAPIError(err) {
			s.logger.Error("Archive service: failed to read audit range",
				"from", from,
				"to", to,
				"error", err.Error())
		}
		return "", err
	}

	data, err := codec.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode archive: %w", err)
	}

	if err := s.storage.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		s.logger.Error("Archive service: failed to upload archive",
			"key", key,
			"error", err.Error())
		return "", fmt.Errorf("failed to upload archive: %w", err)
	}

	s.logger.Info("Archive service: audit range exported",
		"key", key,
		"entries", len(doc.Entries))

	return key, nil
}

// VerifyArchive downloads the archive under key and verifies its hash links.
func (s *Archive) VerifyArchive(ctx context.Context, caller model.Identity, key string) (model.ChainReport, error) {
	if err := s.authorize(caller); err != nil {
		return model.ChainReport{}, err
	}
	if key == "" {
		return model.ChainReport{}, apierrors.NewErrInvalidInput("key", "must not be empty")
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return model.ChainReport{}, fmt.Errorf("failed to check archive: %w", err)
	}
	if !exists {
		return model.ChainReport{}, apierrors.NewErrNotFound(fmt.Sprintf("archive %q", key))
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		s.logger.Error("Archive service: failed to download archive",
			"key", key,
			"error", err.Error())
		return model.ChainReport{}, fmt.Errorf("failed to download archive: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxArchiveSize))
	if err != nil {
		return model.ChainReport{}, fmt.Errorf("failed to read archive: %w", err)
	}

	var doc archiveDocument
	if err := codec.Unmarshal(data, &doc); err != nil {
		return model.ChainReport{}, apierrors.NewErrInvalidInput("archive", "not a valid audit archive")
	}

	anchor, entries, err := doc.decode()
	if err != nil {
		return model.ChainReport{}, apierrors.NewErrInvalidInput("archive", err.Error())
	}

	report, err := verifyRange(doc.From, doc.To, anchor, entries)
	if err != nil {
		return model.ChainReport{}, err
	}

	// A re-sealed archive is internally consistent, so it must also agree with the log.
	err = s.tx.RunReadOnly(ctx, func(ctx context.Context, stores model.Stores) error {
		at, diverged, err := divergence(ctx, stores, doc.From, anchor, entries)
		if err != nil {
			return err
		}
		if diverged && (report.Valid || at < report.BrokenAt) {
			report.Valid = false
			report.BrokenAt = at
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Archive service: failed to compare archive with audit log",
			"key", key,
			"error", err.Error())
		return model.ChainReport{}, err
	}

	s.logger.Info("Archive service: archive verified",
		"key", key,
		"valid", report.Valid)

	return report, nil
}

// divergence returns the first id at which the archived anchor or entries differ
// from the live log. Entries beyond the log counter diverge.
func divergence(ctx context.Context, stores model.Stores, from uint64, anchor model.Hash, entries []model.AuditEntry) (uint64, bool, error) {
	counter, err := stores.Audit().Counter(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read audit counter: %w", err)
	}
	if from > counter {
		return from, true, nil
	}

	end := from + uint64(len(entries))
	if end > counter {
		end = counter
	}
	liveAnchor, live, err := loadRange(ctx, stores, from, end)
	if err != nil {
		return 0, false, err
	}

	if liveAnchor != anchor {
		return from, true, nil
	}
	for i, e := range live {
		if i >= len(entries) || entries[i].Hash != e.Hash {
			return e.AccessID, true, nil
		}
	}
	if len(entries) > len(live) {
		return from + uint64(len(live)), true, nil
	}
	return 0, false, nil
}

func (s *Archive) authorize(caller model.Identity) error {
	if s.storage == nil {
		return apierrors.NewErrUnavailable("audit archive storage")
	}
	if caller != s.registrar {
		return apierrors.NewErrUnauthorized(string(caller))
	}
	return nil
}

func newArchiveDocument(from, to uint64, anchor model.Hash, entries []model.AuditEntry) archiveDocument {
	doc := archiveDocument{
		From:    from,
		To:      to,
		Anchor:  append([]byte(nil), anchor[:]...),
		Entries: make([]archivedEntry, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, archivedEntry{
			AccessID:   e.AccessID,
			User:       string(e.User),
			Consumer:   string(e.Consumer),
			Category:   string(e.Category),
			AccessTime: uint64(e.AccessTime),
			Purpose:    e.Purpose,
			PrevHash:   append([]byte(nil), e.PrevHash[:]...),
			Hash:       append([]byte(nil), e.Hash[:]...),
		})
	}
	return doc
}

func (d archiveDocument) decode() (model.Hash, []model.AuditEntry, error) {
	anchor, err := toHash(d.Anchor)
	if err != nil {
		return model.Hash{}, nil, fmt.Errorf("anchor: %w", err)
	}
	if d.From > d.To {
		return model.Hash{}, nil, fmt.Errorf("range %d-%d is inverted", d.From, d.To)
	}
	if uint64(len(d.Entries)) > d.To-d.From {
		return model.Hash{}, nil, fmt.Errorf("range %d-%d holds %d entries", d.From, d.To, len(d.Entries))
	}

	entries := make([]model.AuditEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		prev, err := toHash(e.PrevHash)
		if err != nil {
			return model.Hash{}, nil, fmt.Errorf("entry %d: %w", e.AccessID, err)
		}
		h, err := toHash(e.Hash)
		if err != nil {
			return model.Hash{}, nil, fmt.Errorf("entry %d: %w", e.AccessID, err)
		}
		entries = append(entries, model.AuditEntry{
			AccessID:   e.AccessID,
			User:       model.Identity(e.User),
			Consumer:   model.Identity(e.Consumer),
			Category:   model.Category(e.Category),
			AccessTime: model.LogicalTime(e.AccessTime),
			Purpose:    e.Purpose,
			PrevHash:   prev,
			Hash:       h,
		})
	}
	return anchor, entries, nil
}

func toHash(raw []byte) (model.Hash, error) {
	var h model.Hash
	if len(raw) != model.HashSize {
		return h, fmt.Errorf("hash has %d bytes, want %d", len(raw), model.HashSize)
	}
	copy(h[:], raw)
	return h, nil
}
