package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.AuditStore = (*AuditRepository)(nil)

type AuditRepository struct {
	db querier
}

func NewAuditRepository(db querier) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

// Reserve advances the counter row. The row lock is held until the surrounding
// transaction ends, so concurrent writers are serialized.
func (r *AuditRepository) Reserve(ctx context.Context) (model.AuditState, error) {
	var (
		nextID int64
		head   []byte
	)
	query := `UPDATE audit_state SET next_id = next_id + 1 WHERE id = 1 RETURNING next_id - 1, head_hash`

	if err := r.db.QueryRow(ctx, query).Scan(&nextID, &head); err != nil {
		return model.AuditState{}, fmt.Errorf("failed to reserve access id: %w", err)
	}
	h, err := scanHash(head)
	if err != nil {
		return model.AuditState{}, fmt.Errorf("failed to reserve access id: %w", err)
	}

	return model.AuditState{NextID: fromDB(nextID), HeadHash: h}, nil
}

func (r *AuditRepository) Insert(ctx context.Context, entry model.AuditEntry) error {
	accessID, err := toDB(entry.AccessID)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	accessTime, err := toDB(uint64(entry.AccessTime))
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	query := `INSERT INTO audit_entries (access_id, user_identity, consumer, category, access_time, purpose, prev_hash, hash)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		accessID, string(entry.User), string(entry.Consumer), string(entry.Category),
		accessTime, entry.Purpose, entry.PrevHash[:], entry.Hash[:],
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	_, err = r.db.Exec(ctx, `UPDATE audit_state SET head_hash = $1 WHERE id = 1`, entry.Hash[:])
	if err != nil {
		return fmt.Errorf("failed to advance audit chain head: %w", err)
	}

	return nil
}

func (r *AuditRepository) Get(ctx context.Context, accessID uint64) (model.AuditEntry, error) {
	id, err := toDB(accessID)
	if err != nil {
		return model.AuditEntry{}, model.ErrNotFound
	}
	query := `SELECT access_id, user_identity, consumer, category, access_time, purpose, prev_hash, hash
			  FROM audit_entries WHERE access_id = $1`

	entry, err := scanEntry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuditEntry{}, model.ErrNotFound
		}
		return model.AuditEntry{}, fmt.Errorf("failed to get audit entry: %w", err)
	}

	return entry, nil
}

func (r *AuditRepository) Counter(ctx context.Context) (uint64, error) {
	var nextID int64
	if err := r.db.QueryRow(ctx, `SELECT next_id FROM audit_state WHERE id = 1`).Scan(&nextID); err != nil {
		return 0, fmt.Errorf("failed to read audit counter: %w", err)
	}
	return fromDB(nextID), nil
}

func (r *AuditRepository) Range(ctx context.Context, from, to uint64) ([]model.AuditEntry, error) {
	lo, err := toDB(from)
	if err != nil {
		return nil, nil
	}
	hi, err := toDB(to)
	if err != nil {
		hi = 1<<63 - 1
	}
	query := `SELECT access_id, user_identity, consumer, category, access_time, purpose, prev_hash, hash
			  FROM audit_entries WHERE access_id >= $1 AND access_id < $2 ORDER BY access_id`

	rows, err := r.db.Query(ctx, query, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return entries, nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, user model.Identity) ([]uint64, error) {
	query := `SELECT access_id FROM audit_entries WHERE user_identity = $1 ORDER BY access_id`

	rows, err := r.db.Query(ctx, query, string(user))
	if err != nil {
		return nil, fmt.Errorf("failed to list user audit entries: %w", err)
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan access id: %w", err)
		}
		ids = append(ids, fromDB(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list user audit entries: %w", err)
	}

	return ids, nil
}

func scanEntry(row pgx.Row) (model.AuditEntry, error) {
	var (
		entry                model.AuditEntry
		accessID, accessTime int64
		category             string
		prevHash, hash       []byte
	)
	err := row.Scan(&accessID, &entry.User, &entry.Consumer, &category, &accessTime, &entry.Purpose, &prevHash, &hash)
	if err != nil {
		return model.AuditEntry{}, err
	}
	entry.AccessID = fromDB(accessID)
	entry.Category = model.Category(category)
	entry.AccessTime = model.LogicalTime(fromDB(accessTime))
	if entry.PrevHash, err = scanHash(prevHash); err != nil {
		return model.AuditEntry{}, err
	}
	if entry.Hash, err = scanHash(hash); err != nil {
		return model.AuditEntry{}, err
	}
	return entry, nil
}
