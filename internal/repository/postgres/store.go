package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.Transactor = (*Store)(nil)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store runs every operation in its own postgres transaction.
type Store struct {
	db *Connection
}

func NewStore(db *Connection) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	return s.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (s *Store) RunReadOnly(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	return s.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadOnly}, fn)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) run(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, stores model.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	return pgx.BeginTxFunc(ctx, s.db.Pool, opts, func(tx pgx.Tx) error {
		return fn(ctx, txStores{q: tx})
	})
}

type txStores struct {
	q querier
}

func (s txStores) Users() model.UserStore      { return NewUserRepository(s.q) }
func (s txStores) Devices() model.DeviceStore  { return NewDeviceRepository(s.q) }
func (s txStores) Entities() model.EntityStore { return NewEntityRepository(s.q) }
func (s txStores) Grants() model.GrantStore    { return NewGrantRepository(s.q) }
func (s txStores) Audit() model.AuditStore     { return NewAuditRepository(s.q) }

// toDB converts an unsigned counter or timestamp to the BIGINT column type.
func toDB(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("value %d overflows bigint", v)
	}
	return int64(v), nil
}

func fromDB(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

func scanHash(raw []byte) (model.Hash, error) {
	var h model.Hash
	if len(raw) != model.HashSize {
		return h, fmt.Errorf("stored hash has %d bytes, want %d", len(raw), model.HashSize)
	}
	copy(h[:], raw)
	return h, nil
}
