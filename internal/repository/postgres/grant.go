package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.GrantStore = (*GrantRepository)(nil)

type GrantRepository struct {
	db querier
}

func NewGrantRepository(db querier) *GrantRepository {
	return &GrantRepository{
		db: db,
	}
}

func (r *GrantRepository) Get(ctx context.Context, key model.GrantKey) (model.AccessGrant, error) {
	var (
		grant     = model.AccessGrant{GrantKey: key}
		expiry    *int64
		grantedAt int64
	)
	query := `SELECT granted, expiry, granted_at FROM access_grants
			  WHERE user_identity = $1 AND consumer = $2 AND category = $3`

	err := r.db.QueryRow(ctx, query, string(key.User), string(key.Consumer), string(key.Category)).Scan(
		&grant.Granted, &expiry, &grantedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AccessGrant{}, model.ErrNotFound
		}
		return model.AccessGrant{}, fmt.Errorf("failed to get access grant: %w", err)
	}
	if expiry != nil {
		exp := model.LogicalTime(fromDB(*expiry))
		grant.Expiry = &exp
	}
	grant.GrantedAt = model.LogicalTime(fromDB(grantedAt))

	return grant, nil
}

func (r *GrantRepository) Put(ctx context.Context, grant model.AccessGrant) error {
	var expiry *int64
	if grant.Expiry != nil {
		exp, err := toDB(uint64(*grant.Expiry))
		if err != nil {
			return fmt.Errorf("failed to put access grant: %w", err)
		}
		expiry = &exp
	}
	grantedAt, err := toDB(uint64(grant.GrantedAt))
	if err != nil {
		return fmt.Errorf("failed to put access grant: %w", err)
	}
	query := `INSERT INTO access_grants (user_identity, consumer, category, granted, expiry, granted_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (user_identity, consumer, category) DO UPDATE
			  SET granted = EXCLUDED.granted, expiry = EXCLUDED.expiry, granted_at = EXCLUDED.granted_at`

	_, err = r.db.Exec(ctx, query,
		string(grant.User), string(grant.Consumer), string(grant.Category),
		grant.Granted, expiry, grantedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put access grant: %w", err)
	}

	return nil
}
