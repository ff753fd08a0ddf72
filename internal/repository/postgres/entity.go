package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.EntityStore = (*EntityRepository)(nil)

type EntityRepository struct {
	db querier
}

func NewEntityRepository(db querier) *EntityRepository {
	return &EntityRepository{
		db: db,
	}
}

func (r *EntityRepository) Get(ctx context.Context, consumer model.Identity) (model.VerifiedEntity, error) {
	var (
		entity     model.VerifiedEntity
		verifiedAt int64
	)
	query := `SELECT consumer, consumer_type, verified, verified_at FROM verified_entities WHERE consumer = $1`

	err := r.db.QueryRow(ctx, query, string(consumer)).Scan(
		&entity.Consumer, &entity.ConsumerType, &entity.Verified, &verifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VerifiedEntity{}, model.ErrNotFound
		}
		return model.VerifiedEntity{}, fmt.Errorf("failed to get verified entity: %w", err)
	}
	entity.VerifiedAt = model.LogicalTime(fromDB(verifiedAt))

	return entity, nil
}

func (r *EntityRepository) Create(ctx context.Context, entity model.VerifiedEntity) error {
	verifiedAt, err := toDB(uint64(entity.VerifiedAt))
	if err != nil {
		return fmt.Errorf("failed to create verified entity: %w", err)
	}
	query := `INSERT INTO verified_entities (consumer, consumer_type, verified, verified_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (consumer) DO UPDATE
			  SET consumer_type = EXCLUDED.consumer_type, verified = EXCLUDED.verified, verified_at = EXCLUDED.verified_at
			  WHERE verified_entities.verified = FALSE`

	tag, err := r.db.Exec(ctx, query, string(entity.Consumer), entity.ConsumerType, entity.Verified, verifiedAt)
	if err != nil {
		return fmt.Errorf("failed to create verified entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}

	return nil
}
