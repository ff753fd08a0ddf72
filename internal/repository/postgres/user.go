package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/healthperm-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db querier
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Get(ctx context.Context, identity model.Identity) (model.User, error) {
	var (
		user         model.User
		registeredAt int64
	)
	query := `SELECT identity, registered, registered_at FROM users WHERE identity = $1`

	err := r.db.QueryRow(ctx, query, string(identity)).Scan(&user.Identity, &user.Registered, &registeredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	user.RegisteredAt = model.LogicalTime(fromDB(registeredAt))

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	registeredAt, err := toDB(uint64(user.RegisteredAt))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	query := `INSERT INTO users (identity, registered, registered_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (identity) DO UPDATE
			  SET registered = EXCLUDED.registered, registered_at = EXCLUDED.registered_at
			  WHERE users.registered = FALSE`

	tag, err := r.db.Exec(ctx, query, string(user.Identity), user.Registered, registeredAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}

	return nil
}
