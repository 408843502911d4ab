package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/showtracker/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, password, created_at, updated_at`

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("collecting users: %w", err)
	}

	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("querying user %d: %w", id, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("collecting user %d: %w", id, err)
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, params CreateUserParams) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING `+userColumns,
		params.Username, params.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return user, nil
}
