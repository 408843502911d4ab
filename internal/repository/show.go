package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/showtracker/internal/model"
	"github.com/jackc/pgx/v5"
)

const showColumns = `id, title, genre, rating, status, created_at, updated_at`

type showRepository struct {
	db DBTX
}

func NewShowRepository(db DBTX) ShowRepository {
	return &showRepository{db: db}
}

func (r *showRepository) FindAll(ctx context.Context, filter ShowFilter) ([]model.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows`
	var args []any

	if filter.Genre != nil {
		query += ` WHERE genre = $1`
		args = append(args, *filter.Genre)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying shows: %w", err)
	}

	shows, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Show])
	if err != nil {
		return nil, fmt.Errorf("collecting shows: %w", err)
	}

	return shows, nil
}

func (r *showRepository) FindByID(ctx context.Context, id int64) (*model.Show, error) {
	rows, err := r.db.Query(ctx, `SELECT `+showColumns+` FROM shows WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("querying show %d: %w", id, err)
	}

	return collectOptionalShow(rows)
}

func (r *showRepository) Create(ctx context.Context, params CreateShowParams) (*model.Show, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO shows (title, genre, rating, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+showColumns,
		params.Title, params.Genre, params.Rating, params.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting show: %w", err)
	}

	show, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Show])
	if err != nil {
		return nil, fmt.Errorf("inserting show: %w", err)
	}

	return show, nil
}

// Update writes only rating and status in a single statement, so concurrent
// writers never see a read-modify-write gap.
func (r *showRepository) Update(ctx context.Context, id int64, params UpdateShowParams) (*model.Show, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE shows
		SET rating = COALESCE($2, rating),
		    status = COALESCE($3, status),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+showColumns,
		id, params.Rating, params.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("updating show %d: %w", id, err)
	}

	return collectOptionalShow(rows)
}

func (r *showRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting show %d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}

func collectOptionalShow(rows pgx.Rows) (*model.Show, error) {
	show, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Show])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("collecting show: %w", err)
	}

	return show, nil
}
