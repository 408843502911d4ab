package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/showtracker/internal/model"
	"github.com/jackc/pgx/v5"
)

type membershipRepository struct {
	db DBTX
}

func NewMembershipRepository(db DBTX) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) ListShowsForUser(ctx context.Context, userID int64) ([]model.Show, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.title, s.genre, s.rating, s.status, s.created_at, s.updated_at
		FROM shows s
		JOIN show_users su ON su.show_id = s.id
		WHERE su.user_id = $1
		ORDER BY s.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying shows for user %d: %w", userID, err)
	}

	shows, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Show])
	if err != nil {
		return nil, fmt.Errorf("collecting shows for user %d: %w", userID, err)
	}

	return shows, nil
}

func (r *membershipRepository) AddMembership(ctx context.Context, userID, showID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO show_users (user_id, show_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, show_id) DO NOTHING`,
		userID, showID,
	)
	if err != nil {
		return fmt.Errorf("adding show %d to user %d: %w", showID, userID, err)
	}

	return nil
}

func (r *membershipRepository) RemoveMembership(ctx context.Context, userID, showID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM show_users WHERE user_id = $1 AND show_id = $2`, userID, showID)
	if err != nil {
		return false, fmt.Errorf("removing show %d from user %d: %w", showID, userID, err)
	}

	return tag.RowsAffected() > 0, nil
}
