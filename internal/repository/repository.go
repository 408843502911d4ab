// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Lookups by id return (nil, nil) when no row matches; absence is a normal
// outcome, not an error.
package repository

import (
	"context"

	"github.com/deppfellow/showtracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ShowFilter narrows FindAll. A nil Genre matches every show.
type ShowFilter struct {
	// Genre is matched exactly and case-sensitively.
	Genre *string
}

type CreateShowParams struct {
	Title  string
	Genre  string
	Rating float64
	Status string
}

// UpdateShowParams lists the mutable show columns. Nil fields are left unchanged.
type UpdateShowParams struct {
	Rating *float64
	Status *string
}

type CreateUserParams struct {
	Username     string
	PasswordHash string
}

type ShowRepository interface {
	FindAll(ctx context.Context, filter ShowFilter) ([]model.Show, error)
	FindByID(ctx context.Context, id int64) (*model.Show, error)
	Create(ctx context.Context, params CreateShowParams) (*model.Show, error)
	Update(ctx context.Context, id int64, params UpdateShowParams) (*model.Show, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type UserRepository interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
}

type MembershipRepository interface {
	ListShowsForUser(ctx context.Context, userID int64) ([]model.Show, error)
	// AddMembership is idempotent: adding an existing edge is a no-op.
	AddMembership(ctx context.Context, userID, showID int64) error
	// RemoveMembership reports whether an edge was removed.
	RemoveMembership(ctx context.Context, userID, showID int64) (bool, error)
}
