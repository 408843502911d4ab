package repository

import (
	"github.com/deppfellow/showtracker/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Shows       ShowRepository
	Users       UserRepository
	Memberships MembershipRepository
}

// NewRepositories builds the Postgres repositories on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewPostgresRepositories(s.DB.Pool)
}

// NewPostgresRepositories builds the Postgres repositories on db.
func NewPostgresRepositories(db DBTX) *Repositories {
	return &Repositories{
		Shows:       NewShowRepository(db),
		Users:       NewUserRepository(db),
		Memberships: NewMembershipRepository(db),
	}
}
