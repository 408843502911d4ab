package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/showtracker/internal/model"
	"github.com/deppfellow/showtracker/internal/repository"
	"github.com/deppfellow/showtracker/internal/server"
	"golang.org/x/crypto/bcrypt"
)

// welcomeEnqueueTimeout bounds how long user creation waits on Redis.
const welcomeEnqueueTimeout = 2 * time.Second

type UserService struct {
	server      *server.Server
	users       repository.UserRepository
	shows       repository.ShowRepository
	memberships repository.MembershipRepository
	jobs        WelcomeEnqueuer

	passwordCost   int
	enqueueTimeout time.Duration
}

// NewUserService builds the service. jobs may be nil, in which case no
// welcome email is scheduled.
func NewUserService(s *server.Server, repos *repository.Repositories, jobs WelcomeEnqueuer) *UserService {
	return &UserService{
		server:         s,
		users:          repos.Users,
		shows:          repos.Shows,
		memberships:    repos.Memberships,
		jobs:           jobs,
		passwordCost:   bcrypt.DefaultCost,
		enqueueTimeout: welcomeEnqueueTimeout,
	}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

// Create hashes the password, stores the user and schedules the welcome
// email. A failed enqueue is logged and does not fail the request.
func (s *UserService) Create(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.Create(ctx, repository.CreateUserParams{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	log := s.server.Logger.With().Int64("user_id", user.ID).Logger()
	log.Info().Msg("user created")

	if s.jobs != nil {
		// Detached from the request: the user is stored even if the client left.
		enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.enqueueTimeout)
		defer cancel()

		if err := s.jobs.EnqueueWelcomeEmail(enqueueCtx, user.ID, user.Username); err != nil {
			log.Error().Err(err).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// ListShows returns the shows the user watches.
func (s *UserService) ListShows(ctx context.Context, userID int64) ([]model.Show, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.memberships.ListShowsForUser(ctx, userID)
}

// AddShow links the show to the user. Both must exist; adding twice keeps one link.
func (s *UserService) AddShow(ctx context.Context, userID, showID int64) error {
	if err := s.requireBoth(ctx, userID, showID); err != nil {
		return err
	}

	return s.memberships.AddMembership(ctx, userID, showID)
}

// RemoveShow unlinks the show from the user without deleting either.
func (s *UserService) RemoveShow(ctx context.Context, userID, showID int64) error {
	if err := s.requireBoth(ctx, userID, showID); err != nil {
		return err
	}

	removed, err := s.memberships.RemoveMembership(ctx, userID, showID)
	if err != nil {
		return err
	}
	if !removed {
		return membershipNotFound()
	}
	return nil
}

func (s *UserService) requireBoth(ctx context.Context, userID, showID int64) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}

	show, err := s.shows.FindByID(ctx, showID)
	if err != nil {
		return err
	}
	if show == nil {
		return showNotFound()
	}
	return nil
}
