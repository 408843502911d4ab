package service

import (
	"context"

	"github.com/deppfellow/showtracker/internal/repository"
	"github.com/deppfellow/showtracker/internal/server"
)

// WelcomeEnqueuer schedules the welcome email for a new user.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, userID int64, username string) error
}

type Services struct {
	Shows *ShowService
	Users *UserService
}

// NewServices wires every service. Welcome emails are enqueued on s.Job
// when the job service is running.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var enqueuer WelcomeEnqueuer
	if s.Job != nil {
		enqueuer = s.Job
	}

	return &Services{
		Shows: NewShowService(s, repos),
		Users: NewUserService(s, repos, enqueuer),
	}, nil
}
