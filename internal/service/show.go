package service

import (
	"context"

	"github.com/deppfellow/showtracker/internal/model"
	"github.com/deppfellow/showtracker/internal/repository"
	"github.com/deppfellow/showtracker/internal/server"
)

type ShowService struct {
	server *server.Server
	shows  repository.ShowRepository
}

func NewShowService(s *server.Server, repos *repository.Repositories) *ShowService {
	return &ShowService{
		server: s,
		shows:  repos.Shows,
	}
}

func (s *ShowService) List(ctx context.Context) ([]model.Show, error) {
	return s.shows.FindAll(ctx, repository.ShowFilter{})
}

// ListByGenre returns shows whose genre equals genre exactly. No match is
// an empty list, not an error.
func (s *ShowService) ListByGenre(ctx context.Context, genre string) ([]model.Show, error) {
	return s.shows.FindAll(ctx, repository.ShowFilter{Genre: &genre})
}

func (s *ShowService) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	show, err := s.shows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, showNotFound()
	}
	return show, nil
}

func (s *ShowService) Create(ctx context.Context, params repository.CreateShowParams) (*model.Show, error) {
	show, err := s.shows.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().
		Int64("show_id", show.ID).
		Str("genre", show.Genre).
		Msg("show created")

	return show, nil
}

// UpdateRating overwrites the rating only. A nil rating leaves the show untouched.
func (s *ShowService) UpdateRating(ctx context.Context, id int64, rating *float64) (*model.Show, error) {
	return s.update(ctx, id, repository.UpdateShowParams{Rating: rating})
}

// UpdateStatus overwrites the status only. A nil status leaves the show untouched.
func (s *ShowService) UpdateStatus(ctx context.Context, id int64, status *string) (*model.Show, error) {
	return s.update(ctx, id, repository.UpdateShowParams{Status: status})
}

func (s *ShowService) update(ctx context.Context, id int64, params repository.UpdateShowParams) (*model.Show, error) {
	show, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Rating == nil && params.Status == nil {
		return show, nil
	}

	updated, err := s.shows.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	// Deleted between the lookup and the update.
	if updated == nil {
		return nil, showNotFound()
	}

	return updated, nil
}

// Delete returns how many rows were removed (0 or 1).
func (s *ShowService) Delete(ctx context.Context, id int64) (int64, error) {
	count, err := s.shows.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.server.Logger.Info().Int64("show_id", id).Msg("show deleted")
	}
	return count, nil
}
