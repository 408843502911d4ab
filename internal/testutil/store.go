// Package testutil provides in-memory fakes for tests.
package testutil

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/showtracker/internal/model"
	"github.com/deppfellow/showtracker/internal/repository"
)

// ErrStoreUnavailable is returned by every Store method while Fail is set.
var ErrStoreUnavailable = errors.New("store unavailable")

type membershipKey struct {
	userID, showID int64
}

// Store is an in-memory implementation of the repository interfaces.
//
// Ids are assigned from per-table sequences and never reused, like BIGSERIAL.
type Store struct {
	mu sync.Mutex

	shows       map[int64]model.Show
	users       map[int64]model.User
	memberships map[membershipKey]struct{}
	nextShowID  int64
	nextUserID  int64

	calls int
	fail  bool
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		shows:       map[int64]model.Show{},
		users:       map[int64]model.User{},
		memberships: map[membershipKey]struct{}{},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Repositories exposes the store through the repository container.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Shows:       showRepo{s},
		Users:       userRepo{s},
		Memberships: membershipRepo{s},
	}
}

// Calls reports how many repository methods have been invoked.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// SetFail switches the store into (or out of) the unavailable mode.
func (s *Store) SetFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// HasMembership reports whether the user→show edge exists.
func (s *Store) HasMembership(userID, showID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.memberships[membershipKey{userID, showID}]
	return ok
}

// SeedShow inserts a show without counting as a call.
func (s *Store) SeedShow(title, genre string, rating float64, status string) model.Show {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertShow(repository.CreateShowParams{Title: title, Genre: genre, Rating: rating, Status: status})
}

// SeedUser inserts a user without counting as a call.
func (s *Store) SeedUser(username, passwordHash string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertUser(repository.CreateUserParams{Username: username, PasswordHash: passwordHash})
}

// begin locks the store and records a call. The caller must unlock.
func (s *Store) begin(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	if s.fail {
		return ErrStoreUnavailable
	}
	return ctx.Err()
}

func (s *Store) insertShow(p repository.CreateShowParams) model.Show {
	s.nextShowID++
	ts := s.now()
	show := model.Show{
		ID:        s.nextShowID,
		Title:     p.Title,
		Genre:     p.Genre,
		Rating:    p.Rating,
		Status:    p.Status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.shows[show.ID] = show
	return show
}

func (s *Store) insertUser(p repository.CreateUserParams) model.User {
	s.nextUserID++
	ts := s.now()
	user := model.User{
		ID:        s.nextUserID,
		Username:  p.Username,
		Password:  p.PasswordHash,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.users[user.ID] = user
	return user
}

func (s *Store) sortedShows(keep func(model.Show) bool) []model.Show {
	shows := make([]model.Show, 0, len(s.shows))
	for _, show := range s.shows {
		if keep(show) {
			shows = append(shows, show)
		}
	}
	slices.SortFunc(shows, func(a, b model.Show) int { return cmp.Compare(a.ID, b.ID) })
	return shows
}

type showRepo struct{ s *Store }

func (r showRepo) FindAll(ctx context.Context, filter repository.ShowFilter) ([]model.Show, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return r.s.sortedShows(func(show model.Show) bool {
		return filter.Genre == nil || show.Genre == *filter.Genre
	}), nil
}

func (r showRepo) FindByID(ctx context.Context, id int64) (*model.Show, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	show, ok := r.s.shows[id]
	if !ok {
		return nil, nil
	}
	return &show, nil
}

func (r showRepo) Create(ctx context.Context, params repository.CreateShowParams) (*model.Show, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	show := r.s.insertShow(params)
	return &show, nil
}

func (r showRepo) Update(ctx context.Context, id int64, params repository.UpdateShowParams) (*model.Show, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	show, ok := r.s.shows[id]
	if !ok {
		return nil, nil
	}
	if params.Rating != nil {
		show.Rating = *params.Rating
	}
	if params.Status != nil {
		show.Status = *params.Status
	}
	show.UpdatedAt = r.s.now()
	r.s.shows[id] = show

	return &show, nil
}

func (r showRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	if _, ok := r.s.shows[id]; !ok {
		return 0, nil
	}
	delete(r.s.shows, id)
	for key := range r.s.memberships {
		if key.showID == id {
			delete(r.s.memberships, key)
		}
	}
	return 1, nil
}

type userRepo struct{ s *Store }

func (r userRepo) FindAll(ctx context.Context) ([]model.User, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b model.User) int { return cmp.Compare(a.ID, b.ID) })
	return users, nil
}

func (r userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r userRepo) Create(ctx context.Context, params repository.CreateUserParams) (*model.User, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	user := r.s.insertUser(params)
	return &user, nil
}

type membershipRepo struct{ s *Store }

func (r membershipRepo) ListShowsForUser(ctx context.Context, userID int64) ([]model.Show, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return r.s.sortedShows(func(show model.Show) bool {
		_, ok := r.s.memberships[membershipKey{userID, show.ID}]
		return ok
	}), nil
}

func (r membershipRepo) AddMembership(ctx context.Context, userID, showID int64) error {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	r.s.memberships[membershipKey{userID, showID}] = struct{}{}
	return nil
}

func (r membershipRepo) RemoveMembership(ctx context.Context, userID, showID int64) (bool, error) {
	err := r.s.begin(ctx)
	defer r.s.mu.Unlock()
	if err != nil {
		return false, err
	}

	key := membershipKey{userID, showID}
	if _, ok := r.s.memberships[key]; !ok {
		return false, nil
	}
	delete(r.s.memberships, key)
	return true, nil
}
