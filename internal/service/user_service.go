package service

import (
	"context"
	"errors"

	"comicdash/internal/models"
	"comicdash/internal/repository"
	"comicdash/internal/store"
)

// ErrNoProfile is returned when the caller has a session but no profile row,
// or no session at all.
var ErrNoProfile = errors.New("no profile for current session")

// UserService covers the roster screen and the caller's own profile.
type UserService interface {
	Profile(ctx context.Context) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetSubscribed(ctx context.Context, id string, subscribed bool) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	userRepo repository.UserRepository
	st       *store.Store
}

func NewUserService(userRepo repository.UserRepository, st *store.Store) UserService {
	return &userService{userRepo: userRepo, st: st}
}

// Profile refreshes the store's cached user from the current session.
func (s *userService) Profile(ctx context.Context) (*models.User, error) {
	s.st.FetchUser(ctx)
	user := s.st.User()
	if user == nil {
		if msg := s.st.Err(); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, ErrNoProfile
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) SetSubscribed(ctx context.Context, id string, subscribed bool) (*models.User, error) {
	if err := s.userRepo.SetSubscribed(ctx, id, subscribed); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}
