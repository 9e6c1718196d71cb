package service

import (
	"context"
	"strings"

	"Linkshelf/internal/model"
	"Linkshelf/internal/repo"
)

type UserService struct {
	users repo.UserRepository
}

func NewUserService(users repo.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "User")
	}
	return u, nil
}

// Create registers a user; username and email must be unused (case-insensitive).
func (s *UserService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	u := &model.User{}
	applyUser(u, in)
	if err := s.ensureFree(ctx, 0, u.Username, u.Email); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyUser(u, in)
	if err := s.ensureFree(ctx, id, u.Username, u.Email); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user with their collections and bookmarks.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return lookup(s.users.Delete(ctx, id), "User")
}

func (s *UserService) ensureFree(ctx context.Context, selfID int64, username, email string) error {
	other, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return conflict("Username already registered")
	}
	other, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return conflict("Email already registered")
	}
	return nil
}

func applyUser(u *model.User, in UserInput) {
	u.Username = strings.TrimSpace(in.Username)
	u.Email = strings.TrimSpace(in.Email)
	u.Gender = nil
	if in.Gender != nil {
		if g := strings.TrimSpace(*in.Gender); g != "" {
			u.Gender = &g
		}
	}
}
