package service

import (
	"context"
	"strings"

	"Linkshelf/internal/model"
	"Linkshelf/internal/repo"
)

type CollectionService struct {
	cols  repo.CollectionRepository
	users repo.UserRepository
}

func NewCollectionService(cols repo.CollectionRepository, users repo.UserRepository) *CollectionService {
	return &CollectionService{cols: cols, users: users}
}

func (s *CollectionService) List(ctx context.Context, userID *int64) ([]model.Collection, error) {
	return s.cols.List(ctx, userID)
}

func (s *CollectionService) Get(ctx context.Context, id int64) (*model.Collection, error) {
	c, err := s.cols.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Collection")
	}
	return c, nil
}

func (s *CollectionService) Create(ctx context.Context, in CollectionInput) (*model.Collection, error) {
	if _, err := s.users.Get(ctx, in.UserID); err != nil {
		return nil, lookup(err, "User")
	}
	c := &model.Collection{}
	applyCollection(c, in)
	if err := s.cols.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CollectionService) Update(ctx context.Context, id int64, in CollectionInput) (*model.Collection, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.UserID != c.UserID {
		if _, err := s.users.Get(ctx, in.UserID); err != nil {
			return nil, lookup(err, "User")
		}
	}
	applyCollection(c, in)
	if err := s.cols.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the collection; its bookmarks stay, uncategorized.
func (s *CollectionService) Delete(ctx context.Context, id int64) error {
	return lookup(s.cols.Delete(ctx, id), "Collection")
}

func applyCollection(c *model.Collection, in CollectionInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.Color = in.Color
	c.UserID = in.UserID
}
