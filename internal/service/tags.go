package service

import (
	"context"
	"strings"

	"Linkshelf/internal/model"
	"Linkshelf/internal/repo"
)

const defaultTagColor = "#3B82F6"

type TagService struct {
	tags repo.TagRepository
}

func NewTagService(tags repo.TagRepository) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.tags.List(ctx)
}

func (s *TagService) Get(ctx context.Context, id int64) (*model.Tag, error) {
	t, err := s.tags.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Tag")
	}
	return t, nil
}

func (s *TagService) Create(ctx context.Context, in TagInput) (*model.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if err := s.ensureFree(ctx, 0, name); err != nil {
		return nil, err
	}
	t := &model.Tag{Name: name, Color: in.Color}
	if t.Color == "" {
		t.Color = defaultTagColor
	}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TagService) Update(ctx context.Context, id int64, in TagInput) (*model.Tag, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.ensureFree(ctx, id, name); err != nil {
		return nil, err
	}
	t.Name = name
	if in.Color != "" {
		t.Color = in.Color
	}
	if err := s.tags.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete refuses while any bookmark still carries the tag.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.tags.UsageCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("Tag '%s' is used by %d bookmark(s)", t.Name, n)
	}
	return lookup(s.tags.Delete(ctx, id), "Tag")
}

func (s *TagService) ensureFree(ctx context.Context, selfID int64, name string) error {
	other, err := s.tags.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return conflict("Tag '%s' already exists", other.Name)
	}
	return nil
}
