package service

import (
	"context"
	"strings"

	"Linkshelf/internal/model"
	"Linkshelf/internal/repo"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

type BookmarkService struct {
	bookmarks repo.BookmarkRepository
	users     repo.UserRepository
	cols      repo.CollectionRepository
	tags      repo.TagRepository
}

func NewBookmarkService(b repo.BookmarkRepository, u repo.UserRepository, c repo.CollectionRepository, t repo.TagRepository) *BookmarkService {
	return &BookmarkService{bookmarks: b, users: u, cols: c, tags: t}
}

func (s *BookmarkService) List(ctx context.Context, q BookmarkQuery) ([]model.Bookmark, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)

	out, err := s.bookmarks.List(ctx, repo.BookmarkFilter{
		UserID:       q.UserID,
		CollectionID: q.CollectionID,
		NoCollection: q.NoCollection,
		Search:       q.Search,
		Skip:         max(q.Skip, 0),
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}
	for i := range out {
		normalizeTags(&out[i])
	}
	return out, nil
}

func (s *BookmarkService) Get(ctx context.Context, id int64) (*model.Bookmark, error) {
	b, err := s.bookmarks.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Bookmark")
	}
	normalizeTags(b)
	return b, nil
}

func (s *BookmarkService) Create(ctx context.Context, in BookmarkInput) (*model.Bookmark, error) {
	if _, err := s.users.Get(ctx, in.UserID); err != nil {
		return nil, lookup(err, "User")
	}
	if err := s.checkCollection(ctx, in.CollectionID, in.UserID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	b := &model.Bookmark{
		URL:          strings.TrimSpace(in.URL),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Summary:      in.Summary,
		UserID:       in.UserID,
		CollectionID: in.CollectionID,
		Tags:         tags,
	}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.Get(ctx, b.ID)
}

func (s *BookmarkService) Update(ctx context.Context, id int64, in BookmarkUpdate) (*model.Bookmark, error) {
	b, err := s.bookmarks.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Bookmark")
	}
	if in.URL != nil {
		b.URL = strings.TrimSpace(*in.URL)
	}
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		b.Description = in.Description
	}
	if in.CollectionID.Set {
		if err := s.checkCollection(ctx, in.CollectionID.ID, b.UserID); err != nil {
			return nil, err
		}
		b.CollectionID = in.CollectionID.ID
		b.Collection = nil
	}
	replace := in.TagIDs != nil
	if replace {
		if b.Tags, err = s.resolveTags(ctx, in.TagIDs); err != nil {
			return nil, err
		}
	}
	if err := s.bookmarks.Update(ctx, b, replace); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *BookmarkService) Delete(ctx context.Context, id int64) error {
	return lookup(s.bookmarks.Delete(ctx, id), "Bookmark")
}

// checkCollection: коллекция должна существовать и принадлежать владельцу закладки.
func (s *BookmarkService) checkCollection(ctx context.Context, id *int64, userID int64) error {
	if id == nil {
		return nil
	}
	c, err := s.cols.Get(ctx, *id)
	if err != nil {
		return lookup(err, "Collection")
	}
	if c.UserID != userID {
		return invalid("Collection %d does not belong to user %d", c.ID, userID)
	}
	return nil
}

func (s *BookmarkService) resolveTags(ctx context.Context, ids []int64) ([]model.Tag, error) {
	uniq := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			uniq = append(uniq, id)
		}
	}
	if len(uniq) == 0 {
		return []model.Tag{}, nil
	}
	tags, err := s.tags.GetMany(ctx, uniq)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(uniq) {
		return nil, notFound("Tag not found")
	}
	return tags, nil
}

func normalizeTags(b *model.Bookmark) {
	if b.Tags == nil {
		b.Tags = []model.Tag{}
	}
}
