package service

import (
	"context"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/model"
)

// Bookmarks holds the bookmarks matching the current query.
type Bookmarks struct {
	*list[model.Bookmark, model.BookmarkQuery]
	api api.BookmarksAPI
}

func NewBookmarks(c *api.Client, opts Options) *Bookmarks {
	a := c.Bookmarks()
	fetch := func(ctx context.Context, q model.BookmarkQuery) ([]model.Bookmark, error) {
		return a.List(ctx, q.Filters)
	}
	return &Bookmarks{list: newList("bookmarks", fetch, opts), api: a}
}

// Search re-queries with a new search term from the first page, keeping the other filters.
func (b *Bookmarks) Search(ctx context.Context, term string) error {
	q := b.Filters()
	q.Filters.Search = term
	q.Filters.Skip = 0
	_, err := b.SetFilters(ctx, q)
	return err
}

func (b *Bookmarks) Create(ctx context.Context, in model.BookmarkInput) bool {
	return b.mutate(ctx, "create", func(ctx context.Context) error {
		_, err := b.api.Create(ctx, in)
		return err
	})
}

func (b *Bookmarks) Update(ctx context.Context, id int64, in model.BookmarkUpdate) bool {
	return b.mutate(ctx, "update", func(ctx context.Context) error {
		_, err := b.api.Update(ctx, id, in)
		return err
	})
}

// Delete removes a bookmark. A bookmark already gone on the backend still
// drops out of the list, and false is returned.
func (b *Bookmarks) Delete(ctx context.Context, id int64) bool {
	return b.remove(ctx, func(ctx context.Context) error {
		return b.api.Delete(ctx, id)
	})
}

func (b *Bookmarks) Find(id int64) (model.Bookmark, bool) {
	for _, bm := range b.State().Items {
		if bm.ID == id {
			return bm, true
		}
	}
	return model.Bookmark{}, false
}
