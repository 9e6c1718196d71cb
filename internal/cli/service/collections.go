package service

import (
	"context"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/model"
)

// Collections holds collections, optionally narrowed to one user.
type Collections struct {
	*list[model.Collection, model.CollectionFilters]
	api api.CollectionsAPI
}

func NewCollections(c *api.Client, opts Options) *Collections {
	a := c.Collections()
	return &Collections{list: newList("collections", a.List, opts), api: a}
}

func (c *Collections) Create(ctx context.Context, in model.CollectionInput) bool {
	return c.mutate(ctx, "create", func(ctx context.Context) error {
		_, err := c.api.Create(ctx, in)
		return err
	})
}

func (c *Collections) Update(ctx context.Context, id int64, in model.CollectionInput) bool {
	return c.mutate(ctx, "update", func(ctx context.Context) error {
		_, err := c.api.Update(ctx, id, in)
		return err
	})
}

func (c *Collections) Delete(ctx context.Context, id int64) bool {
	return c.remove(ctx, func(ctx context.Context) error {
		return c.api.Delete(ctx, id)
	})
}

func (c *Collections) Find(id int64) (model.Collection, bool) {
	for _, col := range c.State().Items {
		if col.ID == id {
			return col, true
		}
	}
	return model.Collection{}, false
}
