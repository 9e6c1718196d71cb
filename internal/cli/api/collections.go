package api

import (
	"context"
	"net/http"

	"Linkshelf/internal/cli/model"
)

// CollectionsAPI: запросы к /collections/.
type CollectionsAPI struct{ c *Client }

func (c *Client) Collections() CollectionsAPI { return CollectionsAPI{c: c} }

func (a CollectionsAPI) List(ctx context.Context, f model.CollectionFilters) ([]model.Collection, error) {
	var out []model.Collection
	if err := a.c.do(ctx, http.MethodGet, "/collections/", f.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a CollectionsAPI) Create(ctx context.Context, in model.CollectionInput) (model.Collection, error) {
	var out model.Collection
	err := a.c.do(ctx, http.MethodPost, "/collections/", nil, in, &out)
	return out, err
}

func (a CollectionsAPI) Update(ctx context.Context, id int64, in model.CollectionInput) (model.Collection, error) {
	var out model.Collection
	err := a.c.do(ctx, http.MethodPut, itemPath("collections", id), nil, in, &out)
	return out, err
}

func (a CollectionsAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, itemPath("collections", id), nil, nil, nil)
}
