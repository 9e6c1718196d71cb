package api

import (
	"context"
	"net/http"

	"Linkshelf/internal/cli/model"
)

// TagsAPI: запросы к /tags/.
type TagsAPI struct{ c *Client }

func (c *Client) Tags() TagsAPI { return TagsAPI{c: c} }

func (a TagsAPI) List(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	if err := a.c.do(ctx, http.MethodGet, "/tags/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a TagsAPI) Get(ctx context.Context, id int64) (model.Tag, error) {
	var out model.Tag
	err := a.c.do(ctx, http.MethodGet, itemPath("tags", id), nil, nil, &out)
	return out, err
}

func (a TagsAPI) Create(ctx context.Context, in model.TagInput) (model.Tag, error) {
	var out model.Tag
	err := a.c.do(ctx, http.MethodPost, "/tags/", nil, in, &out)
	return out, err
}

func (a TagsAPI) Update(ctx context.Context, id int64, in model.TagInput) (model.Tag, error) {
	var out model.Tag
	err := a.c.do(ctx, http.MethodPut, itemPath("tags", id), nil, in, &out)
	return out, err
}

// Delete fails with KindConflict while the tag is referenced by bookmarks.
func (a TagsAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, itemPath("tags", id), nil, nil, nil)
}
