package api

import (
	"context"
	"net/http"

	"Linkshelf/internal/cli/model"
)

// UsersAPI: запросы к /users/.
type UsersAPI struct{ c *Client }

func (c *Client) Users() UsersAPI { return UsersAPI{c: c} }

func (a UsersAPI) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := a.c.do(ctx, http.MethodGet, "/users/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a UsersAPI) Get(ctx context.Context, id int64) (model.User, error) {
	var out model.User
	err := a.c.do(ctx, http.MethodGet, itemPath("users", id), nil, nil, &out)
	return out, err
}

func (a UsersAPI) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	var out model.User
	err := a.c.do(ctx, http.MethodPost, "/users/", nil, in, &out)
	return out, err
}

func (a UsersAPI) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	var out model.User
	err := a.c.do(ctx, http.MethodPut, itemPath("users", id), nil, in, &out)
	return out, err
}

func (a UsersAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, itemPath("users", id), nil, nil, nil)
}
