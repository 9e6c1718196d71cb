package service

import (
	"context"
	"strings"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/model"
)

// Users holds the list of all users.
type Users struct {
	*list[model.User, model.NoFilters]
	api api.UsersAPI
}

func NewUsers(c *api.Client, opts Options) *Users {
	a := c.Users()
	fetch := func(ctx context.Context, _ model.NoFilters) ([]model.User, error) {
		return a.List(ctx)
	}
	return &Users{list: newList("users", fetch, opts), api: a}
}

// Load fetches the list once; later calls are no-ops. Use Refetch to reload.
func (u *Users) Load(ctx context.Context) error {
	_, err := u.SetFilters(ctx, model.NoFilters{})
	return err
}

func (u *Users) Create(ctx context.Context, in model.UserInput) bool {
	return u.mutate(ctx, "create", func(ctx context.Context) error {
		_, err := u.api.Create(ctx, in)
		return err
	})
}

func (u *Users) Update(ctx context.Context, id int64, in model.UserInput) bool {
	return u.mutate(ctx, "update", func(ctx context.Context) error {
		_, err := u.api.Update(ctx, id, in)
		return err
	})
}

func (u *Users) Delete(ctx context.Context, id int64) bool {
	return u.remove(ctx, func(ctx context.Context) error {
		return u.api.Delete(ctx, id)
	})
}

// Find returns a loaded user by id.
func (u *Users) Find(id int64) (model.User, bool) {
	for _, usr := range u.State().Items {
		if usr.ID == id {
			return usr, true
		}
	}
	return model.User{}, false
}

// FindByUsername returns a loaded user by username, case-insensitively.
func (u *Users) FindByUsername(name string) (model.User, bool) {
	name = strings.TrimSpace(name)
	for _, usr := range u.State().Items {
		if strings.EqualFold(usr.Username, name) {
			return usr, true
		}
	}
	return model.User{}, false
}
