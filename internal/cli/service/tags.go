package service

import (
	"context"
	"strings"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/model"
)

// Tags holds the list of all tags.
type Tags struct {
	*list[model.Tag, model.NoFilters]
	api api.TagsAPI
}

func NewTags(c *api.Client, opts Options) *Tags {
	a := c.Tags()
	fetch := func(ctx context.Context, _ model.NoFilters) ([]model.Tag, error) {
		return a.List(ctx)
	}
	return &Tags{list: newList("tags", fetch, opts), api: a}
}

// Load fetches the list once; later calls are no-ops.
func (t *Tags) Load(ctx context.Context) error {
	_, err := t.SetFilters(ctx, model.NoFilters{})
	return err
}

func (t *Tags) Create(ctx context.Context, in model.TagInput) bool {
	if in.Color == "" {
		in.Color = model.DefaultTagColor
	}
	return t.mutate(ctx, "create", func(ctx context.Context) error {
		_, err := t.api.Create(ctx, in)
		return err
	})
}

func (t *Tags) Update(ctx context.Context, id int64, in model.TagInput) bool {
	return t.mutate(ctx, "update", func(ctx context.Context) error {
		_, err := t.api.Update(ctx, id, in)
		return err
	})
}

// Delete removes a tag. The backend refuses with a conflict while bookmarks use it;
// the list then stays as it was and Err carries the reason. A tag already gone is
// dropped from the list by a re-fetch.
func (t *Tags) Delete(ctx context.Context, id int64) bool {
	return t.remove(ctx, func(ctx context.Context) error {
		return t.api.Delete(ctx, id)
	})
}

func (t *Tags) Find(id int64) (model.Tag, bool) {
	for _, tag := range t.State().Items {
		if tag.ID == id {
			return tag, true
		}
	}
	return model.Tag{}, false
}

func (t *Tags) FindByName(name string) (model.Tag, bool) {
	return model.FindTagByName(t.State().Items, name)
}

// Ensure resolves tag names to ids, creating the ones that do not exist yet with
// the default color. Names are matched case-insensitively; blanks are skipped.
// On the first failed creation it stops and returns false.
func (t *Tags) Ensure(ctx context.Context, names []string) ([]int64, bool) {
	known := t.State().Items
	ids := make([]int64, 0, len(names))
	created := false
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if tag, ok := model.FindTagByName(known, name); ok {
			ids = append(ids, tag.ID)
			continue
		}
		var tag model.Tag
		err := t.call(ctx, func(ctx context.Context) error {
			var err error
			tag, err = t.api.Create(ctx, model.TagInput{Name: name, Color: model.DefaultTagColor})
			return err
		})
		if err != nil {
			t.logger.Warnw("tag create failed", "name", name, "error", err)
			if created {
				_ = t.Refetch(ctx)
				t.setErr(err)
			}
			return nil, false
		}
		created = true
		known = append(known, tag)
		ids = append(ids, tag.ID)
	}
	if created {
		_ = t.Refetch(ctx)
	}
	return model.UniqueIDs(ids), true
}
