package commands

import (
	"context"
	"fmt"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/filter"
	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/notify"
	"Linkshelf/internal/cli/service"
	"Linkshelf/internal/cli/store"
	"Linkshelf/internal/cli/view"
	"Linkshelf/internal/config"
)

type bookmarksCmd struct{}

func (bookmarksCmd) Name() string        { return "bookmarks" }
func (bookmarksCmd) Description() string { return "List bookmarks with filters" }
func (bookmarksCmd) Usage() string {
	return "bookmarks [--user id] [--collection id|none] [--tag name]... [--search s] [--skip n] [--limit n] [--view grid|table]"
}

func (bookmarksCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("bookmarks")
	var user int64Flag
	var col collectionFlag
	var tagNames stringList
	fs.Var(&user, "user", "user id")
	fs.Var(&col, "collection", "collection id or none")
	fs.Var(&tagNames, "tag", "tag name (repeatable; any of them matches)")
	search := fs.String("search", "", "search in title, url and description")
	skip := fs.Int("skip", 0, "skip n results")
	limit := fs.Int("limit", 0, "return at most n results")
	mode := fs.String("view", string(store.ViewGrid), "grid or table")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) > 0 || *skip < 0 || *limit < 0 {
		return ErrUsage
	}
	vm, ok := store.ParseViewMode(*mode)
	if !ok {
		return ErrUsage
	}

	d := newDeps(cfg)
	sel := store.New()
	if user.v != nil {
		sel.SetSelectedUser(&model.User{ID: *user.v})
	}
	sel.SetSelectedCollection(col.ref)
	sel.SetSearchTerm(*search)
	sel.SetViewMode(vm)

	if len(tagNames) > 0 {
		tags := service.NewTags(d.client, d.opts)
		if err := tags.Load(ctx); err != nil {
			return failed("Cannot load tags", err)
		}
		selected := make([]model.Tag, 0, len(tagNames))
		for _, name := range tagNames {
			t, ok := tags.FindByName(name)
			if !ok {
				notify.Print(Out, notify.Notification{Kind: notify.Failure, Title: fmt.Sprintf("Unknown tag %q", name)})
				return ErrReported
			}
			selected = append(selected, t)
		}
		sel.SetSelectedTags(selected)
	}

	derived := filter.Derive(sel.Snapshot())
	q := derived.Query()
	q.Filters.Skip, q.Filters.Limit = *skip, *limit

	bms := service.NewBookmarks(d.client, d.opts)
	if _, err := bms.SetFilters(ctx, q); err != nil {
		return failed("Cannot load bookmarks", err)
	}
	visible := derived.Apply(bms.State().Items)
	return view.For(sel.ViewMode(), collectionNames(ctx, d, user.v)).Render(Out, visible)
}

// collectionNames loads collection names for display; a failure only costs the names.
func collectionNames(ctx context.Context, d deps, userID *int64) view.Names {
	cols := service.NewCollections(d.client, d.opts)
	if _, err := cols.SetFilters(ctx, model.CollectionFilters{UserID: userID}); err != nil {
		return nil
	}
	names := make(view.Names)
	for _, c := range cols.State().Items {
		names[c.ID] = c.Name
	}
	return names
}

type bookmarkAddCmd struct{}

func (bookmarkAddCmd) Name() string { return "bookmark-add" }
func (bookmarkAddCmd) Description() string {
	return "Add a bookmark; unknown tags are created"
}
func (bookmarkAddCmd) Usage() string {
	return "bookmark-add <user-id> <url> [--title t] [--description d] [--collection id] [--tag name]... [--analyze]"
}

func (bookmarkAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("bookmark-add")
	var col collectionFlag
	var tagNames stringList
	title := fs.String("title", "", "title")
	desc := fs.String("description", "", "description")
	fs.Var(&col, "collection", "collection id or none")
	fs.Var(&tagNames, "tag", "tag name (repeatable)")
	analyze := fs.Bool("analyze", false, "fill empty title and description from the page")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) != 2 {
		return ErrUsage
	}
	userID, err := parseID(pos[0])
	if err != nil {
		return err
	}

	d := newDeps(cfg)
	in := model.BookmarkInput{URL: pos[1], Title: *title, UserID: userID}
	if col.ref != nil {
		in.Collection = *col.ref
	}
	if *desc != "" {
		in.Description = desc
	}

	if *analyze {
		fmt.Fprintln(Out, "→ Analyzing page...")
		res, err := service.NewAssist(d.client, d.opts).AnalyzeURL(ctx, in.URL)
		if err != nil {
			notify.Print(Out, notify.Notification{Kind: notify.Info, Title: "Page analysis skipped", Description: api.Message(err)})
		} else {
			if in.Title == "" && res.Title != nil {
				in.Title = *res.Title
			}
			if in.Description == nil && res.Description != nil {
				in.Description = res.Description
			}
		}
	}

	// валидируем до создания меток, чтобы не плодить их зря
	if !d.valid(in) {
		return ErrReported
	}
	if len(tagNames) > 0 {
		tags := service.NewTags(d.client, d.opts)
		if err := tags.Load(ctx); err != nil {
			return failed("Cannot load tags", err)
		}
		var ids []int64
		ok, err := submit("Cannot create tag", func() bool {
			var done bool
			ids, done = tags.Ensure(ctx, tagNames)
			return done
		})
		if err != nil {
			return err
		}
		if !ok {
			return failed("Cannot create tag", tags.Err())
		}
		in.TagIDs = ids
	}

	bms := service.NewBookmarks(d.client, d.opts)
	ok, err := submit("Cannot create bookmark", func() bool { return bms.Create(ctx, in) })
	if err != nil {
		return err
	}
	if !ok {
		return failed("Cannot create bookmark", bms.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Bookmark %q added", in.Title)))
	return nil
}

type bookmarkEditCmd struct{}

func (bookmarkEditCmd) Name() string        { return "bookmark-edit" }
func (bookmarkEditCmd) Description() string { return "Change a bookmark" }
func (bookmarkEditCmd) Usage() string {
	return "bookmark-edit <id> [--title t] [--url u] [--description d] [--collection id|none] [--tag name]..."
}

func (bookmarkEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("bookmark-edit")
	var col collectionFlag
	var tagNames stringList
	title := fs.String("title", "", "new title")
	rawURL := fs.String("url", "", "new url")
	desc := fs.String("description", "", "new description")
	fs.Var(&col, "collection", "collection id or none")
	fs.Var(&tagNames, "tag", "replace tags (repeatable)")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) != 1 || fs.NFlag() == 0 {
		return ErrUsage
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}

	in := model.BookmarkUpdate{
		Title:       optString(fs, "title", *title),
		URL:         optString(fs, "url", *rawURL),
		Description: optString(fs, "description", *desc),
		Collection:  col.ref,
	}
	d := newDeps(cfg)
	if !d.valid(in) {
		return ErrReported
	}
	if len(tagNames) > 0 {
		tags := service.NewTags(d.client, d.opts)
		if err := tags.Load(ctx); err != nil {
			return failed("Cannot load tags", err)
		}
		var ids []int64
		ok, err := submit("Cannot create tag", func() bool {
			var done bool
			ids, done = tags.Ensure(ctx, tagNames)
			return done
		})
		if err != nil {
			return err
		}
		if !ok {
			return failed("Cannot create tag", tags.Err())
		}
		in.TagIDs = ids
	}

	bms := service.NewBookmarks(d.client, d.opts)
	failTitle := fmt.Sprintf("Cannot update bookmark %d", id)
	ok, err := submit(failTitle, func() bool { return bms.Update(ctx, id, in) })
	if err != nil {
		return err
	}
	if !ok {
		return failed(failTitle, bms.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Bookmark %d updated", id)))
	return nil
}

type bookmarkDeleteCmd struct{}

func (bookmarkDeleteCmd) Name() string        { return "bookmark-delete" }
func (bookmarkDeleteCmd) Description() string { return "Delete a bookmark" }
func (bookmarkDeleteCmd) Usage() string       { return "bookmark-delete <id>" }

func (bookmarkDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	d := newDeps(cfg)
	bms := service.NewBookmarks(d.client, d.opts)
	ok, err := submit(fmt.Sprintf("Cannot delete bookmark %d", id), func() bool { return bms.Delete(ctx, id) })
	if err != nil {
		return err
	}
	if !ok {
		notify.Print(Out, notify.DeleteFailed(fmt.Sprintf("bookmark %d", id), bms.Err()))
		return ErrReported
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Bookmark %d deleted", id)))
	return nil
}

func init() {
	RegisterCmd(bookmarksCmd{})
	RegisterCmd(bookmarkAddCmd{})
	RegisterCmd(bookmarkEditCmd{})
	RegisterCmd(bookmarkDeleteCmd{})
}
