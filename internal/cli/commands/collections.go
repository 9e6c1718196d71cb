package commands

import (
	"context"
	"fmt"

	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/notify"
	"Linkshelf/internal/cli/service"
	"Linkshelf/internal/cli/view"
	"Linkshelf/internal/config"
)

type collectionsCmd struct{}

func (collectionsCmd) Name() string        { return "collections" }
func (collectionsCmd) Description() string { return "List collections, optionally of one user" }
func (collectionsCmd) Usage() string       { return "collections [--user id]" }

func (collectionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("collections")
	var user int64Flag
	fs.Var(&user, "user", "user id")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) > 0 {
		return ErrUsage
	}

	d := newDeps(cfg)
	cols := service.NewCollections(d.client, d.opts)
	if _, err := cols.SetFilters(ctx, model.CollectionFilters{UserID: user.v}); err != nil {
		return failed("Cannot load collections", err)
	}
	items := cols.State().Items
	if len(items) == 0 {
		fmt.Fprintln(Out, "• no collections")
		return nil
	}
	return view.Collections(Out, items)
}

type collectionAddCmd struct{}

func (collectionAddCmd) Name() string        { return "collection-add" }
func (collectionAddCmd) Description() string { return "Create a collection for a user" }
func (collectionAddCmd) Usage() string {
	return "collection-add <user-id> <name> [--description d] [--color c]"
}

func (collectionAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("collection-add")
	desc := fs.String("description", "", "description")
	color := fs.String("color", "", "color, #RRGGBB")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) != 2 {
		return ErrUsage
	}
	userID, err := parseID(pos[0])
	if err != nil {
		return err
	}
	in := model.CollectionInput{
		Name:        pos[1],
		UserID:      userID,
		Description: optString(fs, "description", *desc),
		Color:       optString(fs, "color", *color),
	}

	d := newDeps(cfg)
	if !d.valid(in) {
		return ErrReported
	}
	cols := service.NewCollections(d.client, d.opts)
	done, err := submit("Cannot create collection", func() bool { return cols.Create(ctx, in) })
	if err != nil {
		return err
	}
	if !done {
		return failed("Cannot create collection", cols.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Collection %q created", in.Name)))
	return nil
}

type collectionEditCmd struct{}

func (collectionEditCmd) Name() string        { return "collection-edit" }
func (collectionEditCmd) Description() string { return "Change a collection" }
func (collectionEditCmd) Usage() string {
	return "collection-edit <id> [--name n] [--description d] [--color c]"
}

func (collectionEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("collection-edit")
	name := fs.String("name", "", "new name")
	desc := fs.String("description", "", "new description")
	color := fs.String("color", "", "new color, #RRGGBB")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) != 1 || fs.NFlag() == 0 {
		return ErrUsage
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}

	d := newDeps(cfg)
	cols := service.NewCollections(d.client, d.opts)
	if _, err := cols.SetFilters(ctx, model.CollectionFilters{}); err != nil {
		return failed("Cannot load collections", err)
	}
	cur, ok := cols.Find(id)
	if !ok {
		return failed(fmt.Sprintf("Cannot edit collection %d", id), notFound())
	}
	in := model.CollectionInput{Name: cur.Name, Description: cur.Description, Color: cur.Color, UserID: cur.UserID}
	if wasSet(fs, "name") {
		in.Name = *name
	}
	if v := optString(fs, "description", *desc); v != nil {
		in.Description = v
	}
	if v := optString(fs, "color", *color); v != nil {
		in.Color = v
	}
	if !d.valid(in) {
		return ErrReported
	}
	done, err := submit("Cannot update collection", func() bool { return cols.Update(ctx, id, in) })
	if err != nil {
		return err
	}
	if !done {
		return failed("Cannot update collection", cols.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Collection %q updated", in.Name)))
	return nil
}

type collectionDeleteCmd struct{}

func (collectionDeleteCmd) Name() string        { return "collection-delete" }
func (collectionDeleteCmd) Description() string { return "Delete a collection" }
func (collectionDeleteCmd) Usage() string       { return "collection-delete <id>" }

func (collectionDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	d := newDeps(cfg)
	cols := service.NewCollections(d.client, d.opts)
	done, err := submit(fmt.Sprintf("Cannot delete collection %d", id), func() bool { return cols.Delete(ctx, id) })
	if err != nil {
		return err
	}
	if !done {
		notify.Print(Out, notify.DeleteFailed(fmt.Sprintf("collection %d", id), cols.Err()))
		return ErrReported
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Collection %d deleted", id)))
	return nil
}

func init() {
	RegisterCmd(collectionsCmd{})
	RegisterCmd(collectionAddCmd{})
	RegisterCmd(collectionEditCmd{})
	RegisterCmd(collectionDeleteCmd{})
}
