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

type tagsCmd struct{}

func (tagsCmd) Name() string        { return "tags" }
func (tagsCmd) Description() string { return "List tags" }
func (tagsCmd) Usage() string       { return "tags" }

func (tagsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d := newDeps(cfg)
	tags := service.NewTags(d.client, d.opts)
	if err := tags.Load(ctx); err != nil {
		return failed("Cannot load tags", err)
	}
	items := tags.State().Items
	if len(items) == 0 {
		fmt.Fprintln(Out, "• no tags")
		return nil
	}
	return view.Tags(Out, items)
}

type tagAddCmd struct{}

func (tagAddCmd) Name() string        { return "tag-add" }
func (tagAddCmd) Description() string { return "Create a tag (default color " + model.DefaultTagColor + ")" }
func (tagAddCmd) Usage() string       { return "tag-add <name> [color]" }

func (tagAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	in := model.TagInput{Name: args[0], Color: model.DefaultTagColor}
	if len(args) == 2 {
		in.Color = args[1]
	}
	d := newDeps(cfg)
	if !d.valid(in) {
		return ErrReported
	}
	tags := service.NewTags(d.client, d.opts)
	done, err := submit("Cannot create tag", func() bool { return tags.Create(ctx, in) })
	if err != nil {
		return err
	}
	if !done {
		return failed("Cannot create tag", tags.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Tag %q created", in.Name)))
	return nil
}

type tagEditCmd struct{}

func (tagEditCmd) Name() string        { return "tag-edit" }
func (tagEditCmd) Description() string { return "Rename or recolor a tag" }
func (tagEditCmd) Usage() string       { return "tag-edit <id> [--name n] [--color c]" }

func (tagEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("tag-edit")
	name := fs.String("name", "", "new name")
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
	tags := service.NewTags(d.client, d.opts)
	if err := tags.Load(ctx); err != nil {
		return failed("Cannot load tags", err)
	}
	cur, ok := tags.Find(id)
	if !ok {
		return failed(fmt.Sprintf("Cannot edit tag %d", id), notFound())
	}
	in := model.TagInput{Name: cur.Name, Color: cur.Color}
	if wasSet(fs, "name") {
		in.Name = *name
	}
	if wasSet(fs, "color") {
		in.Color = *color
	}
	if !d.valid(in) {
		return ErrReported
	}
	done, err := submit("Cannot update tag", func() bool { return tags.Update(ctx, id, in) })
	if err != nil {
		return err
	}
	if !done {
		return failed("Cannot update tag", tags.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Tag %q updated", in.Name)))
	return nil
}

type tagDeleteCmd struct{}

func (tagDeleteCmd) Name() string        { return "tag-delete" }
func (tagDeleteCmd) Description() string { return "Delete a tag that no bookmark uses" }
func (tagDeleteCmd) Usage() string       { return "tag-delete <id>" }

func (tagDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d := newDeps(cfg)
	tags := service.NewTags(d.client, d.opts)
	if err := tags.Load(ctx); err != nil {
		return failed("Cannot load tags", err)
	}
	name := fmt.Sprintf("#%d", id)
	if t, ok := tags.Find(id); ok {
		name = t.Name
	}
	done, err := submit("Cannot delete tag "+name, func() bool { return tags.Delete(ctx, id) })
	if err != nil {
		return err
	}
	if !done {
		notify.Print(Out, notify.TagDeleteFailed(name, tags.Err()))
		return ErrReported
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("Tag %q deleted", name)))
	return nil
}

func init() {
	RegisterCmd(tagsCmd{})
	RegisterCmd(tagAddCmd{})
	RegisterCmd(tagEditCmd{})
	RegisterCmd(tagDeleteCmd{})
}
