package commands

import (
	"context"
	"fmt"

	"Linkshelf/internal/cli/filter"
	"Linkshelf/internal/cli/form"
	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/notify"
	"Linkshelf/internal/cli/service"
	"Linkshelf/internal/cli/view"
	"Linkshelf/internal/config"
)

type usersCmd struct{}

func (usersCmd) Name() string        { return "users" }
func (usersCmd) Description() string { return "List users" }
func (usersCmd) Usage() string       { return "users [--search term]" }

func (usersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("users")
	search := fs.String("search", "", "substring of username or email")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) > 0 {
		return ErrUsage
	}

	d := newDeps(cfg)
	users := service.NewUsers(d.client, d.opts)
	if err := users.Load(ctx); err != nil {
		return failed("Cannot load users", err)
	}
	list := filter.Users(users.State().Items, *search)
	if len(list) == 0 {
		fmt.Fprintln(Out, "• no users")
		return nil
	}
	return view.Users(Out, list)
}

type userAddCmd struct{}

func (userAddCmd) Name() string        { return "user-add" }
func (userAddCmd) Description() string { return "Create a user" }
func (userAddCmd) Usage() string       { return "user-add <username> <email> [gender]" }

func (userAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	in := model.UserInput{Username: args[0], Email: args[1]}
	if len(args) == 3 {
		g := args[2]
		in.Gender = &g
	}

	d := newDeps(cfg)
	if !d.valid(in) {
		return ErrReported
	}
	users := service.NewUsers(d.client, d.opts)
	done, err := submit("Cannot create user", func() bool { return users.Create(ctx, in) })
	if err != nil {
		return err
	}
	if !done {
		return failed("Cannot create user", users.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("User %q created", in.Username)))
	return nil
}

type userEditCmd struct{}

func (userEditCmd) Name() string        { return "user-edit" }
func (userEditCmd) Description() string { return "Change username, email or gender" }
func (userEditCmd) Usage() string {
	return "user-edit <id> [--username u] [--email e] [--gender g]"
}

func (userEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("user-edit")
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email")
	gender := fs.String("gender", "", "new gender")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) != 1 || fs.NFlag() == 0 {
		return ErrUsage
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}

	d := newDeps(cfg)
	users := service.NewUsers(d.client, d.opts)
	if err := users.Load(ctx); err != nil {
		return failed("Cannot load users", err)
	}
	cur, ok := users.Find(id)
	if !ok {
		notify.Print(Out, notify.Notification{Kind: notify.Failure, Title: fmt.Sprintf("User %d not found", id)})
		return ErrReported
	}

	// PUT требует полную форму: подставляем текущие значения
	in := model.UserInput{Username: cur.Username, Email: cur.Email}
	if cur.Gender != "" {
		g := cur.Gender
		in.Gender = &g
	}
	if wasSet(fs, "username") {
		in.Username = *username
	}
	if wasSet(fs, "email") {
		in.Email = *email
	}
	if g := optString(fs, "gender", *gender); g != nil {
		in.Gender = g
	}
	if !d.valid(in) {
		return ErrReported
	}
	done, err := submit("Cannot update user", func() bool { return users.Update(ctx, id, in) })
	if err != nil {
		return err
	}
	if !done {
		return failed("Cannot update user", users.Err())
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("User %d updated", id)))
	return nil
}

type userDeleteCmd struct{}

func (userDeleteCmd) Name() string { return "user-delete" }
func (userDeleteCmd) Description() string {
	return "Delete a user; the username must be retyped to confirm"
}
func (userDeleteCmd) Usage() string { return "user-delete <id> <confirm-username>" }

func (userDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d := newDeps(cfg)
	users := service.NewUsers(d.client, d.opts)
	if err := users.Load(ctx); err != nil {
		return failed("Cannot load users", err)
	}
	u, ok := users.Find(id)
	if !ok {
		notify.Print(Out, notify.DeleteFailed(fmt.Sprintf("user %d", id), notFound()))
		return ErrReported
	}
	if err := form.ConfirmDeletion(u.Username, args[1]); err != nil {
		notify.Print(Out, notify.Notification{
			Kind:        notify.Failure,
			Title:       "Deletion not confirmed",
			Description: fmt.Sprintf("type %q exactly to delete this user", u.Username),
		})
		return ErrReported
	}
	done, err := submit("Cannot delete user "+u.Username, func() bool { return users.Delete(ctx, id) })
	if err != nil {
		return err
	}
	if !done {
		notify.Print(Out, notify.DeleteFailed("user "+u.Username, users.Err()))
		return ErrReported
	}
	notify.Print(Out, notify.Done(fmt.Sprintf("User %q deleted", u.Username)))
	return nil
}

func init() {
	RegisterCmd(usersCmd{})
	RegisterCmd(userAddCmd{})
	RegisterCmd(userEditCmd{})
	RegisterCmd(userDeleteCmd{})
}
