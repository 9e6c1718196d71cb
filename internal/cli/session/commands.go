package session

import (
	"fmt"
	"strconv"
	"strings"

	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/notify"
	"Linkshelf/internal/cli/store"
)

const helpText = `Commands:
  user <id|username|all>        select a user
  collection <id|none|all>      select a collection; none = uncategorized
  tag <name>                    toggle a tag (bookmarks with any selected tag are shown)
  tags [clear]                  list tags or clear the tag selection
  search [text...]              search title, url and description
  view grid|table               switch the layout
  refresh                       re-fetch bookmarks
  ls                            show bookmarks again
  state                         show the current selection
  help                          this text
  quit                          leave
`

// Execute runs one session command.
func (s *Session) Execute(args []string) error {
	if len(args) == 0 {
		return nil
	}
	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "user":
		return s.selectUser(rest)
	case "collection":
		return s.selectCollection(rest)
	case "tag":
		return s.toggleTag(rest)
	case "tags":
		return s.listTags(rest)
	case "search":
		s.search.Push(strings.Join(rest, " "))
		return nil
	case "view":
		if len(rest) != 1 {
			return fmt.Errorf("usage: view grid|table")
		}
		m, ok := store.ParseViewMode(strings.ToLower(rest[0]))
		if !ok {
			return fmt.Errorf("unknown view %q: want grid or table", rest[0])
		}
		s.store.SetViewMode(m)
		return nil
	case "refresh":
		s.store.TriggerRefresh()
		return nil
	case "ls":
		s.render(s.bookmarks.State())
		return nil
	case "state":
		s.printState()
		return nil
	case "help":
		s.printf("%s", helpText)
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command: %s (try help)", args[0])
	}
}

func (s *Session) selectUser(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: user <id|username|all>")
	}
	if strings.EqualFold(args[0], "all") {
		s.store.SetSelectedUser(nil)
		return nil
	}

	var (
		u  model.User
		ok bool
	)
	if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
		u, ok = s.users.Find(id)
	} else {
		u, ok = s.users.FindByUsername(args[0])
	}
	if !ok {
		return fmt.Errorf("no user %q", args[0])
	}

	// коллекция другого пользователя дала бы пустой список
	if ref := s.store.SelectedCollection(); ref != nil {
		if id, concrete := ref.ID(); concrete {
			if c, found := s.cols.Find(id); !found || c.UserID != u.ID {
				s.store.SetSelectedCollection(nil)
			}
		}
	}
	s.store.SetSelectedUser(&u)
	return nil
}

func (s *Session) selectCollection(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: collection <id|none|all>")
	}
	if strings.EqualFold(args[0], "all") {
		s.store.SetSelectedCollection(nil)
		return nil
	}
	ref, err := model.ParseCollectionRef(args[0])
	if err != nil {
		return err
	}
	if id, concrete := ref.ID(); concrete {
		if _, found := s.cols.Find(id); !found {
			return fmt.Errorf("no collection %d", id)
		}
	}
	s.store.SetSelectedCollection(&ref)
	return nil
}

func (s *Session) toggleTag(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tag <name>")
	}
	name := strings.Join(args, " ")
	t, ok := s.tags.FindByName(name)
	if !ok {
		return fmt.Errorf("no tag %q", name)
	}
	s.store.ToggleTag(t)
	return nil
}

func (s *Session) listTags(args []string) error {
	if len(args) == 1 && strings.EqualFold(args[0], "clear") {
		s.store.SetSelectedTags(nil)
		return nil
	}
	if len(args) != 0 {
		return fmt.Errorf("usage: tags [clear]")
	}
	selected := make(map[int64]bool)
	for _, t := range s.store.SelectedTags() {
		selected[t.ID] = true
	}
	items := s.tags.State().Items
	if len(items) == 0 {
		s.notify(notify.Notification{Kind: notify.Info, Title: "no tags"})
		return nil
	}
	for _, t := range items {
		mark := " "
		if selected[t.ID] {
			mark = "*"
		}
		s.printf("%s %s\n", mark, t.Name)
	}
	return nil
}

func (s *Session) printState() {
	snap := s.store.Snapshot()
	user := "all"
	if snap.User != nil {
		user = snap.User.Username
		if user == "" {
			user = "#" + strconv.FormatInt(snap.User.ID, 10)
		}
	}
	collection := "all"
	if snap.Collection != nil {
		collection = snap.Collection.String()
		if id, ok := snap.Collection.ID(); ok {
			if c, found := s.cols.Find(id); found {
				collection = c.Name
			}
		}
	}
	names := make([]string, 0, len(snap.Tags))
	for _, t := range snap.Tags {
		names = append(names, t.Name)
	}
	tags := "-"
	if len(names) > 0 {
		tags = strings.Join(names, " | ")
	}
	search := snap.Search
	if search == "" {
		search = "-"
	}
	s.printf("user: %s\ncollection: %s\ntags: %s\nsearch: %s\nview: %s\nrefresh: %d\n",
		user, collection, tags, search, snap.View, snap.Refresh)
}
