// Package view renders bookmarks and the other resources for the terminal.
package view

import (
	"io"
	"strings"
	"unicode/utf8"

	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/store"
)

// Renderer prints a list of bookmarks.
type Renderer interface {
	Render(w io.Writer, bookmarks []model.Bookmark) error
}

// Names resolves collection ids to names for display. A nil map shows ids.
type Names map[int64]string

func (n Names) collection(b model.Bookmark) string {
	id, ok := b.Collection().ID()
	if !ok {
		return "-"
	}
	if name, found := n[id]; found {
		return name
	}
	return "#" + itoa(id)
}

// For returns the renderer of mode.
func For(mode store.ViewMode, names Names) Renderer {
	if mode == store.ViewTable {
		return Table{Names: names}
	}
	return Grid{Names: names}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func tagNames(tags []model.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
