// Package filter turns the shared selection into a bookmarks query plus a local
// tag post-filter.
package filter

import (
	"slices"
	"strings"
	"sync"

	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/store"
)

// Derived is the result of combining a selection snapshot. Values returned by a
// Deriver must be treated as read-only.
type Derived struct {
	query  model.BookmarkQuery
	tagIDs []int64
	tagSet map[int64]struct{}
}

// Query is the input for the bookmarks list state (server-side part).
func (d *Derived) Query() model.BookmarkQuery { return d.query }

// Key is the serialized query, refresh counter included.
func (d *Derived) Key() string { return d.query.Key() }

// TagIDs returns the selected tag ids used by the post-filter.
func (d *Derived) TagIDs() []int64 { return append([]int64(nil), d.tagIDs...) }

// Apply keeps bookmarks carrying any of the selected tags (OR). With no tags
// selected the list is returned as is.
func (d *Derived) Apply(bookmarks []model.Bookmark) []model.Bookmark {
	if len(d.tagSet) == 0 {
		return bookmarks
	}
	out := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.HasAnyTag(d.tagSet) {
			out = append(out, b)
		}
	}
	return out
}

// Derive computes the query for a snapshot without memoization.
func Derive(s store.Snapshot) *Derived {
	var f model.BookmarkFilters
	if s.User != nil {
		id := s.User.ID
		f.UserID = &id
	}
	if s.Collection != nil {
		c := *s.Collection
		f.Collection = &c
	}
	f.Search = strings.TrimSpace(s.Search)

	d := &Derived{
		query:  model.BookmarkQuery{Filters: f, Refresh: s.Refresh},
		tagIDs: model.TagIDs(s.Tags),
	}
	if len(d.tagIDs) > 0 {
		d.tagSet = make(map[int64]struct{}, len(d.tagIDs))
		for _, id := range d.tagIDs {
			d.tagSet[id] = struct{}{}
		}
	}
	return d
}

// Deriver memoizes Derive: while the inputs (user, collection, tags, search,
// refresh) stay the same it returns the very same *Derived.
type Deriver struct {
	mu      sync.Mutex
	last    *Derived
	lastKey string
	lastTag []int64
}

func (dr *Deriver) Derive(s store.Snapshot) *Derived {
	next := Derive(s)
	key := next.Key()

	dr.mu.Lock()
	defer dr.mu.Unlock()
	if dr.last != nil && dr.lastKey == key && slices.Equal(dr.lastTag, next.tagIDs) {
		return dr.last
	}
	dr.last, dr.lastKey, dr.lastTag = next, key, next.tagIDs
	return next
}

// Users filters users by case-insensitive substring of username or email.
func Users(users []model.User, term string) []model.User {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users
	}
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), term) || strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out
}
