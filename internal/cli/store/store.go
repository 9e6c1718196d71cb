// Package store holds the selection state shared by everything rendered in one
// client session: selected user, collection and tags, search term, view mode and
// the manual refresh counter.
package store

import (
	"context"
	"sync"

	"Linkshelf/internal/cli/model"
)

// ViewMode: режим отображения списка закладок.
type ViewMode string

const (
	ViewGrid  ViewMode = "grid"
	ViewTable ViewMode = "table"
)

// ParseViewMode returns the mode for "grid"/"table" and false for anything else.
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewGrid, ViewTable:
		return ViewMode(s), true
	}
	return "", false
}

// Snapshot is a copy of the selection at one moment.
type Snapshot struct {
	User       *model.User
	Collection *model.CollectionRef // nil: все коллекции
	Tags       []model.Tag          // порядок выбора, без повторов id
	Search     string
	View       ViewMode
	Refresh    uint64
}

// Store: потокобезопасное хранилище выбора. Сеттеры ничего не валидируют:
// вызывающий код сам передаёт существующие сущности.
type Store struct {
	mu     sync.RWMutex
	state  Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

func New() *Store {
	return &Store{
		state: Snapshot{View: ViewGrid},
		subs:  make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a deep copy of the current selection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) SelectedUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Store) SelectedCollection() *model.CollectionRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Collection == nil {
		return nil
	}
	c := *s.state.Collection
	return &c
}

func (s *Store) SelectedTags() []model.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Tag(nil), s.state.Tags...)
}

func (s *Store) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Search
}

func (s *Store) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.View
}

func (s *Store) RefreshCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Refresh
}

func (s *Store) SetSelectedUser(u *model.User) {
	s.update(func(st *Snapshot) {
		if u == nil {
			st.User = nil
			return
		}
		cp := *u
		st.User = &cp
	})
}

func (s *Store) SetSelectedCollection(c *model.CollectionRef) {
	s.update(func(st *Snapshot) {
		if c == nil {
			st.Collection = nil
			return
		}
		cp := *c
		st.Collection = &cp
	})
}

// SetSelectedTags replaces the tag selection; repeated ids keep their first position.
func (s *Store) SetSelectedTags(tags []model.Tag) {
	s.update(func(st *Snapshot) { st.Tags = uniqueTags(tags) })
}

// ToggleTag adds the tag to the end of the selection or removes it if already selected.
func (s *Store) ToggleTag(tag model.Tag) {
	s.update(func(st *Snapshot) {
		for i, t := range st.Tags {
			if t.ID == tag.ID {
				st.Tags = append(append([]model.Tag(nil), st.Tags[:i]...), st.Tags[i+1:]...)
				return
			}
		}
		st.Tags = append(append([]model.Tag(nil), st.Tags...), tag)
	})
}

func (s *Store) SetSearchTerm(term string) {
	s.update(func(st *Snapshot) { st.Search = term })
}

func (s *Store) SetViewMode(m ViewMode) {
	s.update(func(st *Snapshot) { st.View = m })
}

// TriggerRefresh increments the refresh counter and returns the new value.
func (s *Store) TriggerRefresh() uint64 {
	var n uint64
	s.update(func(st *Snapshot) {
		st.Refresh++
		n = st.Refresh
	})
	return n
}

// Subscribe registers fn to be called with a snapshot after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	// подписчики вызываются вне блокировки: они могут читать store
	for _, f := range subs {
		f(snap)
	}
}

func (st Snapshot) clone() Snapshot {
	cp := st
	if st.User != nil {
		u := *st.User
		cp.User = &u
	}
	if st.Collection != nil {
		c := *st.Collection
		cp.Collection = &c
	}
	cp.Tags = append([]model.Tag(nil), st.Tags...)
	return cp
}

func uniqueTags(tags []model.Tag) []model.Tag {
	out := make([]model.Tag, 0, len(tags))
	seen := make(map[int64]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

type ctxKey struct{}

// WithStore returns a context carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store carried by ctx. It panics when there is none:
// reading the selection outside a session is a wiring mistake.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		panic("store.FromContext: context carries no selection store (missing store.WithStore)")
	}
	return s
}
