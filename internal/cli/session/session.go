// Package session implements the interactive browse mode: one selection store
// bound to the bookmarks list, driven from a readline prompt.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/debounce"
	"Linkshelf/internal/cli/filter"
	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/notify"
	"Linkshelf/internal/cli/service"
	"Linkshelf/internal/cli/store"
	"Linkshelf/internal/cli/view"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

// LineReader is the part of *readline.Instance the loop needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

type Session struct {
	ctx    context.Context
	store  *store.Store
	logger *zap.SugaredLogger

	users     *service.Users
	tags      *service.Tags
	cols      *service.Collections
	bookmarks *service.Bookmarks
	search    *debounce.Debouncer[string]
	deriver   filter.Deriver

	outMu sync.Mutex
	out   io.Writer

	selMu   sync.Mutex // Derive + выдача запроса
	mu      sync.Mutex
	current *filter.Derived
	unbind  []func()
}

// New builds a session around the store carried by ctx (see store.WithStore).
func New(ctx context.Context, c *api.Client, opts service.Options, debounceDelay time.Duration, out io.Writer) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	s := &Session{
		ctx:       ctx,
		store:     store.FromContext(ctx),
		logger:    opts.Logger,
		users:     service.NewUsers(c, opts),
		tags:      service.NewTags(c, opts),
		cols:      service.NewCollections(c, opts),
		bookmarks: service.NewBookmarks(c, opts),
		out:       out,
	}
	s.search = debounce.New(debounceDelay, s.store.SetSearchTerm)
	return s
}

// Start loads the reference lists, binds the selection to the bookmarks list and
// issues the first fetch.
func (s *Session) Start() error {
	if err := s.users.Load(s.ctx); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if err := s.tags.Load(s.ctx); err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	if _, err := s.cols.SetFilters(s.ctx, model.CollectionFilters{}); err != nil {
		return fmt.Errorf("load collections: %w", err)
	}

	s.unbind = append(s.unbind,
		s.store.Subscribe(s.onSelection),
		s.bookmarks.OnChange(s.onBookmarks),
	)
	s.onSelection(s.store.Snapshot())
	return nil
}

// Close stops the search debouncer and unbinds listeners.
func (s *Session) Close() {
	s.search.Stop()
	s.mu.Lock()
	unbind := s.unbind
	s.unbind = nil
	s.mu.Unlock()
	for _, fn := range unbind {
		fn()
	}
}

// FlushSearch applies a pending search term without waiting for the idle window.
func (s *Session) FlushSearch() { s.search.Flush() }

// onSelection пересчитывает запрос; одинаковый ключ запрос не повторяет.
// Снимки от сеттеров на разных горутинах могут прийти не по порядку, поэтому
// переданный снимок только сигнал: запрос строится по текущему состоянию store.
func (s *Session) onSelection(store.Snapshot) {
	s.selMu.Lock()
	d := s.deriver.Derive(s.store.Snapshot())
	s.mu.Lock()
	s.current = d
	s.mu.Unlock()
	fetch := s.bookmarks.Begin(d.Query())
	s.selMu.Unlock()

	if fetch == nil {
		// изменились только метки или вид: перерисовываем то, что есть
		s.render(s.bookmarks.State())
		return
	}
	// ошибки попадают в состояние списка и выводятся в onBookmarks
	_ = fetch(s.ctx)
}

func (s *Session) onBookmarks(st service.State[model.Bookmark]) {
	if st.Loading {
		return
	}
	s.render(st)
}

func (s *Session) render(st service.State[model.Bookmark]) {
	s.mu.Lock()
	d := s.current
	s.mu.Unlock()
	if d == nil {
		return
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	if st.Error != "" {
		notify.Print(s.out, notify.Notification{Kind: notify.Failure, Title: "Bookmarks", Description: st.Error})
	}
	if err := view.For(s.store.ViewMode(), s.collectionNames()).Render(s.out, d.Apply(st.Items)); err != nil {
		s.logger.Warnw("render failed", "error", err)
	}
}

func (s *Session) collectionNames() view.Names {
	names := make(view.Names)
	for _, c := range s.cols.State().Items {
		names[c.ID] = c.Name
	}
	return names
}

func (s *Session) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) notify(n notify.Notification) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	notify.Print(s.out, n)
}

// Prompt shows the selected user, if any.
func (s *Session) Prompt() string {
	if u := s.store.SelectedUser(); u != nil {
		return fmt.Sprintf("shelf[%s]> ", u.Username)
	}
	return "shelf> "
}

// Run reads commands until quit, EOF or context cancellation.
func (s *Session) Run(rl LineReader) error {
	rl.SetPrompt(s.Prompt())
	for {
		if s.ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.printf("Use 'quit' to leave the session.\n")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		args := ParseArgs(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}
		if err := s.Execute(args); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			s.printf("× %v\n", err)
		}
		rl.SetPrompt(s.Prompt())
	}
}

// ParseArgs splits a line on spaces; double quotes group words into one argument.
func ParseArgs(input string) []string {
	var args []string
	var cur strings.Builder
	inQuotes, quoted := false, false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case (r == ' ' || r == '\t') && !inQuotes:
			if cur.Len() > 0 || quoted {
				args = append(args, cur.String())
				cur.Reset()
			}
			quoted = false
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 || quoted {
		args = append(args, cur.String())
	}
	return args
}
