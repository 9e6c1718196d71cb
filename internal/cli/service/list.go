// Package service holds the client-side state of each backend resource: the last
// fetched list, a loading flag and the last error. Mutations go to the API and are
// followed by a full re-fetch of the list.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"Linkshelf/internal/cli/api"
)

// DefaultTimeout bounds every remote call made by a list when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// ErrSuperseded is returned by a fetch whose response was dropped because a newer
// fetch had been issued in the meantime.
var ErrSuperseded = errors.New("response superseded by a newer request")

// Filter is the input of a list fetch. Equal keys mean equal filters.
type Filter interface {
	Key() string
}

// State is a read-only copy of a list's state.
type State[T any] struct {
	Items   []T
	Loading bool
	Error   string
}

type Options struct {
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	return o
}

type list[T any, F Filter] struct {
	name    string
	fetch   func(ctx context.Context, f F) ([]T, error)
	timeout time.Duration
	logger  *zap.SugaredLogger

	mu        sync.Mutex
	items     []T
	loading   bool
	err       error
	filters   F
	issued    uint64 // номер последнего выданного запроса
	lastKey   string
	fetched   bool
	listeners map[int]func(State[T])
	nextID    int
}

func newList[T any, F Filter](name string, fetch func(context.Context, F) ([]T, error), opts Options) *list[T, F] {
	opts = opts.withDefaults()
	return &list[T, F]{
		name:      name,
		fetch:     fetch,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
		listeners: make(map[int]func(State[T])),
	}
}

// State returns a copy of the current items, loading flag and error text.
func (l *list[T, F]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stateLocked()
}

// Err returns the last error as returned by the API (an *api.Error), or nil.
func (l *list[T, F]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Filters returns the filters of the latest issued fetch.
func (l *list[T, F]) Filters() F {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

// OnChange registers fn to be called after every applied state change.
func (l *list[T, F]) OnChange(fn func(State[T])) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

// SetFilters fetches the list for f unless a fetch with an equal key was already
// issued. It reports whether a request was made.
func (l *list[T, F]) SetFilters(ctx context.Context, f F) (bool, error) {
	fetch := l.Begin(f)
	if fetch == nil {
		return false, nil
	}
	return true, fetch(ctx)
}

// Begin issues a fetch for f and returns the function that performs it, or nil
// when a fetch with an equal key was already issued. The sequence number is
// taken here, so the order of Begin calls decides which response is applied.
func (l *list[T, F]) Begin(f F) func(ctx context.Context) error {
	key := f.Key()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fetched && key == l.lastKey {
		return nil
	}
	l.filters = f
	seq := l.beginLocked(key)
	return func(ctx context.Context) error { return l.run(ctx, seq, f) }
}

// Refetch re-issues the list request with the current filters. On failure the
// previous items are kept and the error is recorded.
func (l *list[T, F]) Refetch(ctx context.Context) error {
	l.mu.Lock()
	f := l.filters
	seq := l.beginLocked(f.Key())
	l.mu.Unlock()

	return l.run(ctx, seq, f)
}

func (l *list[T, F]) beginLocked(key string) uint64 {
	l.issued++
	l.lastKey = key
	l.fetched = true
	l.loading = true
	return l.issued
}

func (l *list[T, F]) run(ctx context.Context, seq uint64, f F) error {
	l.notify()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	items, err := l.fetch(ctx, f)

	l.mu.Lock()
	if seq != l.issued {
		latest := l.issued
		l.mu.Unlock()
		// ответ на устаревший запрос: более новый уже выдан
		l.logger.Debugw("discarding stale response", "resource", l.name, "seq", seq, "latest", latest)
		return ErrSuperseded
	}
	l.loading = false
	if err != nil {
		l.err = err
	} else {
		l.items = items
		l.err = nil
	}
	l.mu.Unlock()
	l.notify()

	if err != nil {
		l.logger.Warnw("fetch failed", "resource", l.name, "error", err)
	}
	return err
}

// mutate runs one remote call. On success the list is re-fetched and true is
// returned; on failure the error is recorded and items are left untouched.
func (l *list[T, F]) mutate(ctx context.Context, op string, call func(ctx context.Context) error) bool {
	l.setErr(nil)

	callCtx, cancel := context.WithTimeout(ctx, l.timeout)
	err := call(callCtx)
	cancel()
	if err != nil {
		l.logger.Warnw("mutation failed", "resource", l.name, "op", op, "error", err)
		l.setErr(err)
		return false
	}

	_ = l.Refetch(ctx)
	return true
}

// remove runs a delete through mutate. When the backend reports the item as
// already gone the list is re-fetched so the stale entry disappears, and the
// not-found error stays recorded.
func (l *list[T, F]) remove(ctx context.Context, call func(ctx context.Context) error) bool {
	if l.mutate(ctx, "delete", call) {
		return true
	}
	if err := l.Err(); api.KindOf(err) == api.KindNotFound {
		_ = l.Refetch(ctx)
		l.setErr(err)
	}
	return false
}

// call runs fn under the list timeout and records a failure without touching items.
func (l *list[T, F]) call(ctx context.Context, fn func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if err := fn(callCtx); err != nil {
		l.setErr(err)
		return err
	}
	return nil
}

func (l *list[T, F]) setErr(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
	l.notify()
}

func (l *list[T, F]) stateLocked() State[T] {
	return State[T]{
		Items:   append([]T(nil), l.items...),
		Loading: l.loading,
		Error:   api.Message(l.err),
	}
}

func (l *list[T, F]) notify() {
	l.mu.Lock()
	st := l.stateLocked()
	fns := make([]func(State[T]), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}
