package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/prefs"
	"Linkshelf/internal/cli/service"
	"Linkshelf/internal/cli/store"
)

type fakeBackend struct {
	mu      sync.Mutex
	queries []string // raw query strings of GET /bookmarks/
}

func (f *fakeBackend) bookmarkQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	five := int64(5)
	goTag := model.Tag{ID: 1, Name: "go", Color: "#00ADD8"}
	rustTag := model.Tag{ID: 2, Name: "rust", Color: "#DEA584"}
	bookmarks := []model.Bookmark{
		{ID: 10, URL: "https://go.dev", Title: "Go home", UserID: 1, Tags: []model.Tag{goTag}},
		{ID: 11, URL: "https://rust-lang.org", Title: "Rust home", UserID: 1, Tags: []model.Tag{rustTag}},
		{ID: 12, URL: "https://example.com/misc", Title: "Misc", UserID: 1, CollectionID: &five},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body any
		switch r.URL.Path {
		case "/api/users/":
			body = []model.User{{ID: 1, Username: "alice", Email: "alice@example.com"}}
		case "/api/tags/":
			body = []model.Tag{goTag, rustTag}
		case "/api/collections/":
			body = []model.Collection{{ID: 5, Name: "reading", UserID: 1}}
		case "/api/bookmarks/":
			f.mu.Lock()
			f.queries = append(f.queries, r.URL.RawQuery)
			f.mu.Unlock()
			out := []model.Bookmark{}
			col := r.URL.Query().Get("collection_id")
			for _, b := range bookmarks {
				if col == "null" && b.CollectionID != nil {
					continue
				}
				out = append(out, b)
			}
			body = out
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}
}

func newSession(t *testing.T) (*Session, *fakeBackend, *bytes.Buffer) {
	t.Helper()
	fb := &fakeBackend{}
	ts := httptest.NewServer(fb.handler(t))
	t.Cleanup(ts.Close)

	var out bytes.Buffer
	ctx := store.WithStore(context.Background(), store.New())
	s := New(ctx, api.New(ts.URL), service.Options{Timeout: 5 * time.Second}, time.Hour, &out)
	require.NoError(t, s.Start())
	t.Cleanup(s.Close)
	return s, fb, &out
}

func TestSession_StartRendersAll(t *testing.T) {
	_, fb, out := newSession(t)
	assert.Equal(t, []string{""}, fb.bookmarkQueries())
	assert.Contains(t, out.String(), "Go home")
	assert.Contains(t, out.String(), "Misc")
}

func TestSession_NoCollectionQueriesNull(t *testing.T) {
	s, fb, out := newSession(t)
	require.NoError(t, s.Execute([]string{"view", "table"}))
	out.Reset()

	require.NoError(t, s.Execute([]string{"collection", "none"}))
	qs := fb.bookmarkQueries()
	assert.Equal(t, "collection_id=null", qs[len(qs)-1])
	assert.NotContains(t, out.String(), "Misc")
	assert.Contains(t, out.String(), "Go home")
}

func TestSession_TagToggleFiltersLocally(t *testing.T) {
	s, fb, out := newSession(t)
	require.NoError(t, s.Execute([]string{"view", "table"}))
	before := len(fb.bookmarkQueries())
	out.Reset()

	require.NoError(t, s.Execute([]string{"tag", "GO"}))
	assert.Len(t, fb.bookmarkQueries(), before, "tag selection must not hit the server")
	assert.Contains(t, out.String(), "Go home")
	assert.NotContains(t, out.String(), "Rust home")
	assert.NotContains(t, out.String(), "Misc")

	out.Reset()
	require.NoError(t, s.Execute([]string{"tag", "rust"}))
	assert.Contains(t, out.String(), "Go home")
	assert.Contains(t, out.String(), "Rust home")

	out.Reset()
	require.NoError(t, s.Execute([]string{"tags", "clear"}))
	assert.Contains(t, out.String(), "Misc")
}

func TestSession_SearchIsDebounced(t *testing.T) {
	s, fb, _ := newSession(t)
	before := len(fb.bookmarkQueries())

	for _, term := range []string{"g", "go", "go lang"} {
		require.NoError(t, s.Execute(append([]string{"search"}, strings.Fields(term)...)))
	}
	assert.Len(t, fb.bookmarkQueries(), before)

	s.FlushSearch()
	qs := fb.bookmarkQueries()
	require.Len(t, qs, before+1)
	assert.Equal(t, "search=go+lang", qs[len(qs)-1])
}

func TestSession_RefreshRefetches(t *testing.T) {
	s, fb, _ := newSession(t)
	before := len(fb.bookmarkQueries())
	require.NoError(t, s.Execute([]string{"refresh"}))
	require.NoError(t, s.Execute([]string{"refresh"}))
	assert.Len(t, fb.bookmarkQueries(), before+2)
}

func TestSession_UserSelection(t *testing.T) {
	s, fb, out := newSession(t)
	require.NoError(t, s.Execute([]string{"user", "Alice"}))
	qs := fb.bookmarkQueries()
	assert.Equal(t, "user_id=1", qs[len(qs)-1])
	assert.Equal(t, "shelf[alice]> ", s.Prompt())

	assert.Error(t, s.Execute([]string{"user", "bob"}))
	assert.Error(t, s.Execute([]string{"collection", "99"}))

	out.Reset()
	require.NoError(t, s.Execute([]string{"state"}))
	assert.Contains(t, out.String(), "user: alice")
}

type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	l := r.lines[0]
	r.lines = r.lines[1:]
	return l, nil
}
func (r *scriptReader) SetPrompt(p string) { r.prompts = append(r.prompts, p) }
func (r *scriptReader) Close() error       { return nil }

func TestSession_RunLoop(t *testing.T) {
	s, _, out := newSession(t)
	rl := &scriptReader{lines: []string{"", "bogus", `user "alice"`, "quit", "help"}}
	require.NoError(t, s.Run(rl))
	assert.Contains(t, out.String(), "unknown command: bogus")
	assert.NotContains(t, out.String(), "Commands:", "lines after quit are not read")
	assert.Equal(t, "shelf[alice]> ", rl.prompts[len(rl.prompts)-1])
}

func TestParseArgs(t *testing.T) {
	assert.Equal(t, []string{"search", "go lang", "x"}, ParseArgs(`search "go lang" x`))
	assert.Equal(t, []string{"tag", ""}, ParseArgs(`tag ""`))
	assert.Nil(t, ParseArgs("   "))
}

func TestNew_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() {
		New(context.Background(), api.New("http://example.invalid"), service.Options{}, time.Millisecond, io.Discard)
	})
}

func TestSession_RestoreAndPrefs(t *testing.T) {
	s, _, out := newSession(t)

	s.Restore(prefs.Prefs{LastUser: "alice", View: "table"})
	assert.Equal(t, "shelf[alice]> ", s.Prompt())
	assert.Equal(t, prefs.Prefs{LastUser: "alice", View: "table"}, s.Prefs())

	s.Restore(prefs.Prefs{LastUser: "ghost", View: "bogus"})
	assert.Contains(t, out.String(), `remembered user "ghost" is gone`)
	assert.Equal(t, prefs.Prefs{LastUser: "alice", View: "table"}, s.Prefs(), "unknown values leave the selection alone")
}

func TestSession_LateSnapshotIsIgnored(t *testing.T) {
	s, fb, _ := newSession(t)

	s.store.SetSearchTerm("new")
	before := fb.bookmarkQueries()
	require.Equal(t, "search=new", before[len(before)-1])

	// снимок, доставленный после более нового изменения
	stale := s.store.Snapshot()
	stale.Search = "old"
	s.onSelection(stale)

	assert.Equal(t, before, fb.bookmarkQueries(), "a late snapshot must not issue a request")
	assert.Equal(t, "new", s.bookmarks.Filters().Filters.Search)
}

func TestSession_OutOfOrderDeliveryFollowsStore(t *testing.T) {
	s, fb, _ := newSession(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	unsub := s.store.Subscribe(func(snap store.Snapshot) {
		if snap.Search == "old" {
			once.Do(func() {
				close(entered)
				<-release
			})
		}
	})
	defer unsub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.store.SetSearchTerm("old")
	}()
	<-entered
	s.store.SetSearchTerm("new")
	close(release)
	<-done

	assert.Equal(t, "new", s.store.SearchTerm())
	assert.Equal(t, "new", s.bookmarks.Filters().Filters.Search, "the list follows the current selection")
	qs := fb.bookmarkQueries()
	assert.Equal(t, "search=new", qs[len(qs)-1])
}
