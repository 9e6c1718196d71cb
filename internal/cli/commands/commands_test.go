package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Linkshelf/internal/config"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// backend: фейковый API: маршруты "METHOD /path" → (статус, тело).
type backend struct {
	mu       sync.Mutex
	routes   map[string]func(r *http.Request) (int, string)
	requests []recorded
}

func newBackend(t *testing.T) (*backend, *config.Config) {
	t.Helper()
	b := &backend{routes: map[string]func(r *http.Request) (int, string){}}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		b.mu.Lock()
		b.requests = append(b.requests, rec)
		h, ok := b.routes[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
			return
		}
		status, body := h(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return b, &config.Config{ServerURL: ts.URL, RequestTimeout: 5 * time.Second}
}

func (b *backend) on(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = func(*http.Request) (int, string) { return status, body }
}

func (b *backend) calls(method, path string) []recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recorded
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), cfg, args) })
	return code, out
}

func TestTagAdd_InvalidColorNeverReachesNetwork(t *testing.T) {
	b, cfg := newBackend(t)
	code, out := run(t, cfg, "tag-add", "go", "blue")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "× Invalid input: color must be a hex color")
	assert.Empty(t, b.calls(http.MethodPost, "/api/tags/"))
}

func TestTagAdd_DefaultColor(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("POST /api/tags/", http.StatusCreated, `{"id":1,"name":"go","color":"#3B82F6"}`)
	b.on("GET /api/tags/", http.StatusOK, `[{"id":1,"name":"go","color":"#3B82F6"}]`)

	code, out := run(t, cfg, "tag-add", "go")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, `✓ Tag "go" created`)
	posts := b.calls(http.MethodPost, "/api/tags/")
	require.Len(t, posts, 1)
	assert.Equal(t, "#3B82F6", posts[0].Body["color"])
}

func TestTagAdd_RefusedWhileSubmissionInFlight(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("POST /api/tags/", http.StatusCreated, `{"id":1,"name":"go","color":"#3B82F6"}`)

	started := make(chan struct{})
	release := make(chan struct{})
	held := make(chan error, 1)
	go func() {
		held <- submissions.Do(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	code, out := run(t, cfg, "tag-add", "go")
	close(release)
	require.NoError(t, <-held)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Cannot create tag")
	assert.Contains(t, out, "a submission is already in progress")
	assert.Empty(t, b.calls(http.MethodPost, "/api/tags/"))
	assert.False(t, submissions.Busy())
}

func TestTagDelete_InUseNamesTag(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("GET /api/tags/", http.StatusOK, `[{"id":5,"name":"golang","color":"#00ADD8"}]`)
	b.on("DELETE /api/tags/5", http.StatusConflict, `{"detail":"Tag 'golang' is used by 3 bookmark(s)"}`)

	code, out := run(t, cfg, "tag-delete", "5")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `Cannot delete tag "golang"`)
	assert.Contains(t, out, "used by 3 bookmark(s)")
}

func TestUserDelete_RequiresMatchingUsername(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("GET /api/users/", http.StatusOK, `[{"id":2,"username":"bob","email":"bob@example.com"}]`)
	b.on("DELETE /api/users/2", http.StatusNoContent, ``)

	code, out := run(t, cfg, "user-delete", "2", "Bob")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Deletion not confirmed")
	assert.Empty(t, b.calls(http.MethodDelete, "/api/users/2"))

	code, out = run(t, cfg, "user-delete", "2", "bob")
	assert.Equal(t, 0, code, out)
	assert.Len(t, b.calls(http.MethodDelete, "/api/users/2"), 1)
}

func TestUserAdd_Validation(t *testing.T) {
	b, cfg := newBackend(t)
	code, out := run(t, cfg, "user-add", "al", "not-an-email")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "username must be at least 3 characters")
	assert.Contains(t, out, "email must be a valid email address")
	assert.Empty(t, b.calls(http.MethodPost, "/api/users/"))

	code, _ = run(t, cfg, "user-add", "only-one")
	assert.Equal(t, 2, code)
}

func TestUserAdd_DuplicateShowsBackendDetail(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("POST /api/users/", http.StatusConflict, `{"detail":"Username already registered"}`)

	code, out := run(t, cfg, "user-add", "alice", "alice@example.com")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "× Cannot create user: Username already registered")
}

func TestBookmarkAdd_CreatesMissingTagsAndSendsNullCollection(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("GET /api/tags/", http.StatusOK, `[{"id":1,"name":"Go","color":"#00ADD8"}]`)
	b.on("POST /api/tags/", http.StatusCreated, `{"id":7,"name":"web","color":"#3B82F6"}`)
	b.on("POST /api/bookmarks/", http.StatusCreated, `{"id":30,"url":"https://go.dev","title":"Go","user_id":1}`)
	b.on("GET /api/bookmarks/", http.StatusOK, `[]`)

	code, out := run(t, cfg, "bookmark-add", "1", "https://go.dev", "--title", "Go", "--tag", "go", "--tag", "web", "--collection", "none")
	require.Equal(t, 0, code, out)

	tagPosts := b.calls(http.MethodPost, "/api/tags/")
	require.Len(t, tagPosts, 1)
	assert.Equal(t, "web", tagPosts[0].Body["name"])

	posts := b.calls(http.MethodPost, "/api/bookmarks/")
	require.Len(t, posts, 1)
	body := posts[0].Body
	v, present := body["collection_id"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.Equal(t, []any{float64(1), float64(7)}, body["tag_ids"])
}

func TestBookmarkAdd_AnalyzeFillsTitle(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("POST /api/bookmarks/analyze-url", http.StatusOK, `{"url":"https://go.dev","title":"The Go Programming Language","description":"Build simple software","content_length":1234}`)
	b.on("POST /api/bookmarks/", http.StatusCreated, `{"id":31,"url":"https://go.dev","title":"The Go Programming Language","user_id":1}`)
	b.on("GET /api/bookmarks/", http.StatusOK, `[]`)

	code, out := run(t, cfg, "bookmark-add", "--analyze", "1", "https://go.dev")
	require.Equal(t, 0, code, out)
	posts := b.calls(http.MethodPost, "/api/bookmarks/")
	require.Len(t, posts, 1)
	assert.Equal(t, "The Go Programming Language", posts[0].Body["title"])
	assert.Equal(t, "Build simple software", posts[0].Body["description"])
	analyze := b.calls(http.MethodPost, "/api/bookmarks/analyze-url")
	require.Len(t, analyze, 1)
	assert.Contains(t, analyze[0].Query, "use_ml=true")
}

func TestBookmarks_NoCollectionAndTagFilter(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("GET /api/tags/", http.StatusOK, `[{"id":1,"name":"go","color":"#00ADD8"},{"id":2,"name":"db","color":"#FF0000"}]`)
	b.on("GET /api/collections/", http.StatusOK, `[]`)
	b.on("GET /api/bookmarks/", http.StatusOK, `[
		{"id":1,"url":"https://a.example","title":"only-go","user_id":1,"collection_id":null,"tags":[{"id":1,"name":"go","color":"#00ADD8"}]},
		{"id":2,"url":"https://b.example","title":"untagged","user_id":1,"collection_id":null,"tags":[]}
	]`)

	code, out := run(t, cfg, "bookmarks", "--collection", "none", "--tag", "go", "--tag", "db", "--view", "table")
	require.Equal(t, 0, code, out)

	lists := b.calls(http.MethodGet, "/api/bookmarks/")
	require.Len(t, lists, 1)
	assert.Equal(t, "collection_id=null", lists[0].Query)
	assert.NotContains(t, lists[0].Query, "-1")
	assert.Contains(t, out, "only-go")
	assert.NotContains(t, out, "untagged")
}

func TestBookmarks_UnknownTag(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("GET /api/tags/", http.StatusOK, `[]`)
	code, out := run(t, cfg, "bookmarks", "--tag", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `Unknown tag "nope"`)
	assert.Empty(t, b.calls(http.MethodGet, "/api/bookmarks/"))
}

func TestBookmarkDelete_AlreadyGone(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("DELETE /api/bookmarks/9", http.StatusNotFound, `{"detail":"Bookmark not found"}`)
	b.on("GET /api/bookmarks/", http.StatusOK, `[]`)

	code, out := run(t, cfg, "bookmark-delete", "9")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "may already be gone")
	assert.Len(t, b.calls(http.MethodGet, "/api/bookmarks/"), 1)
}

func TestBookmarkEdit_OnlySetFieldsAreSent(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("PUT /api/bookmarks/4", http.StatusOK, `{"id":4,"url":"https://x.example","title":"New","user_id":1}`)
	b.on("GET /api/bookmarks/", http.StatusOK, `[]`)

	code, out := run(t, cfg, "bookmark-edit", "4", "--title", "New", "--collection", "5")
	require.Equal(t, 0, code, out)
	puts := b.calls(http.MethodPut, "/api/bookmarks/4")
	require.Len(t, puts, 1)
	assert.Equal(t, map[string]any{"title": "New", "collection_id": float64(5)}, puts[0].Body)

	code, _ = run(t, cfg, "bookmark-edit", "4")
	assert.Equal(t, 2, code)
}

func TestSuggestTags(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("GET /api/tags/", http.StatusOK, `[{"id":1,"name":"golang","color":"#00ADD8"}]`)
	b.on("POST /api/bookmarks/suggest-tags", http.StatusOK, `{"suggestions":["golang","tutorial"]}`)

	code, out := run(t, cfg, "suggest-tags", "https://go.dev/doc/tutorial", "--title", "Go tutorial")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "• golang, tutorial")
	posts := b.calls(http.MethodPost, "/api/bookmarks/suggest-tags")
	require.Len(t, posts, 1)
	assert.Equal(t, []any{"golang"}, posts[0].Body["existing_tags"])
}

func TestUsers_SearchFilter(t *testing.T) {
	b, cfg := newBackend(t)
	b.on("GET /api/users/", http.StatusOK, `[{"id":1,"username":"alice","email":"a@example.com"},{"id":2,"username":"bob","email":"bob@corp.io"}]`)

	code, out := run(t, cfg, "users", "--search", "CORP")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "bob")
	assert.NotContains(t, out, "alice")
}

func TestParseInterleaved(t *testing.T) {
	fs := newFlagSet("t")
	title := fs.String("title", "", "")
	var tags stringList
	fs.Var(&tags, "tag", "")
	pos, err := parseInterleaved(fs, []string{"1", "--title", "x y", "https://a.example", "--tag", "a,b", "--tag", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "https://a.example"}, pos)
	assert.Equal(t, "x y", *title)
	assert.Equal(t, []string{"a", "b", "c"}, strings.Split(tags.String(), ","))

	_, err = parseInterleaved(newFlagSet("t"), []string{"--nope"})
	assert.ErrorIs(t, err, ErrUsage)
}
