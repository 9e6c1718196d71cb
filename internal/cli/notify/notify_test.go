package notify

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"Linkshelf/internal/cli/api"
)

func TestTagDeleteFailed_Conflict(t *testing.T) {
	err := &api.Error{Op: "DELETE /tags/5", Status: 409, Detail: "Tag 'go' is used by 2 bookmark(s)"}
	n := TagDeleteFailed("go", err)
	assert.Equal(t, Failure, n.Kind)
	assert.Contains(t, n.String(), `"go"`)
	assert.Contains(t, n.String(), "used by 2 bookmark(s)")
}

func TestDeleteFailed_NotFound(t *testing.T) {
	err := &api.Error{Op: "DELETE /bookmarks/3", Status: 404, Detail: "Bookmark not found"}
	n := DeleteFailed("bookmark 3", err)
	assert.Equal(t, "× Cannot delete bookmark 3: it may already be gone", n.String())
}

func TestFailed_Transport(t *testing.T) {
	n := Failed("Load users", &api.Error{Op: "GET /users/", Detail: "network error: refused", Err: errors.New("refused")})
	assert.Equal(t, "× Load users: network error: refused", n.String())
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Done("Tag created"))
	Print(&buf, Notification{Kind: Info, Title: "3 bookmarks"})
	assert.Equal(t, "✓ Tag created\n• 3 bookmarks\n", buf.String())
}
