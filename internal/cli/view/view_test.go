package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/store"
)

func sample() []model.Bookmark {
	five := int64(5)
	desc := "The Go programming language"
	return []model.Bookmark{
		{ID: 1, URL: "https://go.dev", Title: "Go", Description: &desc, UserID: 1,
			Tags: []model.Tag{{ID: 1, Name: "go", Color: "#00ADD8"}, {ID: 2, Name: "lang"}}},
		{ID: 2, URL: "https://example.com/rust", Title: "Rust", UserID: 1, CollectionID: &five},
	}
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table{Names: Names{5: "reading"}}.Render(&buf, sample()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "go, lang")
	assert.Contains(t, lines[1], " - ")
	assert.Contains(t, lines[2], "reading")
}

func TestGrid_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Grid{Columns: 2}.Render(&buf, sample()))
	out := buf.String()
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "https://go.dev")
	assert.Contains(t, out, "#go")
	assert.Contains(t, out, "#5")
	assert.Contains(t, out, "╭")
}

func TestRender_Empty(t *testing.T) {
	for _, mode := range []store.ViewMode{store.ViewGrid, store.ViewTable} {
		var buf bytes.Buffer
		require.NoError(t, For(mode, nil).Render(&buf, nil))
		assert.Equal(t, "• no bookmarks\n", buf.String())
	}
}

func TestFor(t *testing.T) {
	assert.IsType(t, Table{}, For(store.ViewTable, nil))
	assert.IsType(t, Grid{}, For(store.ViewGrid, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a b", truncate(" a \n b ", 10))
}
