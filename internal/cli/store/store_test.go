package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"Linkshelf/internal/cli/model"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Collection)
	assert.Empty(t, snap.Tags)
	assert.Equal(t, "", snap.Search)
	assert.Equal(t, ViewGrid, snap.View)
	assert.Zero(t, snap.Refresh)
}

func TestTriggerRefresh_Monotonic(t *testing.T) {
	s := New()
	assert.Equal(t, uint64(1), s.TriggerRefresh())
	assert.Equal(t, uint64(2), s.TriggerRefresh())
	assert.Equal(t, uint64(2), s.RefreshCount())
}

func TestTags_OrderPreservedAndDeduplicated(t *testing.T) {
	s := New()
	a, b, c := model.Tag{ID: 1, Name: "a"}, model.Tag{ID: 2, Name: "b"}, model.Tag{ID: 3, Name: "c"}
	s.SetSelectedTags([]model.Tag{b, a, b, c})
	assert.Equal(t, []int64{2, 1, 3}, model.TagIDs(s.SelectedTags()))

	s.ToggleTag(a)
	assert.Equal(t, []int64{2, 3}, model.TagIDs(s.SelectedTags()))
	s.ToggleTag(a)
	assert.Equal(t, []int64{2, 3, 1}, model.TagIDs(s.SelectedTags()))
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New()
	u := &model.User{ID: 1, Username: "ann"}
	s.SetSelectedUser(u)
	u.Username = "changed"
	assert.Equal(t, "ann", s.SelectedUser().Username)

	s.SetSelectedTags([]model.Tag{{ID: 1}})
	snap := s.Snapshot()
	snap.Tags[0].ID = 42
	assert.Equal(t, int64(1), s.SelectedTags()[0].ID)
}

func TestSubscribe_NotifiedAndUnsubscribed(t *testing.T) {
	s := New()
	var got []Snapshot
	unsub := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	none := model.NoCollection()
	s.SetSelectedCollection(&none)
	s.SetSearchTerm("go")
	s.SetViewMode(ViewTable)
	if assert.Len(t, got, 3) {
		assert.True(t, got[0].Collection.IsNone())
		assert.Equal(t, "go", got[1].Search)
		assert.Equal(t, ViewTable, got[2].View)
	}

	unsub()
	s.TriggerRefresh()
	assert.Len(t, got, 3)
}

// Подписчик может читать store внутри колбэка без дедлока
func TestSubscribe_CallbackMayReadStore(t *testing.T) {
	s := New()
	var seen string
	s.Subscribe(func(Snapshot) { seen = s.SearchTerm() })
	s.SetSearchTerm("x")
	assert.Equal(t, "x", seen)
}

func TestConcurrentWriters(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.TriggerRefresh()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), s.RefreshCount())
}

func TestFromContext(t *testing.T) {
	s := New()
	ctx := WithStore(context.Background(), s)
	assert.Same(t, s, FromContext(ctx))

	assert.Panics(t, func() { FromContext(context.Background()) })
}

func TestParseViewMode(t *testing.T) {
	m, ok := ParseViewMode("table")
	assert.True(t, ok)
	assert.Equal(t, ViewTable, m)
	_, ok = ParseViewMode("list")
	assert.False(t, ok)
}
