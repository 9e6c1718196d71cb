package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/store"
)

func ptr[T any](v T) *T { return &v }

func TestDerive_ServerQuery(t *testing.T) {
	s := store.New()
	s.SetSelectedUser(&model.User{ID: 7, Username: "ann"})
	in := model.InCollection(3)
	s.SetSelectedCollection(&in)
	s.SetSearchTerm("  golang ")
	s.TriggerRefresh()

	d := Derive(s.Snapshot())
	q := d.Query()
	require.NotNil(t, q.Filters.UserID)
	assert.Equal(t, int64(7), *q.Filters.UserID)
	assert.Equal(t, "3", q.Filters.Collection.QueryValue())
	assert.Equal(t, "golang", q.Filters.Search)
	assert.Equal(t, uint64(1), q.Refresh)

	// счётчик обновления не уходит на сервер
	v := q.Filters.Values()
	assert.Empty(t, v.Get("_refresh"))
	assert.Equal(t, "golang", v.Get("search"))
}

func TestDerive_EmptySearchOmitted(t *testing.T) {
	s := store.New()
	s.SetSearchTerm("   ")
	v := Derive(s.Snapshot()).Query().Filters.Values()
	assert.False(t, v.Has("search"))
}

// Сентинел -1 выбирает закладки без коллекции и превращается в null на проводе
func TestDerive_SentinelCollection(t *testing.T) {
	s := store.New()
	ref, err := model.ParseCollectionRef("-1")
	require.NoError(t, err)
	s.SetSelectedCollection(&ref)

	v := Derive(s.Snapshot()).Query().Filters.Values()
	assert.Equal(t, "null", v.Get("collection_id"))
}

func TestApply_TagOrSemantics(t *testing.T) {
	a := model.Tag{ID: 1, Name: "A"}
	b := model.Tag{ID: 2, Name: "B"}
	c := model.Tag{ID: 3, Name: "C"}
	onlyA := model.Bookmark{ID: 10, Tags: []model.Tag{a}}
	both := model.Bookmark{ID: 11, Tags: []model.Tag{a, b}}
	onlyC := model.Bookmark{ID: 12, Tags: []model.Tag{c}}
	untagged := model.Bookmark{ID: 13}

	s := store.New()
	s.SetSelectedTags([]model.Tag{a, b})
	got := Derive(s.Snapshot()).Apply([]model.Bookmark{onlyA, both, onlyC, untagged})

	var ids []int64
	for _, bm := range got {
		ids = append(ids, bm.ID)
	}
	assert.Equal(t, []int64{10, 11}, ids)
}

func TestApply_NoTagsKeepsAll(t *testing.T) {
	list := []model.Bookmark{{ID: 1}, {ID: 2}}
	assert.Len(t, Derive(store.New().Snapshot()).Apply(list), 2)
}

func TestDeriver_ReferentiallyStable(t *testing.T) {
	s := store.New()
	var dr Deriver

	first := dr.Derive(s.Snapshot())
	// смена режима просмотра не входит в фильтр
	s.SetViewMode(store.ViewTable)
	assert.Same(t, first, dr.Derive(s.Snapshot()))

	s.SetSearchTerm("x")
	second := dr.Derive(s.Snapshot())
	assert.NotSame(t, first, second)
	assert.Same(t, second, dr.Derive(s.Snapshot()))

	// refresh: принудительно новый результат
	s.TriggerRefresh()
	third := dr.Derive(s.Snapshot())
	assert.NotSame(t, second, third)
	assert.NotEqual(t, second.Key(), third.Key())

	// изменение только выбора меток: новый результат при том же ключе запроса
	s.SetSelectedTags([]model.Tag{{ID: 1}})
	fourth := dr.Derive(s.Snapshot())
	assert.NotSame(t, third, fourth)
	assert.Equal(t, third.Key(), fourth.Key())
}

// Сценарий: коллекций нет, 3 закладки: 2 без коллекции, одна в несуществующей 5
func TestScenario_NoCollectionSelectsNullOnly(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: 1, CollectionID: nil},
		{ID: 2, CollectionID: nil},
		{ID: 3, CollectionID: ptr(int64(5))},
	}
	s := store.New()
	none := model.NoCollection()
	s.SetSelectedCollection(&none)
	q := Derive(s.Snapshot()).Query()

	var got []int64
	for _, b := range bookmarks {
		if q.Filters.Collection.Matches(b.CollectionID) {
			got = append(got, b.ID)
		}
	}
	assert.Equal(t, []int64{1, 2}, got)
}

func TestUsers_Search(t *testing.T) {
	users := []model.User{
		{ID: 1, Username: "alice", Email: "alice@example.com"},
		{ID: 2, Username: "bob", Email: "bob@corp.io"},
	}
	assert.Len(t, Users(users, ""), 2)
	assert.Equal(t, int64(2), Users(users, "CORP")[0].ID)
	assert.Empty(t, Users(users, "zzz"))
}
