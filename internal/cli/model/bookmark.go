package model

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Bookmark: закладка со связанными метками.
type Bookmark struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Summary      *string   `json:"summary,omitempty"`
	UserID       int64     `json:"user_id"`
	CollectionID *int64    `json:"collection_id,omitempty"`
	Tags         []Tag     `json:"tags"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// Collection returns the typed collection reference of the bookmark.
func (b Bookmark) Collection() CollectionRef { return CollectionRefOf(b.CollectionID) }

// HasAnyTag reports whether the bookmark carries at least one of ids.
func (b Bookmark) HasAnyTag(ids map[int64]struct{}) bool {
	for _, t := range b.Tags {
		if _, ok := ids[t.ID]; ok {
			return true
		}
	}
	return false
}

// BookmarkInput is the body of POST /bookmarks/.
type BookmarkInput struct {
	URL         string        `json:"url" validate:"required,http_url"`
	Title       string        `json:"title" validate:"required,max=500"`
	Description *string       `json:"description,omitempty"`
	UserID      int64         `json:"user_id" validate:"required,gt=0"`
	Collection  CollectionRef `json:"collection_id"`
	TagIDs      []int64       `json:"tag_ids,omitempty"`
}

// BookmarkUpdate is the body of PUT /bookmarks/{id}. Nil fields are left unchanged.
type BookmarkUpdate struct {
	URL         *string        `json:"url,omitempty" validate:"omitempty,http_url"`
	Title       *string        `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string        `json:"description,omitempty"`
	Collection  *CollectionRef `json:"collection_id,omitempty"`
	TagIDs      []int64        `json:"tag_ids,omitempty"`
}

// BookmarkFilters: параметры GET /bookmarks/.
type BookmarkFilters struct {
	UserID     *int64
	Collection *CollectionRef // nil: все коллекции
	Search     string
	Skip       int
	Limit      int
}

// Values encodes the filters as query parameters. NoCollection becomes collection_id=null.
func (f BookmarkFilters) Values() url.Values {
	v := url.Values{}
	if f.UserID != nil {
		v.Set("user_id", strconv.FormatInt(*f.UserID, 10))
	}
	if f.Collection != nil {
		v.Set("collection_id", f.Collection.QueryValue())
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set("search", s)
	}
	if f.Skip > 0 {
		v.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// BookmarkQuery is the input of the bookmarks list state: wire filters plus the
// refresh counter, which only takes part in the key.
type BookmarkQuery struct {
	Filters BookmarkFilters
	Refresh uint64
}

type bookmarkQueryKey struct {
	UserID     *int64 `json:"user_id,omitempty"`
	Collection string `json:"collection_id,omitempty"`
	Search     string `json:"search,omitempty"`
	Skip       int    `json:"skip,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Refresh    uint64 `json:"_refresh"`
}

// Key serializes the query content; equal keys mean equal queries.
func (q BookmarkQuery) Key() string {
	k := bookmarkQueryKey{
		UserID:  q.Filters.UserID,
		Search:  strings.TrimSpace(q.Filters.Search),
		Skip:    q.Filters.Skip,
		Limit:   q.Filters.Limit,
		Refresh: q.Refresh,
	}
	if q.Filters.Collection != nil {
		k.Collection = q.Filters.Collection.QueryValue()
	}
	b, _ := json.Marshal(k)
	return string(b)
}

// CollectionFilters: параметры GET /collections/.
type CollectionFilters struct {
	UserID *int64
}

func (f CollectionFilters) Key() string {
	if f.UserID == nil {
		return "{}"
	}
	return `{"user_id":` + strconv.FormatInt(*f.UserID, 10) + `}`
}

// Values encodes the filters as query parameters.
func (f CollectionFilters) Values() url.Values {
	v := url.Values{}
	if f.UserID != nil {
		v.Set("user_id", strconv.FormatInt(*f.UserID, 10))
	}
	return v
}

// NoFilters is the filter of resources that are always fetched in full.
type NoFilters struct{}

func (NoFilters) Key() string { return "" }
