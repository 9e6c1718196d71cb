package service

import (
	"bytes"
	"encoding/json"
)

type UserInput struct {
	Username string  `json:"username" validate:"required,min=3,max=50,username"`
	Email    string  `json:"email" validate:"required,max=255,simple_email"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,max=20"`
}

type TagInput struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type CollectionInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
}

type BookmarkInput struct {
	URL          string  `json:"url" validate:"required,max=2048,http_url"`
	Title        string  `json:"title" validate:"required,max=500"`
	Description  *string `json:"description,omitempty"`
	Summary      *string `json:"summary,omitempty"`
	UserID       int64   `json:"user_id" validate:"required,gt=0"`
	CollectionID *int64  `json:"collection_id"`
	TagIDs       []int64 `json:"tag_ids,omitempty"`
}

// BookmarkUpdate: частичное обновление: отсутствующие поля не меняются.
type BookmarkUpdate struct {
	URL          *string    `json:"url,omitempty" validate:"omitempty,max=2048,http_url"`
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description  *string    `json:"description,omitempty"`
	CollectionID OptionalID `json:"collection_id"`
	TagIDs       []int64    `json:"tag_ids"` // nil: не менять, []: снять все метки
}

// OptionalID distinguishes an absent field from an explicit null.
type OptionalID struct {
	Set bool
	ID  *int64
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.ID = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

// BookmarkQuery: фильтры списка закладок.
type BookmarkQuery struct {
	UserID       *int64
	CollectionID *int64
	NoCollection bool
	Search       string
	Skip         int
	Limit        int
}

type SuggestTagsInput struct {
	URL          string   `json:"url" validate:"required"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	ExistingTags []string `json:"existing_tags,omitempty"`
}

type SimilarInput struct {
	URL         string `json:"url" validate:"required"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	UserID      *int64 `json:"user_id,omitempty"`
}
