package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Collection: папка закладок пользователя.
type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"`
	UserID      int64     `json:"user_id"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// CollectionInput is the body of POST /collections/ and PUT /collections/{id}.
type CollectionInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
}

// CollectionRef is either "no collection" (uncategorized) or a concrete collection id.
// The zero value is NoCollection. On the wire NoCollection is always the literal null.
type CollectionRef struct {
	id int64
}

// NoCollection returns the "uncategorized" variant.
func NoCollection() CollectionRef { return CollectionRef{} }

// InCollection returns a reference to collection id. Non-positive ids yield NoCollection.
func InCollection(id int64) CollectionRef {
	if id <= 0 {
		return CollectionRef{}
	}
	return CollectionRef{id: id}
}

// CollectionRefOf maps an optional collection id as stored on a bookmark.
func CollectionRefOf(id *int64) CollectionRef {
	if id == nil {
		return NoCollection()
	}
	return InCollection(*id)
}

func (c CollectionRef) IsNone() bool { return c.id <= 0 }

// ID returns the collection id and false for NoCollection.
func (c CollectionRef) ID() (int64, bool) {
	if c.IsNone() {
		return 0, false
	}
	return c.id, true
}

// QueryValue is the value of the collection_id query parameter.
func (c CollectionRef) QueryValue() string {
	if c.IsNone() {
		return "null"
	}
	return strconv.FormatInt(c.id, 10)
}

// Matches reports whether a bookmark with the given collection id belongs to c.
func (c CollectionRef) Matches(collectionID *int64) bool {
	if c.IsNone() {
		return collectionID == nil
	}
	return collectionID != nil && *collectionID == c.id
}

func (c CollectionRef) String() string {
	if c.IsNone() {
		return "none"
	}
	return strconv.FormatInt(c.id, 10)
}

func (c CollectionRef) MarshalJSON() ([]byte, error) {
	if c.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(c.id)
}

func (c *CollectionRef) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*c = NoCollection()
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("collection_id: %w", err)
	}
	*c = InCollection(id)
	return nil
}

// ParseCollectionRef разбирает пользовательский ввод: none/null/-1: без коллекции,
// положительное число: id коллекции.
func ParseCollectionRef(s string) (CollectionRef, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "null", "-1", "uncategorized":
		return NoCollection(), nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return CollectionRef{}, fmt.Errorf("invalid collection %q: want a positive id or none", s)
	}
	return InCollection(id), nil
}
