package model

import "strings"

// DefaultTagColor is used when a tag is created without an explicit color.
const DefaultTagColor = "#3B82F6"

// Tag: метка закладки.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt Timestamp `json:"created_at"`
}

// TagInput is the body of POST /tags/ and PUT /tags/{id}.
type TagInput struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// FindTagByName ищет метку по имени без учёта регистра.
func FindTagByName(tags []Tag, name string) (Tag, bool) {
	name = strings.TrimSpace(name)
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Tag{}, false
}

// TagIDs returns ids of tags in order.
func TagIDs(tags []Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// UniqueIDs drops repeated ids keeping the first occurrence.
func UniqueIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
