package model

import "time"

// User: владелец коллекций и закладок.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Gender    *string   `gorm:"size:20" json:"gender,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Tag is shared by all users. Names are unique case-insensitively (checked by the service).
type Tag struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null;index" json:"name"`
	Color     string    `gorm:"size:7;not null;default:'#3B82F6'" json:"color"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Collection struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `gorm:"size:7" json:"color,omitempty"`
	UserID      int64   `gorm:"not null;index" json:"user_id"`

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Bookmark struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	URL          string  `gorm:"size:2048;not null" json:"url"`
	Title        string  `gorm:"size:500;not null" json:"title"`
	Description  *string `json:"description,omitempty"`
	Summary      *string `json:"summary,omitempty"`
	UserID       int64   `gorm:"not null;index" json:"user_id"`
	CollectionID *int64  `gorm:"index" json:"collection_id"` // nil: без коллекции

	// Связи
	User       *User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Collection *Collection `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Tags       []Tag       `gorm:"many2many:bookmark_tags" json:"tags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// All lists the models to migrate.
func All() []any {
	return []any{&User{}, &Tag{}, &Collection{}, &Bookmark{}}
}
