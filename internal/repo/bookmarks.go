package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"Linkshelf/internal/model"
)

// BookmarkFilter: условия выборки закладок.
type BookmarkFilter struct {
	UserID       *int64
	CollectionID *int64
	NoCollection bool // только закладки без коллекции
	Search       string
	Skip         int
	Limit        int
}

// likeEscaper экранирует метасимволы LIKE, чтобы поиск шёл по буквальной подстроке.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type BookmarkRepository interface {
	List(ctx context.Context, f BookmarkFilter) ([]model.Bookmark, error)
	Get(ctx context.Context, id int64) (*model.Bookmark, error)
	// Create stores b together with its tag links (b.Tags).
	Create(ctx context.Context, b *model.Bookmark) error
	// Update saves the columns of b; tags are replaced only when replaceTags is set.
	Update(ctx context.Context, b *model.Bookmark, replaceTags bool) error
	Delete(ctx context.Context, id int64) error
}

type bookmarkRepo struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) List(ctx context.Context, f BookmarkFilter) ([]model.Bookmark, error) {
	q := r.db.WithContext(ctx).Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name") })
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	switch {
	case f.NoCollection:
		q = q.Where("collection_id IS NULL")
	case f.CollectionID != nil:
		q = q.Where("collection_id = ?", *f.CollectionID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(url) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'`, like, like, like)
	}
	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []model.Bookmark
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *bookmarkRepo) Get(ctx context.Context, id int64) (*model.Bookmark, error) {
	var b model.Bookmark
	err := r.db.WithContext(ctx).Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookmarkRepo) Create(ctx context.Context, b *model.Bookmark) error {
	// метки уже существуют: создаём только связи
	return r.db.WithContext(ctx).Omit("Tags.*").Create(b).Error
}

func (r *bookmarkRepo) Update(ctx context.Context, b *model.Bookmark, replaceTags bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Save(b).Error; err != nil {
			return err
		}
		if !replaceTags {
			return nil
		}
		if len(b.Tags) == 0 {
			return tx.Model(b).Association("Tags").Clear()
		}
		return tx.Model(b).Association("Tags").Replace(b.Tags)
	})
}

func (r *bookmarkRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM bookmark_tags WHERE bookmark_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Bookmark{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
