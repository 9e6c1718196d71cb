package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Linkshelf/internal/model"
)

type TagRepository interface {
	List(ctx context.Context) ([]model.Tag, error)
	Get(ctx context.Context, id int64) (*model.Tag, error)
	// FindByName matches case-insensitively and returns (nil, nil) when absent.
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	// GetMany returns the tags with the given ids; missing ids are simply absent.
	GetMany(ctx context.Context, ids []int64) ([]model.Tag, error)
	Create(ctx context.Context, t *model.Tag) error
	Update(ctx context.Context, t *model.Tag) error
	Delete(ctx context.Context, id int64) error
	// UsageCount returns how many bookmarks reference the tag.
	UsageCount(ctx context.Context, id int64) (int64, error)
}

type tagRepo struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

func (r *tagRepo) Get(ctx context.Context, id int64) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) GetMany(ctx context.Context, ids []int64) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}
	var tags []model.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *tagRepo) Create(ctx context.Context, t *model.Tag) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tagRepo) Update(ctx context.Context, t *model.Tag) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tagRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Tag{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tagRepo) UsageCount(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("bookmark_tags").Where("tag_id = ?", id).Count(&n).Error
	return n, err
}
