package repo

import (
	"context"

	"gorm.io/gorm"

	"Linkshelf/internal/model"
)

type CollectionRepository interface {
	// List returns all collections, or only the user's when userID is set.
	List(ctx context.Context, userID *int64) ([]model.Collection, error)
	Get(ctx context.Context, id int64) (*model.Collection, error)
	Create(ctx context.Context, c *model.Collection) error
	Update(ctx context.Context, c *model.Collection) error
	// Delete removes the collection; its bookmarks become uncategorized.
	Delete(ctx context.Context, id int64) error
}

type collectionRepo struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) List(ctx context.Context, userID *int64) ([]model.Collection, error) {
	q := r.db.WithContext(ctx).Order("name")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var cols []model.Collection
	err := q.Find(&cols).Error
	return cols, err
}

func (r *collectionRepo) Get(ctx context.Context, id int64) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepo) Create(ctx context.Context, c *model.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepo) Update(ctx context.Context, c *model.Collection) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *collectionRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Bookmark{}).Where("collection_id = ?", id).
			Update("collection_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Collection{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
