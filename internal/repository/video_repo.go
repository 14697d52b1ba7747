package repository

import (
	"context"

	"videoportfolio/internal/domain"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var v domain.Video
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&v)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &v, nil
}

// List returns videos by display order: sort_order ascending, newest first
// within the same order value. featuredOnly narrows to featured videos.
func (r *VideoRepository) List(ctx context.Context, featuredOnly bool) ([]domain.Video, error) {
	q := r.db.WithContext(ctx).Model(&domain.Video{})
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}

	videos := make([]domain.Video, 0)
	err := q.Order("sort_order ASC").Order("created_at DESC").Order("id ASC").Find(&videos).Error
	return videos, err
}

// Update writes only the named fields (struct field names) of v.
func (r *VideoRepository) Update(ctx context.Context, v *domain.Video, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	columns := append([]string{"UpdatedAt"}, fields...)
	tx := r.db.WithContext(ctx).Model(v).Select(columns).Updates(v)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the record. Returns gorm.ErrRecordNotFound when nothing was deleted.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Video{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
