package repository

import (
	"context"

	"tourbooking/internal/domain"

	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) GetAll(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Blog, int64, error) {
	var blogs []domain.Blog
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Blog{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	q.Count(&total)

	err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error

	return blogs, total, err
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	var b domain.Blog
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Blog{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
