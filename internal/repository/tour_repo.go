package repository

import (
	"context"

	"tourbooking/internal/domain"

	"gorm.io/gorm"
)

type TourFilters struct {
	Status   domain.TourStatus
	MinPrice float64
	MaxPrice float64
	Limit    int
	Offset   int
}

type TourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{db: db}
}

// GetAll returns tours with optional price filters and a total count for
// the pagination envelope.
func (r *TourRepository) GetAll(ctx context.Context, f TourFilters) ([]domain.Tour, int64, error) {
	var tours []domain.Tour
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Tour{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MinPrice > 0 {
		q = q.Where("base_price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("base_price <= ?", f.MaxPrice)
	}

	q.Count(&total)

	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&tours).Error

	return tours, total, err
}

func (r *TourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	var tour domain.Tour
	if err := r.db.WithContext(ctx).First(&tour, id).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *TourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

func (r *TourRepository) UpdateStatus(ctx context.Context, id int64, status domain.TourStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Tour{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
