package repository

import (
	"context"

	"tourbooking/internal/domain"

	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) GetByTour(ctx context.Context, tourID int64, limit, offset int) ([]domain.Rating, error) {
	var ratings []domain.Rating
	tx := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings)
	return ratings, tx.Error
}

func (r *RatingRepository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	var rating domain.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Rating{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AverageForTour returns the mean star rating, 0 when unrated.
func (r *RatingRepository) AverageForTour(ctx context.Context, tourID int64) (float64, error) {
	var avg *float64
	tx := r.db.WithContext(ctx).
		Model(&domain.Rating{}).
		Where("tour_id = ?", tourID).
		Select("AVG(stars)").
		Scan(&avg)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
