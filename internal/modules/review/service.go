package review

import (
	"context"
	"errors"
	"strings"

	"tourbooking/internal/domain"
	"tourbooking/internal/repository"

	"gorm.io/gorm"
)

type TourGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

type Service struct {
	ratings *repository.RatingRepository
	tours   TourGate
}

func NewService(ratings *repository.RatingRepository, tours TourGate) *Service {
	return &Service{ratings: ratings, tours: tours}
}

// Create enforces one rating per user per tour through the unique index;
// a violation surfaces as ErrConflict, not a 500.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRatingRequest) (*domain.Rating, error) {
	if userID <= 0 || req.TourID <= 0 || req.Stars < 1 || req.Stars > 5 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.tours.GetByID(ctx, req.TourID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rating := &domain.Rating{
		TourID:  req.TourID,
		UserID:  userID,
		Stars:   req.Stars,
		Comment: req.Comment,
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rating, nil
}

func (s *Service) GetByTour(ctx context.Context, tourID int64, limit, offset int) ([]domain.Rating, float64, error) {
	if tourID <= 0 {
		return nil, 0, ErrInvalidRequest
	}
	ratings, err := s.ratings.GetByTour(ctx, tourID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	avg, err := s.ratings.AverageForTour(ctx, tourID)
	if err != nil {
		return nil, 0, err
	}
	return ratings, avg, nil
}

func (s *Service) Delete(ctx context.Context, ratingID int64) error {
	if err := s.ratings.Delete(ctx, ratingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	s := err.Error()
	return strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "SQLSTATE 23505") ||
		strings.Contains(s, "UNIQUE constraint failed")
}
