package catalog

import (
	"context"
	"errors"

	"tourbooking/internal/domain"
	"tourbooking/internal/repository"

	"gorm.io/datatypes"
)

var (
	ErrInvalidStatus    = errors.New("invalid tour status")
	ErrInvalidLocalized = errors.New("localized fields must have exactly 3 entries")
)

const localeCount = 3 // ka, en, ru

type Service struct {
	tourRepo *repository.TourRepository
}

func NewService(tourRepo *repository.TourRepository) *Service {
	return &Service{tourRepo: tourRepo}
}

// ListPublic returns only active tours; drafts and disabled tours never
// leak through the public listing.
func (s *Service) ListPublic(ctx context.Context, f repository.TourFilters) ([]domain.Tour, int64, error) {
	f.Status = domain.TourActive
	return s.tourRepo.GetAll(ctx, f)
}

func (s *Service) ListAdmin(ctx context.Context, f repository.TourFilters) ([]domain.Tour, int64, error) {
	return s.tourRepo.GetAll(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	return s.tourRepo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateTourRequest) (*domain.Tour, error) {
	if err := checkLocalized(req.Title, req.Subtitle, req.Description); err != nil {
		return nil, err
	}

	tour := &domain.Tour{
		Title:       datatypes.NewJSONSlice(req.Title),
		Subtitle:    datatypes.NewJSONSlice(req.Subtitle),
		Description: datatypes.NewJSONSlice(req.Description),
		BasePrice:   req.BasePrice,
		Duration:    req.Duration,
		LeaveTime:   req.LeaveTime,
		ReturnTime:  req.ReturnTime,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Status:      domain.TourDraft,
		Images:      datatypes.NewJSONSlice(req.Images),
		Activities:  datatypes.NewJSONSlice(req.Activities),
	}

	if err := s.tourRepo.Create(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateTourRequest) (*domain.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if len(*req.Title) != localeCount {
			return nil, ErrInvalidLocalized
		}
		tour.Title = datatypes.NewJSONSlice(*req.Title)
	}
	if req.Subtitle != nil {
		tour.Subtitle = datatypes.NewJSONSlice(*req.Subtitle)
	}
	if req.Description != nil {
		tour.Description = datatypes.NewJSONSlice(*req.Description)
	}
	if req.BasePrice != nil && *req.BasePrice > 0 {
		tour.BasePrice = *req.BasePrice
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.LeaveTime != nil {
		tour.LeaveTime = *req.LeaveTime
	}
	if req.ReturnTime != nil {
		tour.ReturnTime = *req.ReturnTime
	}
	if req.Lat != nil {
		tour.Lat = req.Lat
	}
	if req.Lng != nil {
		tour.Lng = req.Lng
	}
	if req.Images != nil {
		tour.Images = datatypes.NewJSONSlice(*req.Images)
	}
	if req.Activities != nil {
		tour.Activities = datatypes.NewJSONSlice(*req.Activities)
	}

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	st, ok := domain.ParseTourStatus(status)
	if !ok {
		return ErrInvalidStatus
	}
	return s.tourRepo.UpdateStatus(ctx, id, st)
}

// Disable is the delete path: tours referenced by carts and invoices are
// never hard-deleted, only hidden from the public catalog.
func (s *Service) Disable(ctx context.Context, id int64) error {
	return s.tourRepo.UpdateStatus(ctx, id, domain.TourDisabled)
}

func checkLocalized(fields ...[]string) error {
	for _, f := range fields {
		if len(f) != 0 && len(f) != localeCount {
			return ErrInvalidLocalized
		}
	}
	return nil
}
