package catalog

import "tourbooking/internal/domain"

// CreateTourRequest: localized arrays are ka/en/ru, in that order.
type CreateTourRequest struct {
	Title       []string                 `json:"title" binding:"required"`
	Subtitle    []string                 `json:"subtitle"`
	Description []string                 `json:"description"`
	BasePrice   float64                  `json:"base_price" binding:"required,gt=0"`
	Duration    string                   `json:"duration"`
	LeaveTime   string                   `json:"leave_time"`
	ReturnTime  string                   `json:"return_time"`
	Lat         *float64                 `json:"lat"`
	Lng         *float64                 `json:"lng"`
	Images      []string                 `json:"images"`
	Activities  []domain.OfferedActivity `json:"offered_activities"`
}

// UpdateTourRequest is a partial patch; nil fields are left alone.
type UpdateTourRequest struct {
	Title       *[]string                 `json:"title"`
	Subtitle    *[]string                 `json:"subtitle"`
	Description *[]string                 `json:"description"`
	BasePrice   *float64                  `json:"base_price"`
	Duration    *string                   `json:"duration"`
	LeaveTime   *string                   `json:"leave_time"`
	ReturnTime  *string                   `json:"return_time"`
	Lat         *float64                  `json:"lat"`
	Lng         *float64                  `json:"lng"`
	Images      *[]string                 `json:"images"`
	Activities  *[]domain.OfferedActivity `json:"offered_activities"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
