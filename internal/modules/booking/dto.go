package booking

import (
	"time"

	"tourbooking/internal/domain"
)

type UpdateDateRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

type UpdateTravelersRequest struct {
	Adults   int `json:"adults" binding:"required"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

type SetTempActivitiesRequest struct {
	TourID     int64    `json:"tour_id" binding:"required"`
	Activities []string `json:"activities"`
}

func travelersFromRequest(req UpdateTravelersRequest) domain.TravelerCounts {
	return domain.TravelerCounts{Adults: req.Adults, Children: req.Children, Infants: req.Infants}
}

type SessionResponse struct {
	SelectedDate *time.Time            `json:"selected_date,omitempty"`
	Travelers    domain.TravelerCounts `json:"travelers"`
	Activities   []string              `json:"activities,omitempty"`
	IsComplete   bool                  `json:"is_complete"`
}
