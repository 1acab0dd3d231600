package cart

import (
	"time"

	"tourbooking/internal/domain"
)

type AddToCartRequest struct {
	TourID     int64    `json:"tour_id" binding:"required"`
	Activities []string `json:"activities"`
}

// UpdateCartItemRequest is a partial patch; nil fields are left alone.
// TourID is present only so the immutability rule can be enforced with
// an explicit error instead of silently ignoring the field.
type UpdateCartItemRequest struct {
	TourID             *int64                 `json:"tour_id"`
	SelectedDate       *time.Time             `json:"selected_date"`
	Travelers          *domain.TravelerCounts `json:"travelers"`
	SelectedActivities *[]string              `json:"selected_activities"`
}

type ReorderRequest struct {
	ItemIDs []int64 `json:"item_ids" binding:"required"`
}

type RemoveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ItemView decorates a persisted item with the price it would carry if
// repriced against the current shared session state, and the form action
// the booking page should offer for it. Persisted totals can be stale
// until the item is edited or checked out.
type ItemView struct {
	domain.CartItem
	EffectiveTotalPrice float64    `json:"effective_total_price"`
	FormAction          FormAction `json:"form_action"`
}
