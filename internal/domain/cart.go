package domain

import "time"

type CartItemStatus string

const (
	CartItemIncomplete CartItemStatus = "incomplete"
	CartItemReady      CartItemStatus = "ready"
	CartItemBooked     CartItemStatus = "booked"
)

// TravelerCounts: adults >= 2 everywhere the counts are mutated.
// Infants ride free and never count toward the paying-people total.
type TravelerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func DefaultTravelers() TravelerCounts {
	return TravelerCounts{Adults: 2, Children: 0, Infants: 0}
}

// BookingSelection is the ephemeral per-session selection; it is never
// persisted until it is promoted into a cart item.
type BookingSelection struct {
	SelectedDate       *time.Time
	Travelers          TravelerCounts
	SelectedActivities []string
}

// CartItem is one persisted line item of a user's cart. The tour fields
// are denormalized snapshots taken when the item was added; TotalPrice is
// recomputed on every mutation and never trusted from client state.
type CartItem struct {
	ID                     int64          `json:"id"`
	UserID                 int64          `json:"-"`
	TourID                 int64          `json:"tour_id"`
	TourTitle              []string       `json:"tour_title"`
	TourBasePrice          float64        `json:"tour_base_price"`
	TourImages             []string       `json:"tour_images"`
	SelectedDate           *time.Time     `json:"selected_date,omitempty"`
	Travelers              TravelerCounts `json:"travelers"`
	SelectedActivities     []string       `json:"selected_activities"`
	TotalPrice             float64        `json:"total_price"`
	ActivityPriceIncrement float64        `json:"activity_price_increment"`
	CarCost                float64        `json:"-"`
	Status                 CartItemStatus `json:"status"`
	IsComplete             bool           `json:"is_complete"`
	Order                  int            `json:"order"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}
