package domain

import (
	"time"

	"gorm.io/datatypes"
)

type TourStatus string

const (
	TourDraft    TourStatus = "draft"
	TourDisabled TourStatus = "disabled"
	TourActive   TourStatus = "active"
)

func ParseTourStatus(s string) (TourStatus, bool) {
	switch TourStatus(s) {
	case TourDraft, TourDisabled, TourActive:
		return TourStatus(s), true
	}
	return "", false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OfferedActivity is owned by its tour. NameSnapshot is frozen at
// tour-authoring time so later catalog renames don't rewrite history.
type OfferedActivity struct {
	ActivityTypeID      string       `json:"activity_type_id"`
	NameSnapshot        string       `json:"name_snapshot"`
	PriceIncrement      float64      `json:"price_increment"`
	Coordinates         *Coordinates `json:"coordinates,omitempty"`
	SpecificDescription string       `json:"specific_description,omitempty"`
}

// Tour is read-only from the booking flow's perspective.
// Localized fields are 3-element arrays indexed ka/en/ru.
type Tour struct {
	ID          int64                                    `gorm:"primaryKey" json:"id"`
	Title       datatypes.JSONSlice[string]              `json:"title"`
	Subtitle    datatypes.JSONSlice[string]              `json:"subtitle"`
	Description datatypes.JSONSlice[string]              `json:"description"`
	BasePrice   float64                                  `gorm:"not null" json:"base_price"`
	Duration    string                                   `gorm:"type:varchar(64)" json:"duration"`
	LeaveTime   string                                   `gorm:"type:varchar(16)" json:"leave_time"`
	ReturnTime  string                                   `gorm:"type:varchar(16)" json:"return_time"`
	Lat         *float64                                 `json:"lat,omitempty"`
	Lng         *float64                                 `json:"lng,omitempty"`
	Status      TourStatus                               `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	Images      datatypes.JSONSlice[string]              `json:"images"`
	Activities  datatypes.JSONSlice[OfferedActivity]     `json:"offered_activities"`
	CreatedAt   time.Time                                `json:"created_at"`
	UpdatedAt   time.Time                                `json:"updated_at"`
}

func (Tour) TableName() string { return "tours" }
