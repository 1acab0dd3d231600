package domain

import "time"

type Rating struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	TourID    int64     `gorm:"uniqueIndex:idx_tour_user;not null" json:"tour_id"`
	UserID    int64     `gorm:"uniqueIndex:idx_tour_user;not null" json:"user_id"`
	Stars     int       `gorm:"not null" json:"stars"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rating) TableName() string { return "ratings" }
