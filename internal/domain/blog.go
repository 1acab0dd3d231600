package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Blog posts carry the same ka/en/ru localized arrays as tours.
type Blog struct {
	ID        int64                       `gorm:"primaryKey" json:"id"`
	Title     datatypes.JSONSlice[string] `json:"title"`
	Text      datatypes.JSONSlice[string] `json:"text"`
	Images    datatypes.JSONSlice[string] `json:"images"`
	Published bool                        `gorm:"default:true;index" json:"published"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }
