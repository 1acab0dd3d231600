package repository

import (
	"context"
	"time"

	"tourbooking/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

type cartItemModel struct {
	ID                     int64                       `gorm:"column:id;primaryKey"`
	UserID                 int64                       `gorm:"column:user_id;index"`
	TourID                 int64                       `gorm:"column:tour_id"`
	TourTitle              datatypes.JSONSlice[string] `gorm:"column:tour_title"`
	TourBasePrice          float64                     `gorm:"column:tour_base_price"`
	TourImages             datatypes.JSONSlice[string] `gorm:"column:tour_images"`
	SelectedDate           *time.Time                  `gorm:"column:selected_date"`
	Adults                 int                         `gorm:"column:adults"`
	Children               int                         `gorm:"column:children"`
	Infants                int                         `gorm:"column:infants"`
	SelectedActivities     datatypes.JSONSlice[string] `gorm:"column:selected_activities"`
	TotalPrice             float64                     `gorm:"column:total_price"`
	ActivityPriceIncrement float64                     `gorm:"column:activity_price_increment"`
	CarCost                float64                     `gorm:"column:car_cost"`
	Status                 string                      `gorm:"column:status"`
	IsComplete             bool                        `gorm:"column:is_complete"`
	SortOrder              int                         `gorm:"column:sort_order"`
	CreatedAt              time.Time                   `gorm:"column:created_at"`
	UpdatedAt              time.Time                   `gorm:"column:updated_at"`
}

func (cartItemModel) TableName() string { return "cart_items" }

func toDomainCartItem(m cartItemModel) *domain.CartItem {
	return &domain.CartItem{
		ID:            m.ID,
		UserID:        m.UserID,
		TourID:        m.TourID,
		TourTitle:     []string(m.TourTitle),
		TourBasePrice: m.TourBasePrice,
		TourImages:    []string(m.TourImages),
		SelectedDate:  m.SelectedDate,
		Travelers: domain.TravelerCounts{
			Adults:   m.Adults,
			Children: m.Children,
			Infants:  m.Infants,
		},
		SelectedActivities:     []string(m.SelectedActivities),
		TotalPrice:             m.TotalPrice,
		ActivityPriceIncrement: m.ActivityPriceIncrement,
		CarCost:                m.CarCost,
		Status:                 domain.CartItemStatus(m.Status),
		IsComplete:             m.IsComplete,
		Order:                  m.SortOrder,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func toCartItemModel(i *domain.CartItem) cartItemModel {
	return cartItemModel{
		ID:                     i.ID,
		UserID:                 i.UserID,
		TourID:                 i.TourID,
		TourTitle:              datatypes.NewJSONSlice(i.TourTitle),
		TourBasePrice:          i.TourBasePrice,
		TourImages:             datatypes.NewJSONSlice(i.TourImages),
		SelectedDate:           i.SelectedDate,
		Adults:                 i.Travelers.Adults,
		Children:               i.Travelers.Children,
		Infants:                i.Travelers.Infants,
		SelectedActivities:     datatypes.NewJSONSlice(i.SelectedActivities),
		TotalPrice:             i.TotalPrice,
		ActivityPriceIncrement: i.ActivityPriceIncrement,
		CarCost:                i.CarCost,
		Status:                 string(i.Status),
		IsComplete:             i.IsComplete,
		SortOrder:              i.Order,
		CreatedAt:              i.CreatedAt,
		UpdatedAt:              i.UpdatedAt,
	}
}

func (r *CartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	m := toCartItemModel(item)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*item = *toDomainCartItem(m)
	return nil
}

func (r *CartRepository) GetByID(ctx context.Context, userID, itemID int64) (*domain.CartItem, error) {
	var m cartItemModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCartItem(m), nil
}

func (r *CartRepository) GetForUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var models []cartItemModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC, created_at ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CartItem, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCartItem(m))
	}
	return out, nil
}

func (r *CartRepository) Update(ctx context.Context, item *domain.CartItem) error {
	m := toCartItemModel(item)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*item = *toDomainCartItem(m)
	return nil
}

// Delete removes one item scoped to its owner. The returned flag is
// false when nothing matched, so callers can fail soft.
func (r *CartRepository) Delete(ctx context.Context, userID, itemID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&cartItemModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *CartRepository) DeleteForUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cartItemModel{}).Error
}

func (r *CartRepository) UpdateSortOrder(ctx context.Context, userID int64, orderedIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range orderedIDs {
			if err := tx.Model(&cartItemModel{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("sort_order", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
