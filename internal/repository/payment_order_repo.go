package repository

import (
	"context"

	"tourbooking/internal/domain"

	"gorm.io/gorm"
)

type PaymentOrderRepository struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: db}
}

func (r *PaymentOrderRepository) Create(ctx context.Context, o *domain.PaymentOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *PaymentOrderRepository) GetByID(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	var o domain.PaymentOrder
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&o)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}

func (r *PaymentOrderRepository) Update(ctx context.Context, o *domain.PaymentOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *PaymentOrderRepository) GetForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.PaymentOrder, error) {
	var orders []domain.PaymentOrder
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders)
	return orders, tx.Error
}
