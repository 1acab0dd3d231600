package repository

import "tourbooking/internal/domain"

// MigrationModels lists everything AutoMigrate needs, including the
// package-private cart row model.
func MigrationModels() []any {
	return []any{
		&domain.User{},
		&domain.Tour{},
		&domain.Blog{},
		&domain.Rating{},
		&domain.PaymentOrder{},
		&domain.Invoice{},
		&cartItemModel{},
	}
}
