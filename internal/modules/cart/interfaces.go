package cart

import (
	"context"

	"tourbooking/internal/domain"
)

// CartRepository defines the persistence operations the manager needs.
type CartRepository interface {
	Create(ctx context.Context, item *domain.CartItem) error
	GetByID(ctx context.Context, userID, itemID int64) (*domain.CartItem, error)
	GetForUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	Update(ctx context.Context, item *domain.CartItem) error
	Delete(ctx context.Context, userID, itemID int64) (bool, error)
	UpdateSortOrder(ctx context.Context, userID int64, orderedIDs []int64) error
}

type TourReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

// SessionReader exposes the shared trip details held per user session.
type SessionReader interface {
	Selection(userID int64) domain.BookingSelection
}
