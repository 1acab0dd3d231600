package checkout

import (
	"context"

	"tourbooking/internal/domain"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type tourReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

type cartStore interface {
	GetForUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	Update(ctx context.Context, item *domain.CartItem) error
	DeleteForUser(ctx context.Context, userID int64) error
}

type sessionReader interface {
	Selection(userID int64) domain.BookingSelection
}

type orderRepo interface {
	Create(ctx context.Context, o *domain.PaymentOrder) error
	GetByID(ctx context.Context, id string) (*domain.PaymentOrder, error)
	GetForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.PaymentOrder, error)
	Update(ctx context.Context, o *domain.PaymentOrder) error
}

type invoiceRepo interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
}

// gateway is the outbound payment-provider surface; the HTTP client in
// bog.go is the production implementation.
type gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error)
}
