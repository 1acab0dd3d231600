package domain

import (
	"time"

	"gorm.io/datatypes"
)

type InvoicePaymentStatus string

const (
	InvoicePaid   InvoicePaymentStatus = "paid"
	InvoiceFailed InvoicePaymentStatus = "failed"
)

type InvoiceLine struct {
	TourID      int64   `json:"tour_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Invoice is synthesized once a payment order completes and is linked
// back to the order. Re-delivered callbacks update payment fields only.
type Invoice struct {
	ID            string                           `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OrderID       string                           `gorm:"index;type:varchar(64)" json:"order_id"`
	UserID        int64                            `gorm:"index;not null" json:"user_id"`
	Amount        float64                          `json:"amount"`
	Currency      string                           `gorm:"type:varchar(8)" json:"currency"`
	PaymentStatus InvoicePaymentStatus             `gorm:"type:varchar(20)" json:"payment_status"`
	TransactionID string                           `gorm:"type:varchar(64)" json:"transaction_id,omitempty"`
	FailureReason string                           `gorm:"type:text" json:"failure_reason,omitempty"`
	Lines         datatypes.JSONSlice[InvoiceLine] `json:"lines"`
	PaidAt        *time.Time                       `json:"paid_at,omitempty"`
	CreatedAt     time.Time                        `json:"created_at"`
	UpdatedAt     time.Time                        `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }
