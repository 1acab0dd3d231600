package domain

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentOrderStatus string

const (
	OrderPending    PaymentOrderStatus = "pending"
	OrderProcessing PaymentOrderStatus = "processing"
	OrderCompleted  PaymentOrderStatus = "completed"
	OrderFailed     PaymentOrderStatus = "failed"
	OrderCancelled  PaymentOrderStatus = "cancelled"
)

// Terminal reports whether the order can still change state.
func (s PaymentOrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderFailed || s == OrderCancelled
}

// PaymentOrder is the gateway-side representation of a checkout attempt,
// keyed by the gateway's order id. Happy path mutates it exactly twice:
// the user-initiated create and the asynchronous callback.
type PaymentOrder struct {
	ID               string             `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ExternalOrderID  string             `gorm:"uniqueIndex;type:varchar(64)" json:"external_order_id"`
	UserID           int64              `gorm:"index;not null" json:"user_id"`
	InvoiceID        string             `gorm:"type:varchar(64)" json:"invoice_id,omitempty"`
	Status           PaymentOrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Amount           float64            `gorm:"not null" json:"amount"`
	Currency         string             `gorm:"type:varchar(8)" json:"currency"`
	RedirectURL      string             `gorm:"type:text" json:"redirect_url"`
	CallbackReceived bool               `gorm:"default:false" json:"callback_received"`
	TransactionID    string             `gorm:"type:varchar(64)" json:"transaction_id,omitempty"`
	CallbackPayload  datatypes.JSON     `gorm:"type:text" json:"-"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func (PaymentOrder) TableName() string { return "payment_orders" }
