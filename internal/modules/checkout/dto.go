package checkout

import "time"

// OrderRequest is what the service hands to the gateway client.
type OrderRequest struct {
	ExternalOrderID string
	BuyerName       string
	BuyerEmail      string
	BuyerPhone      string
	Basket          []BasketItem
	TotalAmount     float64
	Currency        string
}

type BasketItem struct {
	ProductID   string  `json:"product_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderResponse carries the two things the backend needs from the
// gateway: its order id and where to send the user.
type OrderResponse struct {
	ID          string
	RedirectURL string
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	RedirectURL string `json:"redirect_url"`
}

// CallbackRequest mirrors the gateway's webhook envelope. Only order_id
// and order_status.key are required; everything else is best-effort.
type CallbackRequest struct {
	Event string       `json:"event"`
	Body  CallbackBody `json:"body"`
}

type CallbackBody struct {
	OrderID         string `json:"order_id"`
	ExternalOrderID string `json:"external_order_id"`
	OrderStatus     struct {
		Key string `json:"key"`
	} `json:"order_status"`
	PaymentDetail struct {
		TransactionID string `json:"transaction_id"`
		RejectReason  string `json:"reject_reason"`
	} `json:"payment_detail"`
}

// Callback is the normalized form the service consumes.
type Callback struct {
	OrderID       string
	Status        string
	TransactionID string
	RejectReason  string
	RawPayload    []byte
}

// OrderStatusResponse is the sanitized projection returned to the
// order's owner; the raw gateway payload never leaves the backend.
type OrderStatusResponse struct {
	OrderID          string    `json:"order_id"`
	Status           string    `json:"status"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	CallbackReceived bool      `json:"callback_received"`
	TransactionID    string    `json:"transaction_id,omitempty"`
	InvoiceID        string    `json:"invoice_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
