package checkout

import "errors"

var (
	ErrProfileIncomplete = errors.New("profile is incomplete")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrGateway           = errors.New("payment system error")
	ErrOrderNotFound     = errors.New("payment order not found")
	ErrOrderTerminal     = errors.New("payment order already settled")
	ErrForbidden         = errors.New("order belongs to another user")
)
