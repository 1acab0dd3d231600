package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrIncompleteBooking = errors.New("incomplete booking details")
)
