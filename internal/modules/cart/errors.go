package cart

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrTourNotFound      = errors.New("tour not found")
	ErrTourNotBookable   = errors.New("tour is not open for booking")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrTourImmutable     = errors.New("cart item tour cannot be changed")
	ErrItemAlreadyBooked = errors.New("cart item is already booked")
)
