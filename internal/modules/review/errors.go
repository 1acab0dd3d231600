package review

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("rating not found")
	ErrConflict       = errors.New("rating already exists")
)
