package dashboard

import "errors"

var (
	ErrInvalidScope     = errors.New("invalid scope")
	ErrInvalidAnchor    = errors.New("invalid anchor date")
	ErrInvalidSort      = errors.New("invalid sort field")
	ErrInvalidDirection = errors.New("invalid sort direction")
)
