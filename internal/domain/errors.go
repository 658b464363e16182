package domain

import "errors"

var (
	// ErrInvalidInput signals an empty lost or found description.
	ErrInvalidInput = errors.New("invalid input")
	// ErrQuotaExceeded signals an exhausted request quota.
	ErrQuotaExceeded = errors.New("match quota exceeded")
)
