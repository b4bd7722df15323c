package service

import "errors"

// Sentinel errors shared by all services. Handlers map these onto HTTP
// statuses: ErrNotFound -> 404, ErrValidation -> 400, anything else -> 500.
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")
)
