package services

import "errors"

// Error kinds surfaced by the services. Controllers map each kind to its own
// HTTP status so callers can tell bad input from a lost race from an illegal
// lifecycle move. Anything not matching one of these is a store failure.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
