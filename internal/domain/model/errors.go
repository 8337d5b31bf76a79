package model

import "errors"

// Validation failures of request inputs.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidFields = errors.New("invalid field values")
)
