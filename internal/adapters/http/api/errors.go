package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/restaurants/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrRouting    = errors.New("routing failed")
	ErrPanic      = errors.New("panic")
)

// Error is a failure reported to the client. Kind is one of the sentinels
// above, Status the HTTP status and Message the text of the response body.
type Error struct {
	Kind    error
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewKind creates a client-facing error of the given kind.
func NewKind(kind error, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// Wrap prefixes err with the operation that failed. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// WrapKind attaches a client-facing error to its underlying cause so both
// can be matched with errors.Is and errors.As.
func WrapKind(op string, kind *Error, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, cause)
}

var (
	errEndpointNotFound     = NewKind(ErrRouting, http.StatusNotFound, "Endpoint not found")
	errMethodNotAllowed     = NewKind(ErrRouting, http.StatusMethodNotAllowed, "Method not allowed")
	errInvalidEndpoint      = NewKind(ErrRouting, http.StatusBadRequest, "Invalid endpoint")
	errRestaurantIDRequired = NewKind(ErrValidation, http.StatusBadRequest, "Restaurant ID required")
	errMenuItemIDRequired   = NewKind(ErrValidation, http.StatusBadRequest, "Menu item ID required")
	errInvalidRestaurantID  = NewKind(ErrValidation, http.StatusBadRequest, "Invalid restaurant ID")
	errInvalidMenuItemID    = NewKind(ErrValidation, http.StatusBadRequest, "Invalid menu item ID")
	errMissingFields        = NewKind(ErrValidation, http.StatusBadRequest, "Missing required fields")
	errInvalidFields        = NewKind(ErrValidation, http.StatusBadRequest, "Invalid field values")
	errInvalidJSON          = NewKind(ErrValidation, http.StatusBadRequest, "Invalid JSON body")
	errRestaurantNotFound   = NewKind(ErrNotFound, http.StatusNotFound, "Restaurant not found")
	errMenuItemNotFound     = NewKind(ErrNotFound, http.StatusNotFound, "Menu item not found")
)

// inputError maps a model validation error to its client-facing form.
func inputError(op string, err error) error {
	switch {
	case errors.Is(err, model.ErrMissingFields):
		return WrapKind(op, errMissingFields, err)
	case errors.Is(err, model.ErrInvalidFields):
		return WrapKind(op, errInvalidFields, err)
	default:
		return WrapKind(op, errInvalidJSON, err)
	}
}

// kindLabel names an error kind for metrics.
func kindLabel(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRouting):
		return "routing"
	case errors.Is(err, ErrPanic):
		return "panic"
	default:
		return "storage"
	}
}
