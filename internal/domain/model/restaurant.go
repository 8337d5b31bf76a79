// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"

	"github.com/okian/restaurants/internal/domain/types"
)

// Restaurant is a row of the restaurants table.
type Restaurant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// RestaurantInput is the body of POST and PUT /restaurants requests.
type RestaurantInput struct {
	Name     types.Optional[string] `json:"name"`
	Location types.Optional[string] `json:"location"`
}

// CheckCreate reports ErrMissingFields unless name and location are both
// present, then validates them.
func (in RestaurantInput) CheckCreate() error {
	if !in.Name.Set || !in.Location.Set {
		return ErrMissingFields
	}
	return in.Validate()
}

// Validate rejects blank values for the fields that are present.
func (in RestaurantInput) Validate() error {
	if in.Name.Set && strings.TrimSpace(in.Name.Value) == "" {
		return ErrInvalidFields
	}
	if in.Location.Set && strings.TrimSpace(in.Location.Value) == "" {
		return ErrInvalidFields
	}
	return nil
}

// Merge returns r with every present input field applied.
func (in RestaurantInput) Merge(r Restaurant) Restaurant {
	r.Name = in.Name.Or(r.Name)
	r.Location = in.Location.Or(r.Location)
	return r
}
