package model

import (
	"strings"

	"github.com/okian/restaurants/internal/domain/types"
)

// MenuItem is a row of the menu_items table. Every item belongs to exactly
// one restaurant.
type MenuItem struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
}

// MenuItemInput is the body of POST and PUT /restaurants/{id}/menu requests.
type MenuItemInput struct {
	Name        types.Optional[string]  `json:"name"`
	Description types.Optional[string]  `json:"description"`
	Price       types.Optional[float64] `json:"price"`
}

// CheckCreate reports ErrMissingFields unless name, description and price
// are all present, then validates them. The description may be empty.
func (in MenuItemInput) CheckCreate() error {
	if !in.Name.Set || !in.Description.Set || !in.Price.Set {
		return ErrMissingFields
	}
	return in.Validate()
}

// Validate rejects a blank name and a negative price.
func (in MenuItemInput) Validate() error {
	if in.Name.Set && strings.TrimSpace(in.Name.Value) == "" {
		return ErrInvalidFields
	}
	if in.Price.Set && in.Price.Value < 0 {
		return ErrInvalidFields
	}
	return nil
}

// Merge returns m with every present input field applied.
func (in MenuItemInput) Merge(m MenuItem) MenuItem {
	m.Name = in.Name.Or(m.Name)
	m.Description = in.Description.Or(m.Description)
	m.Price = in.Price.Or(m.Price)
	return m
}
