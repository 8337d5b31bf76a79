// Package seed drives the restaurant API over HTTP: it creates restaurants
// with menu items concurrently, reads them back and optionally deletes them
// to check that menu items are cascaded.
package seed

import (
	"errors"
	"time"
)

// Sentinel errors reported by Run.
var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrRequest      = errors.New("request failed")
	ErrVerification = errors.New("verification failed")
)

// Config holds configuration for a seed run.
type Config struct {
	BaseURL            string        // Base URL of the service
	Restaurants        int           // Number of restaurants to create
	ItemsPerRestaurant int           // Menu items created under each restaurant
	Workers            int           // Number of concurrent workers
	Timeout            time.Duration // HTTP request timeout
	Cleanup            bool          // Delete the restaurants and check the cascade
	Verbose            bool          // Log every request outcome
}

// Restaurant mirrors the restaurant representation of the API.
type Restaurant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuItem mirrors the menu item representation of the API.
type MenuItem struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
}

// Stats holds run statistics.
type Stats struct {
	RestaurantsCreated int
	MenuItemsCreated   int
	RestaurantsChecked int
	Mismatches         int
	RestaurantsDeleted int
	OrphanedMenuItems  int
	RequestsFailed     int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
