// Package repository is the storage gateway: one explicitly constructed
// database handle plus the restaurant and menu item stores built on it.
package repository

import (
	"context"
	"database/sql"

	"github.com/okian/restaurants/internal/domain/model"
)

// Querier is the parameterized query surface shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CascadeFunc removes everything owned by a restaurant. It runs on the
// querier of the transaction deleting the restaurant and returns the number
// of rows it removed.
type CascadeFunc func(ctx context.Context, q Querier, restaurantID int64) (int64, error)

// RestaurantStore provides access to the restaurants table.
type RestaurantStore interface {
	// List returns all restaurants in storage order.
	List(ctx context.Context) ([]model.Restaurant, error)
	// Get returns ErrNotFound if the restaurant is unknown.
	Get(ctx context.Context, id int64) (model.Restaurant, error)
	// Create inserts a restaurant and returns the stored row.
	Create(ctx context.Context, name, location string) (model.Restaurant, error)
	// Update persists name and location of r.
	Update(ctx context.Context, r model.Restaurant) error
	// Delete removes the restaurant and runs cascade in the same transaction.
	// Returns ErrNotFound if the restaurant is unknown and the number of rows
	// cascade removed otherwise.
	Delete(ctx context.Context, id int64, cascade CascadeFunc) (int64, error)
}

// MenuItemStore provides access to the menu_items table. Every lookup is
// scoped to the owning restaurant.
type MenuItemStore interface {
	List(ctx context.Context, restaurantID int64) ([]model.MenuItem, error)
	// Get returns ErrNotFound unless the item exists under restaurantID.
	Get(ctx context.Context, restaurantID, id int64) (model.MenuItem, error)
	// Create inserts the item and returns it with the generated id and the
	// price as stored.
	Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	// Update persists item and returns it with the price as stored. Returns
	// ErrNotFound when no row matched.
	Update(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	// Delete returns ErrNotFound when no row matched.
	Delete(ctx context.Context, restaurantID, id int64) error
	// DeleteAllByRestaurantID is the CascadeFunc for restaurant deletes.
	DeleteAllByRestaurantID(ctx context.Context, q Querier, restaurantID int64) (int64, error)
}
