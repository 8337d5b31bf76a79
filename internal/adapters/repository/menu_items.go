package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/restaurants/internal/domain/model"
)

const (
	// storedPrice rounds to cents on both dialects so sqlite keeps what a
	// postgres NUMERIC(10,2) column would.
	storedPrice = `ROUND(CAST(? AS NUMERIC), 2)`

	menuItemColumns = `id, restaurant_id, name, description, price`

	listMenuItemsSQL     = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = ? ORDER BY id`
	getMenuItemSQL       = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ? AND restaurant_id = ?`
	insertMenuItemSQL    = `INSERT INTO menu_items (restaurant_id, name, description, price) VALUES (?, ?, ?, ` + storedPrice + `) RETURNING id, price`
	updateMenuItemSQL    = `UPDATE menu_items SET name = ?, description = ?, price = ` + storedPrice + ` WHERE id = ? AND restaurant_id = ? RETURNING price`
	deleteMenuItemSQL    = `DELETE FROM menu_items WHERE id = ? AND restaurant_id = ?`
	deleteMenuByOwnerSQL = `DELETE FROM menu_items WHERE restaurant_id = ?`
)

// MenuItems is the SQL MenuItemStore.
type MenuItems struct {
	db *DB
}

// NewMenuItems creates a menu item store on db.
func NewMenuItems(db *DB) *MenuItems {
	return &MenuItems{db: db}
}

var _ MenuItemStore = (*MenuItems)(nil)

// List implements MenuItemStore.
func (s *MenuItems) List(ctx context.Context, restaurantID int64) (out []model.MenuItem, err error) {
	const op = "menu_items.list"
	defer observe(op, time.Now(), &err)

	rows, err := s.db.Querier().QueryContext(ctx, s.db.dialect.Rebind(listMenuItemsSQL), restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out = []model.MenuItem{}
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Get implements MenuItemStore.
func (s *MenuItems) Get(ctx context.Context, restaurantID, id int64) (m model.MenuItem, err error) {
	const op = "menu_items.get"
	defer observe(op, time.Now(), &err)

	err = s.db.Querier().QueryRowContext(ctx, s.db.dialect.Rebind(getMenuItemSQL), id, restaurantID).
		Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return m, nil
}

// Create implements MenuItemStore. The owning restaurant is not checked.
// The returned price is the stored one.
func (s *MenuItems) Create(ctx context.Context, item model.MenuItem) (_ model.MenuItem, err error) {
	const op = "menu_items.create"
	defer observe(op, time.Now(), &err)

	err = s.db.Querier().QueryRowContext(ctx, s.db.dialect.Rebind(insertMenuItemSQL),
		item.RestaurantID, item.Name, item.Description, item.Price).Scan(&item.ID, &item.Price)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// Update implements MenuItemStore.
func (s *MenuItems) Update(ctx context.Context, item model.MenuItem) (_ model.MenuItem, err error) {
	const op = "menu_items.update"
	defer observe(op, time.Now(), &err)

	err = s.db.Querier().QueryRowContext(ctx, s.db.dialect.Rebind(updateMenuItemSQL),
		item.Name, item.Description, item.Price, item.ID, item.RestaurantID).Scan(&item.Price)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return item, nil
}

// Delete implements MenuItemStore.
func (s *MenuItems) Delete(ctx context.Context, restaurantID, id int64) (err error) {
	const op = "menu_items.delete"
	defer observe(op, time.Now(), &err)

	res, err := s.db.Querier().ExecContext(ctx, s.db.dialect.Rebind(deleteMenuItemSQL), id, restaurantID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteAllByRestaurantID implements MenuItemStore.
func (s *MenuItems) DeleteAllByRestaurantID(ctx context.Context, q Querier, restaurantID int64) (n int64, err error) {
	const op = "menu_items.delete_by_restaurant"
	defer observe(op, time.Now(), &err)

	if q == nil {
		q = s.db.Querier()
	}
	res, err := q.ExecContext(ctx, s.db.dialect.Rebind(deleteMenuByOwnerSQL), restaurantID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
