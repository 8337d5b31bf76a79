package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/restaurants/internal/domain/model"
)

const (
	restaurantColumns = `id, name, location, created_at`

	listRestaurantsSQL  = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id`
	getRestaurantSQL    = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`
	insertRestaurantSQL = `INSERT INTO restaurants (name, location) VALUES (?, ?) RETURNING id`
	updateRestaurantSQL = `UPDATE restaurants SET name = ?, location = ? WHERE id = ?`
	deleteRestaurantSQL = `DELETE FROM restaurants WHERE id = ?`
)

// Restaurants is the SQL RestaurantStore.
type Restaurants struct {
	db *DB
}

// NewRestaurants creates a restaurant store on db.
func NewRestaurants(db *DB) *Restaurants {
	return &Restaurants{db: db}
}

var _ RestaurantStore = (*Restaurants)(nil)

// List implements RestaurantStore.
func (s *Restaurants) List(ctx context.Context) (out []model.Restaurant, err error) {
	const op = "restaurants.list"
	defer observe(op, time.Now(), &err)

	rows, err := s.db.Querier().QueryContext(ctx, s.db.dialect.Rebind(listRestaurantsSQL))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out = []model.Restaurant{}
	for rows.Next() {
		var r model.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Location, timestamp{&r.CreatedAt}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Get implements RestaurantStore.
func (s *Restaurants) Get(ctx context.Context, id int64) (r model.Restaurant, err error) {
	const op = "restaurants.get"
	defer observe(op, time.Now(), &err)

	r, err = s.get(ctx, s.db.Querier(), id)
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

func (s *Restaurants) get(ctx context.Context, q Querier, id int64) (model.Restaurant, error) {
	var r model.Restaurant
	err := q.QueryRowContext(ctx, s.db.dialect.Rebind(getRestaurantSQL), id).
		Scan(&r.ID, &r.Name, &r.Location, timestamp{&r.CreatedAt})
	if err != nil {
		return model.Restaurant{}, notFound(err)
	}
	return r, nil
}

// Create implements RestaurantStore. The row is read back after the insert
// so the generated id and created_at are returned as stored.
func (s *Restaurants) Create(ctx context.Context, name, location string) (r model.Restaurant, err error) {
	const op = "restaurants.create"
	defer observe(op, time.Now(), &err)

	q := s.db.Querier()
	var id int64
	if err := q.QueryRowContext(ctx, s.db.dialect.Rebind(insertRestaurantSQL), name, location).Scan(&id); err != nil {
		return model.Restaurant{}, fmt.Errorf("%s: %w", op, err)
	}
	r, err = s.get(ctx, q, id)
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("%s: read back %d: %w", op, id, err)
	}
	return r, nil
}

// Update implements RestaurantStore.
func (s *Restaurants) Update(ctx context.Context, r model.Restaurant) (err error) {
	const op = "restaurants.update"
	defer observe(op, time.Now(), &err)

	if _, err := s.db.Querier().ExecContext(ctx, s.db.dialect.Rebind(updateRestaurantSQL), r.Name, r.Location, r.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete implements RestaurantStore.
func (s *Restaurants) Delete(ctx context.Context, id int64, cascade CascadeFunc) (cascaded int64, err error) {
	const op = "restaurants.delete"
	defer observe(op, time.Now(), &err)

	err = s.db.WithTx(ctx, func(q Querier) error {
		if _, err := s.get(ctx, q, id); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, s.db.dialect.Rebind(deleteRestaurantSQL), id); err != nil {
			return err
		}
		if cascade == nil {
			return nil
		}
		n, err := cascade(ctx, q, id)
		if err != nil {
			return fmt.Errorf("cascade: %w", err)
		}
		cascaded = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return cascaded, nil
}
