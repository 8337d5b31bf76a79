package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/okian/restaurants/internal/adapters/repository"
	"github.com/okian/restaurants/internal/domain/model"
	"github.com/okian/restaurants/pkg/metrics"
)

// RestaurantHandler implements the operations on /restaurants and
// /restaurants/{id}.
type RestaurantHandler struct {
	store repository.RestaurantStore
}

// NewRestaurantHandler creates a restaurant handler on store.
func NewRestaurantHandler(store repository.RestaurantStore) *RestaurantHandler {
	return &RestaurantHandler{store: store}
}

// List handles GET /restaurants.
func (h *RestaurantHandler) List(ctx context.Context) (result, error) {
	const op = "api.list_restaurants"
	list, err := h.store.List(ctx)
	if err != nil {
		return result{}, Wrap(op, err)
	}
	return respond(http.StatusOK, list), nil
}

// Get handles GET /restaurants/{id}.
func (h *RestaurantHandler) Get(ctx context.Context, id int64) (result, error) {
	const op = "api.get_restaurant"
	r, err := h.store.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(WrapKind(op, errRestaurantNotFound, err)), nil
	}
	if err != nil {
		return result{}, Wrap(op, err)
	}
	return respond(http.StatusOK, r), nil
}

// Create handles POST /restaurants.
func (h *RestaurantHandler) Create(ctx context.Context, body io.Reader) (result, error) {
	const op = "api.create_restaurant"
	var in model.RestaurantInput
	if err := decodeInput(op, body, &in); err != nil {
		return fail(err), nil
	}
	if err := in.CheckCreate(); err != nil {
		return fail(inputError(op, err)), nil
	}

	r, err := h.store.Create(ctx, in.Name.Value, in.Location.Value)
	if err != nil {
		return result{}, Wrap(op, err)
	}
	metrics.RecordRestaurantCreated()
	return respond(http.StatusCreated, r), nil
}

// Update handles PUT /restaurants/{id}. Absent fields keep their stored
// values; the merged row is returned.
func (h *RestaurantHandler) Update(ctx context.Context, id int64, body io.Reader) (result, error) {
	const op = "api.update_restaurant"
	current, err := h.store.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(WrapKind(op, errRestaurantNotFound, err)), nil
	}
	if err != nil {
		return result{}, Wrap(op, err)
	}

	var in model.RestaurantInput
	if err := decodeInput(op, body, &in); err != nil {
		return fail(err), nil
	}
	if err := in.Validate(); err != nil {
		return fail(inputError(op, err)), nil
	}

	merged := in.Merge(current)
	if err := h.store.Update(ctx, merged); err != nil {
		return result{}, Wrap(op, err)
	}
	return respond(http.StatusOK, merged), nil
}

// Delete handles DELETE /restaurants/{id}. cascade removes the menu items
// of the restaurant in the same transaction as the restaurant row.
func (h *RestaurantHandler) Delete(ctx context.Context, id int64, cascade repository.CascadeFunc) (result, error) {
	const op = "api.delete_restaurant"
	n, err := h.store.Delete(ctx, id, cascade)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(WrapKind(op, errRestaurantNotFound, err)), nil
	}
	if err != nil {
		return result{}, Wrap(op, err)
	}
	metrics.RecordRestaurantDeleted(n)
	return noContent(), nil
}
