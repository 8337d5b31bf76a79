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

// MenuHandler implements the operations on /restaurants/{id}/menu.
// The owning restaurant is never looked up; items are only scoped by it.
type MenuHandler struct {
	store repository.MenuItemStore
}

// NewMenuHandler creates a menu handler on store.
func NewMenuHandler(store repository.MenuItemStore) *MenuHandler {
	return &MenuHandler{store: store}
}

// List handles GET /restaurants/{id}/menu.
func (h *MenuHandler) List(ctx context.Context, restaurantID int64) (result, error) {
	const op = "api.list_menu_items"
	items, err := h.store.List(ctx, restaurantID)
	if err != nil {
		return result{}, Wrap(op, err)
	}
	return respond(http.StatusOK, items), nil
}

// Get handles GET /restaurants/{id}/menu?id={itemID}.
func (h *MenuHandler) Get(ctx context.Context, restaurantID, itemID int64) (result, error) {
	const op = "api.get_menu_item"
	item, err := h.store.Get(ctx, restaurantID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(WrapKind(op, errMenuItemNotFound, err)), nil
	}
	if err != nil {
		return result{}, Wrap(op, err)
	}
	return respond(http.StatusOK, item), nil
}

// Create handles POST /restaurants/{id}/menu.
func (h *MenuHandler) Create(ctx context.Context, restaurantID int64, body io.Reader) (result, error) {
	const op = "api.create_menu_item"
	var in model.MenuItemInput
	if err := decodeInput(op, body, &in); err != nil {
		return fail(err), nil
	}
	if err := in.CheckCreate(); err != nil {
		return fail(inputError(op, err)), nil
	}

	item, err := h.store.Create(ctx, model.MenuItem{
		RestaurantID: restaurantID,
		Name:         in.Name.Value,
		Description:  in.Description.Value,
		Price:        in.Price.Value,
	})
	if err != nil {
		return result{}, Wrap(op, err)
	}
	metrics.RecordMenuItemCreated()
	return respond(http.StatusCreated, item), nil
}

// Update handles PUT /restaurants/{id}/menu?id={itemID}.
func (h *MenuHandler) Update(ctx context.Context, restaurantID, itemID int64, body io.Reader) (result, error) {
	const op = "api.update_menu_item"
	current, err := h.store.Get(ctx, restaurantID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(WrapKind(op, errMenuItemNotFound, err)), nil
	}
	if err != nil {
		return result{}, Wrap(op, err)
	}

	var in model.MenuItemInput
	if err := decodeInput(op, body, &in); err != nil {
		return fail(err), nil
	}
	if err := in.Validate(); err != nil {
		return fail(inputError(op, err)), nil
	}

	stored, err := h.store.Update(ctx, in.Merge(current))
	if err != nil {
		return result{}, Wrap(op, err)
	}
	return respond(http.StatusOK, stored), nil
}

// Delete handles DELETE /restaurants/{id}/menu?id={itemID}.
func (h *MenuHandler) Delete(ctx context.Context, restaurantID, itemID int64) (result, error) {
	const op = "api.delete_menu_item"
	err := h.store.Delete(ctx, restaurantID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(WrapKind(op, errMenuItemNotFound, err)), nil
	}
	if err != nil {
		return result{}, Wrap(op, err)
	}
	return noContent(), nil
}

// DeleteAllByRestaurantID removes every item of a restaurant on q. It is the
// cascade used when the restaurant itself is deleted.
func (h *MenuHandler) DeleteAllByRestaurantID(ctx context.Context, q repository.Querier, restaurantID int64) (int64, error) {
	n, err := h.store.DeleteAllByRestaurantID(ctx, q, restaurantID)
	return n, Wrap("api.delete_menu_by_restaurant", err)
}
