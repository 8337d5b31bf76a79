package api

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/okian/restaurants/pkg/logger"
)

// Dispatcher routes every request under /restaurants to the resource
// handlers and writes the single response of the request.
type Dispatcher struct {
	restaurants *RestaurantHandler
	menu        *MenuHandler
	logger      logger.Logger
}

// NewDispatcher creates a dispatcher over the two resource handlers.
func NewDispatcher(restaurants *RestaurantHandler, menu *MenuHandler) *Dispatcher {
	return &Dispatcher{
		restaurants: restaurants,
		menu:        menu,
		logger:      logger.Get().Named("dispatcher"),
	}
}

// ServeHTTP implements http.Handler. Storage errors and panics are turned
// into a 500 here and nowhere else.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := d.serve(r)
	if err != nil {
		d.logger.Error(r.Context(), "request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		res = serverError(err)
	}
	writeResponse(w, res)
}

func (d *Dispatcher) serve(r *http.Request) (res result, err error) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error(r.Context(), "panic in handler", logger.String("stack", string(debug.Stack())))
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()
	return d.dispatch(r)
}

func (d *Dispatcher) dispatch(r *http.Request) (result, error) {
	if r.Method == http.MethodOptions {
		return respond(http.StatusOK, nil), nil
	}

	rt, err := parseRoute(r.Method, r.URL)
	if err != nil {
		return fail(err), nil
	}

	ctx := r.Context()
	switch {
	case !rt.hasID:
		switch rt.method {
		case http.MethodGet:
			return d.restaurants.List(ctx)
		case http.MethodPost:
			return d.restaurants.Create(ctx, r.Body)
		default:
			return fail(errRestaurantIDRequired), nil
		}

	case !rt.menu:
		switch rt.method {
		case http.MethodGet:
			return d.restaurants.Get(ctx, rt.restaurantID)
		case http.MethodPut:
			return d.restaurants.Update(ctx, rt.restaurantID, r.Body)
		case http.MethodDelete:
			return d.restaurants.Delete(ctx, rt.restaurantID, d.menu.DeleteAllByRestaurantID)
		default:
			return fail(errInvalidEndpoint), nil
		}

	case rt.method == http.MethodPost:
		// Creates ignore any item id in the query.
		return d.menu.Create(ctx, rt.restaurantID, r.Body)

	case !rt.hasItemID:
		switch rt.method {
		case http.MethodGet:
			return d.menu.List(ctx, rt.restaurantID)
		default:
			return fail(errMenuItemIDRequired), nil
		}

	default:
		switch rt.method {
		case http.MethodGet:
			return d.menu.Get(ctx, rt.restaurantID, rt.itemID)
		case http.MethodPut:
			return d.menu.Update(ctx, rt.restaurantID, rt.itemID, r.Body)
		default:
			return d.menu.Delete(ctx, rt.restaurantID, rt.itemID)
		}
	}
}
