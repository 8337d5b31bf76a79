package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	collectionSegment = "restaurants"
	menuSegment       = "menu"
)

// route is a parsed request against the restaurants resource tree.
type route struct {
	method       string
	restaurantID int64
	hasID        bool
	menu         bool
	itemID       int64
	hasItemID    bool
}

// parseRoute maps method, path and query to a route. Structural problems
// are reported before unsupported methods, and those before malformed ids.
func parseRoute(method string, u *url.URL) (route, error) {
	const op = "api.parse_route"

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 || segments[0] != collectionSegment || len(segments) > 3 {
		return route{}, WrapKind(op, errEndpointNotFound, nil)
	}
	if len(segments) == 3 && segments[2] != menuSegment {
		return route{}, WrapKind(op, errEndpointNotFound, nil)
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return route{}, WrapKind(op, errMethodNotAllowed, nil)
	}

	rt := route{method: method}
	if len(segments) >= 2 {
		id, err := strconv.ParseInt(segments[1], 10, 64)
		if err != nil {
			return route{}, WrapKind(op, errInvalidRestaurantID, err)
		}
		rt.restaurantID, rt.hasID = id, true
	}
	if len(segments) == 3 {
		rt.menu = true
		if q := u.Query(); q.Has("id") {
			id, err := strconv.ParseInt(q.Get("id"), 10, 64)
			if err != nil {
				return route{}, WrapKind(op, errInvalidMenuItemID, err)
			}
			rt.itemID, rt.hasItemID = id, true
		}
	}
	return rt, nil
}
