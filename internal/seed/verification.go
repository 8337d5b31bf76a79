package seed

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/okian/restaurants/pkg/logger"
)

// priceTolerance absorbs rounding by NUMERIC(10,2) columns.
const priceTolerance = 0.005

// verifyRestaurant reads a created restaurant and its menu back and counts
// every difference from what was written.
func verifyRestaurant(ctx context.Context, cfg *Config, client *httpClient, plan *restaurantPlan, c *counters) {
	if plan.restaurant.ID == 0 {
		return
	}
	log := logger.Get().Named("seed")
	path := "/restaurants/" + strconv.FormatInt(plan.restaurant.ID, 10)

	var got Restaurant
	if _, err := client.do(ctx, http.MethodGet, path, nil, &got, http.StatusOK); err != nil {
		c.failed.Add(1)
		log.Warn(ctx, "get restaurant failed", logger.Error(err))
		return
	}
	var menu []MenuItem
	if _, err := client.do(ctx, http.MethodGet, menuPath(plan.restaurant.ID), nil, &menu, http.StatusOK); err != nil {
		c.failed.Add(1)
		log.Warn(ctx, "list menu failed", logger.Error(err))
		return
	}
	c.restaurantsChecked.Add(1)

	problems := compareRestaurant(plan.restaurant, got)
	problems = append(problems, compareMenu(createdItems(plan.items), menu)...)
	if len(problems) > 0 {
		c.mismatches.Add(int64(len(problems)))
		for _, p := range problems {
			log.Warn(ctx, "mismatch", logger.Int64("restaurant", plan.restaurant.ID), logger.String("problem", p))
		}
		return
	}

	if cfg.Verbose {
		log.Info(ctx, "restaurant verified", logger.Int64("id", got.ID), logger.Int("items", len(menu)))
	}
}

// createdItems drops the items whose create request failed.
func createdItems(items []MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if it.ID != 0 {
			out = append(out, it)
		}
	}
	return out
}

func compareRestaurant(want, got Restaurant) []string {
	var problems []string
	if got.ID != want.ID {
		problems = append(problems, fmt.Sprintf("id %d, want %d", got.ID, want.ID))
	}
	if got.Name != want.Name {
		problems = append(problems, fmt.Sprintf("name %q, want %q", got.Name, want.Name))
	}
	if got.Location != want.Location {
		problems = append(problems, fmt.Sprintf("location %q, want %q", got.Location, want.Location))
	}
	if got.CreatedAt.IsZero() {
		problems = append(problems, "created_at missing")
	}
	return problems
}

// compareMenu matches items by id. The listing must hold exactly the
// created items.
func compareMenu(want, got []MenuItem) []string {
	var problems []string
	if len(got) != len(want) {
		problems = append(problems, fmt.Sprintf("menu has %d items, want %d", len(got), len(want)))
	}

	byID := make(map[int64]MenuItem, len(got))
	for _, it := range got {
		byID[it.ID] = it
	}
	for _, w := range want {
		g, ok := byID[w.ID]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("menu item %d missing", w.ID))
		case g.RestaurantID != w.RestaurantID:
			problems = append(problems, fmt.Sprintf("menu item %d belongs to %d, want %d", w.ID, g.RestaurantID, w.RestaurantID))
		case g.Name != w.Name || g.Description != w.Description:
			problems = append(problems, fmt.Sprintf("menu item %d is %q/%q, want %q/%q", w.ID, g.Name, g.Description, w.Name, w.Description))
		case math.Abs(g.Price-w.Price) > priceTolerance:
			problems = append(problems, fmt.Sprintf("menu item %d costs %.2f, want %.2f", w.ID, g.Price, w.Price))
		}
	}
	return problems
}
