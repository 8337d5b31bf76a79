package seed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/restaurants/pkg/logger"
)

const workerChannelMultiplier = 2

// counters are shared by the workers of one run.
type counters struct {
	restaurantsCreated atomic.Int64
	menuItemsCreated   atomic.Int64
	restaurantsChecked atomic.Int64
	mismatches         atomic.Int64
	restaurantsDeleted atomic.Int64
	orphans            atomic.Int64
	failed             atomic.Int64
}

// Run executes a complete seed run and returns its statistics. It fails
// with ErrVerification when any request failed or anything read back did
// not match what was written.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("seed")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("restaurants", cfg.Restaurants),
		logger.Int("itemsPerRestaurant", cfg.ItemsPerRestaurant),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
		logger.Bool("cleanup", cfg.Cleanup))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return nil, err
	}

	// Step 2: Create restaurants and their menus concurrently
	plans := generatePlans(cfg)
	var c counters
	forEach(ctx, cfg.Workers, len(plans), func(i int) {
		createRestaurant(ctx, cfg, client, &plans[i], &c)
	})

	// Step 3: Read everything back
	forEach(ctx, cfg.Workers, len(plans), func(i int) {
		verifyRestaurant(ctx, cfg, client, &plans[i], &c)
	})

	// Step 4: Delete and check the cascade
	if cfg.Cleanup {
		forEach(ctx, cfg.Workers, len(plans), func(i int) {
			deleteRestaurant(ctx, cfg, client, &plans[i], &c)
		})
	}

	stats.RestaurantsCreated = int(c.restaurantsCreated.Load())
	stats.MenuItemsCreated = int(c.menuItemsCreated.Load())
	stats.RestaurantsChecked = int(c.restaurantsChecked.Load())
	stats.Mismatches = int(c.mismatches.Load())
	stats.RestaurantsDeleted = int(c.restaurantsDeleted.Load())
	stats.OrphanedMenuItems = int(c.orphans.Load())
	stats.RequestsFailed = int(c.failed.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.RequestsFailed > 0 || stats.Mismatches > 0 || stats.OrphanedMenuItems > 0 {
		return stats, fmt.Errorf("%w: %d failed requests, %d mismatches, %d orphaned menu items",
			ErrVerification, stats.RequestsFailed, stats.Mismatches, stats.OrphanedMenuItems)
	}

	log.Info(ctx, "seed run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service and its database are up.
func checkServiceHealth(ctx context.Context, client *httpClient) error {
	var body struct {
		Status string `json:"status"`
	}
	if _, err := client.do(ctx, http.MethodGet, "/healthz", nil, &body, http.StatusOK); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	logger.Get().Info(ctx, "service is healthy", logger.String("status", body.Status))
	return nil
}

// forEach calls fn for every index below n on a pool of workers.
func forEach(ctx context.Context, workers, n int, fn func(i int)) {
	if workers < 1 {
		workers = 1
	}
	indexes := make(chan int, workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					continue
				}
				fn(i)
			}
		}()
	}

	go func() {
		defer close(indexes)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case indexes <- i:
			}
		}
	}()

	wg.Wait()
}

func createRestaurant(ctx context.Context, cfg *Config, client *httpClient, plan *restaurantPlan, c *counters) {
	log := logger.Get().Named("seed")

	var created Restaurant
	in := map[string]string{"name": plan.restaurant.Name, "location": plan.restaurant.Location}
	if _, err := client.do(ctx, http.MethodPost, "/restaurants", in, &created, http.StatusCreated); err != nil {
		c.failed.Add(1)
		log.Warn(ctx, "create restaurant failed", logger.Error(err))
		return
	}
	plan.restaurant = created
	c.restaurantsCreated.Add(1)

	path := menuPath(created.ID)
	for j, item := range plan.items {
		var stored MenuItem
		in := map[string]any{"name": item.Name, "description": item.Description, "price": item.Price}
		if _, err := client.do(ctx, http.MethodPost, path, in, &stored, http.StatusCreated); err != nil {
			c.failed.Add(1)
			log.Warn(ctx, "create menu item failed", logger.Int64("restaurant", created.ID), logger.Error(err))
			continue
		}
		plan.items[j] = stored
		c.menuItemsCreated.Add(1)
	}

	if cfg.Verbose {
		log.Info(ctx, "restaurant created", logger.Int64("id", created.ID), logger.Int("items", len(plan.items)))
	}
}

func deleteRestaurant(ctx context.Context, cfg *Config, client *httpClient, plan *restaurantPlan, c *counters) {
	if plan.restaurant.ID == 0 {
		return
	}
	log := logger.Get().Named("seed")

	path := "/restaurants/" + strconv.FormatInt(plan.restaurant.ID, 10)
	if _, err := client.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent); err != nil {
		c.failed.Add(1)
		log.Warn(ctx, "delete restaurant failed", logger.Error(err))
		return
	}
	c.restaurantsDeleted.Add(1)

	var left []MenuItem
	if _, err := client.do(ctx, http.MethodGet, menuPath(plan.restaurant.ID), nil, &left, http.StatusOK); err != nil {
		c.failed.Add(1)
		log.Warn(ctx, "list menu after delete failed", logger.Error(err))
		return
	}
	if len(left) > 0 {
		c.orphans.Add(int64(len(left)))
		log.Warn(ctx, "menu items survived restaurant delete",
			logger.Int64("restaurant", plan.restaurant.ID), logger.Int("items", len(left)))
	}

	if cfg.Verbose {
		log.Info(ctx, "restaurant deleted", logger.Int64("id", plan.restaurant.ID))
	}
}

func menuPath(restaurantID int64) string {
	return "/restaurants/" + strconv.FormatInt(restaurantID, 10) + "/menu"
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var requestsPerSecond float64
	requests := stats.RestaurantsCreated + stats.MenuItemsCreated + 2*stats.RestaurantsChecked + 2*stats.RestaurantsDeleted
	if stats.Duration > 0 {
		requestsPerSecond = float64(requests) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("restaurantsCreated", stats.RestaurantsCreated),
		logger.Int("menuItemsCreated", stats.MenuItemsCreated),
		logger.Int("restaurantsChecked", stats.RestaurantsChecked),
		logger.Int("mismatches", stats.Mismatches),
		logger.Int("restaurantsDeleted", stats.RestaurantsDeleted),
		logger.Int("orphanedMenuItems", stats.OrphanedMenuItems),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
