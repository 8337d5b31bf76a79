package seed

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	priceCents    = 5000 // prices range from 1.00 to 50.99
	minPriceCents = 100
)

var (
	locations = []string{"Main St", "Harbor Rd", "Market Sq", "Old Town", "Station Ave"}
	dishes    = []string{"Spaghetti", "Risotto", "Ramen", "Tacos", "Falafel", "Pho", "Curry", "Pierogi"}
)

// restaurantPlan is one restaurant and the menu it should end up with.
type restaurantPlan struct {
	restaurant Restaurant
	items      []MenuItem
}

// randomIndex returns a random index below n using crypto/rand.
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func randomPrice() float64 {
	return float64(minPriceCents+randomIndex(priceCents)) / 100
}

// generatePlans builds the restaurants of a run. Names carry a uuid so
// repeated runs against the same database never collide.
func generatePlans(cfg *Config) []restaurantPlan {
	plans := make([]restaurantPlan, cfg.Restaurants)
	for i := range plans {
		plans[i].restaurant = Restaurant{
			Name:     "seed-" + uuid.NewString(),
			Location: locations[randomIndex(len(locations))],
		}
		plans[i].items = make([]MenuItem, cfg.ItemsPerRestaurant)
		for j := range plans[i].items {
			dish := dishes[randomIndex(len(dishes))]
			plans[i].items[j] = MenuItem{
				Name:        dish,
				Description: "House " + dish,
				Price:       randomPrice(),
			}
		}
	}
	return plans
}
