package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/restaurants/internal/seed"
)

// Default configuration constants.
const (
	defaultRestaurants = 20
	defaultItems       = 5
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8080", "Base URL of the service")
		restaurants = flag.Int("restaurants", defaultRestaurants, "Number of restaurants to create")
		items       = flag.Int("items", defaultItems, "Menu items per restaurant")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		cleanup     = flag.Bool("cleanup", true, "Delete the created restaurants and check the cascade")
		logFormat   = flag.String("log-format", "text", "Log format: text or json")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := seed.SetupLogging(*logFormat, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:            *baseURL,
		Restaurants:        *restaurants,
		ItemsPerRestaurant: *items,
		Workers:            *workers,
		Timeout:            *timeout,
		Cleanup:            *cleanup,
		Verbose:            *verbose,
	}

	if _, err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
