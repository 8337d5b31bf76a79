package seed

import (
	"fmt"
	"os"

	"github.com/okian/restaurants/pkg/logger"
)

// SetupLogging initializes the logger in the requested format at the given
// level.
func SetupLogging(format string, verbose bool) error {
	if err := logger.InitWithFormat(os.Stdout, format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Restaurant API Seed Tool
========================

Creates restaurants with menu items through the HTTP API, reads them back
and optionally deletes them to check that menu items are removed with their
restaurant.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -restaurants int
        Number of restaurants to create (default 20)
  -items int
        Menu items per restaurant (default 5)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -cleanup
        Delete the created restaurants and check the cascade (default true)
  -log-format string
        Log format: text or json (default "text")
  -verbose
        Log every restaurant
  -help
        Show this help message

Examples:
  # Seed a local server and clean up afterwards
  go run ./cmd/seed

  # Leave 100 restaurants with 10 items each in place
  go run ./cmd/seed -restaurants 100 -items 10 -cleanup=false
`)
}
