package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/restaurants/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RESTO_ADDR", ":9090")
			_ = os.Setenv("RESTO_DB_DRIVER", "postgres")
			_ = os.Setenv("RESTO_DB_DSN", "postgres://u:p@localhost/restaurant_api?sslmode=disable")
			_ = os.Setenv("RESTO_DB_MAX_OPEN_CONNS", "4")
			_ = os.Setenv("RESTO_MIGRATE", "false")
			_ = os.Setenv("RESTO_METRICS_NAMESPACE", "kitchen")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "postgres")
				convey.So(cfg.DBDSN, convey.ShouldContainSubstring, "restaurant_api")
				convey.So(cfg.DBMaxOpenConns, convey.ShouldEqual, 4)
				convey.So(cfg.Migrate, convey.ShouldBeFalse)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "kitchen")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempFile(t, "config.yaml", `
addr: ":7070"
log_level: debug
db_dsn: "file:test.db"
cors_allowed_origins: "https://menu.example"
`)
			_ = os.Setenv("RESTO_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DBDSN, convey.ShouldEqual, "file:test.db")
				convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"https://menu.example"})
				convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite") // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempFile(t, "config.yaml", `
addr: ":7070"
log_level: debug
`)
			_ = os.Setenv("RESTO_CONFIG", tmpFile)
			_ = os.Setenv("RESTO_ADDR", ":6060")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")    // Overridden by env
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug") // From file
			})
		})

		convey.Convey("When loading config with a .env file", func() {
			envPath := createTempFile(t, "test.env", "RESTO_DB_DSN=from-dotenv.db\nRESTO_LOG_FORMAT=json\n")
			_ = os.Setenv("RESTO_ENV_FILE", envPath)
			_ = os.Setenv("RESTO_LOG_FORMAT", "text")

			cfg, err := config.Load(ctx)

			convey.Convey("Then dotenv values feed the env layer without overriding the process env", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBDSN, convey.ShouldEqual, "from-dotenv.db")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			})
		})

		convey.Convey("When the .env file does not exist", func() {
			_ = os.Setenv("RESTO_ENV_FILE", "/non/existent/.env")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile(t, "bad.yaml", `invalid: yaml: content: [`)
			_ = os.Setenv("RESTO_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("RESTO_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("RESTO_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unsupported driver", func() {
			_ = os.Setenv("RESTO_DB_DRIVER", "mysql")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "mysql")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("RESTO_DB_MAX_OPEN_CONNS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RESTO_CONFIG",
		"RESTO_ENV_FILE",
		"RESTO_ADDR",
		"RESTO_LOG_LEVEL",
		"RESTO_LOG_FORMAT",
		"RESTO_DB_DRIVER",
		"RESTO_DB_DSN",
		"RESTO_DB_MAX_OPEN_CONNS",
		"RESTO_MIGRATE",
		"RESTO_METRICS_NAMESPACE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
