package config_test

import (
	"testing"
	"time"

	"github.com/okian/restaurants/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")
			convey.So(cfg.DBDSN, convey.ShouldEqual, "restaurants.db")
			convey.So(cfg.Migrate, convey.ShouldBeTrue)
			convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"*"})
			convey.So(cfg.ShutdownTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.ConnMaxLifetime(), convey.ShouldEqual, time.Duration(0))
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "resto")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a comma separated origin list", t, func() {
		cfg := config.New()
		cfg.CORSAllowedOrigins = " https://a.example , ,https://b.example"

		convey.Convey("Then blanks are dropped", func() {
			convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
		})
	})
}
