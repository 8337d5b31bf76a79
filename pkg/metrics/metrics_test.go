package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))
			manager.RecordError("validation")

			Convey("Then its collectors are registered there", func() {
				So(manager, ShouldNotBeNil)
				n, err := testutil.GatherAndCount(registry, "resto_api_errors_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When creating with custom naming options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithMetricPrefix("pfx"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordHTTPRequest("restaurants", "GET", "200", 3)

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_ns_test_sub_pfx_http_requests_total")
				So(strings.Join(names, ","), ShouldContainSubstring, "pfx_http_request_duration_milliseconds")

				for _, f := range families {
					if f.GetName() == "test_ns_test_sub_pfx_http_requests_total" {
						var env string
						for _, l := range f.GetMetric()[0].GetLabel() {
							if l.GetName() == "env" {
								env = l.GetValue()
							}
						}
						So(env, ShouldEqual, "test")
					}
				}
			})
		})

		Convey("When metrics are disabled", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(registry))

			Convey("Then recording works but nothing is exported", func() {
				So(func() { manager.RecordError("storage") }, ShouldNotPanic)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldBeEmpty)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording storage statements", func() {
			manager.RecordStorageQuery("restaurants.get", 2.5, nil)
			manager.RecordStorageQuery("restaurants.get", 1.0, nil)
			manager.RecordStorageQuery("restaurants.get", 9.0, errors.New("boom"))

			Convey("Then outcomes are split", func() {
				So(testutil.ToFloat64(manager.storageQueries.WithLabelValues("restaurants.get", "ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.storageQueries.WithLabelValues("restaurants.get", "error")), ShouldEqual, 1)
			})
		})

		Convey("When updating connection gauges", func() {
			manager.UpdateDBConnections(3, 1, 2)

			Convey("Then the gauges reflect the pool", func() {
				So(testutil.ToFloat64(manager.dbOpenConnections), ShouldEqual, 3)
				So(testutil.ToFloat64(manager.dbInUseConnections), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.dbIdleConnections), ShouldEqual, 2)
			})
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording domain events", func() {
			before := testutil.ToFloat64(globalManager.menuItemsCascadeGone)
			RecordRestaurantCreated()
			RecordMenuItemCreated()
			RecordRestaurantDeleted(4)
			RecordRestaurantDeleted(0)

			Convey("Then cascade counts accumulate", func() {
				So(testutil.ToFloat64(globalManager.menuItemsCascadeGone)-before, ShouldEqual, 4)
			})
		})

		Convey("When recording system and HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("restaurants", "POST", "201", 12)
				RecordError("not_found")
				RecordStorageQuery("menu_items.list", 1, nil)
				UpdateDBConnections(1, 0, 1)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)

			Convey("Then the custom registry exposes them", func() {
				n, err := testutil.GatherAndCount(GetRegistry(), "resto_api_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given the global manager configured with a namespace", t, func() {
		Configure(WithNamespace("kitchen"))
		Reset(func() { Configure() })

		Convey("When recording a request", func() {
			RecordHTTPRequest("restaurants", "GET", "200", 3)

			Convey("Then the registry exposes it under that namespace only", func() {
				n, err := testutil.GatherAndCount(GetRegistry(), "kitchen_api_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)

				n, err = testutil.GatherAndCount(GetRegistry(), "resto_api_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})
	})
}
