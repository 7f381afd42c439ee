package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithMetricPrefix("pfx"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(m.namespace, ShouldEqual, "test_ns")
				So(m.subsystem, ShouldEqual, "test_sub")
				So(m.RefreshInterval(), ShouldEqual, 5*time.Second)
				So(m.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})

			Convey("And metric names should carry namespace and prefix", func() {
				m.RecordHTTPRequest("weather", "GET", "200")
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_ns_test_sub_pfx_http_requests_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "endpoint")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty values are passed", func() {
			m := NewManager(
				WithNamespace(""),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "twweather")
				So(m.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording upstream calls", func() {
			m.RecordUpstreamRequest("taipei", "ok", 120)
			m.RecordUpstreamRequest("taipei", "ok", 80)
			m.RecordUpstreamRequest("tainan", "upstream_error", 30)

			Convey("Then the counters should reflect them", func() {
				So(testutil.ToFloat64(m.upstreamRequests.WithLabelValues("taipei", "ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.upstreamRequests.WithLabelValues("tainan", "upstream_error")), ShouldEqual, 1)
			})
		})

		Convey("When recording errors and rate limiting", func() {
			m.RecordErrorByKind("not_found")
			m.RecordErrorByEndpoint("weather", "GET", "server_error")
			m.RecordRateLimited()
			m.RecordRateLimited()

			Convey("Then they should be counted", func() {
				So(testutil.ToFloat64(m.errorsByKind.WithLabelValues("not_found")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorsByEndpoint.WithLabelValues("weather", "GET", "server_error")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.httpRateLimited), ShouldEqual, 2)
			})
		})

		Convey("When updating system gauges", func() {
			m.UpdateSystemMemoryUsage(2048)
			m.UpdateSystemGoroutineCount(12)

			Convey("Then the gauges should hold the values", func() {
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 2048)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12)
			})
		})

		Convey("When recording histograms", func() {
			So(func() {
				m.RecordForecastIntervals("taipei", 3)
				m.RecordHTTPRequestDuration("weather", "GET", "200", 12.5)
				m.RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("When recording", func() {
			m.RecordRateLimited()
			m.RecordErrorByKind("upstream")

			Convey("Then nothing should be counted", func() {
				So(testutil.ToFloat64(m.httpRateLimited), ShouldEqual, 0)
				So(testutil.ToFloat64(m.errorsByKind.WithLabelValues("upstream")), ShouldEqual, 0)
			})
		})
	})
}

func TestRegister(t *testing.T) {
	Convey("Given a manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When registering a collector twice", func() {
			first := m.Register(collectors.NewBuildInfoCollector())
			second := m.Register(collectors.NewBuildInfoCollector())

			Convey("Then the second call should fail with ErrRegister", func() {
				So(first, ShouldBeNil)
				So(second, ShouldNotBeNil)
				So(strings.Contains(second.Error(), ErrRegister.Error()), ShouldBeTrue)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(Default(), ShouldNotBeNil)
		So(GetRegistry(), ShouldNotBeNil)

		Convey("Then package helpers should not panic", func() {
			So(func() {
				RecordHTTPRequest("health", "GET", "200")
				RecordHTTPRequestDuration("health", "GET", "200", 1)
				RecordUpstreamRequest("taipei", "ok", 10)
				RecordForecastIntervals("taipei", 3)
				RecordErrorByKind("upstream")
				RecordErrorByEndpoint("weather", "GET", "server_error")
				RecordRateLimited()
				UpdateSystemMemoryUsage(1)
				UpdateSystemGoroutineCount(1)
				RecordSystemGCPauseTime(1)
			}, ShouldNotPanic)
		})
	})
}
