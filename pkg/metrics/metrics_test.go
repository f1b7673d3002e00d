package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPriceBuckets([]float64{1e8, 2e8}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.ObserveProfitRecalculation()

			Convey("Then metric names and labels follow the options", func() {
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, mf := range families {
					if mf.GetName() == "test_namespace_test_subsystem_test_prefix_profit_recalculations_total" {
						found = true
						So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When appraisals are observed", func() {
			m.ObserveAppraisal("rated", 180_000_000, true, nil, 2*time.Millisecond)
			m.ObserveAppraisal("rated", 153_000_000, false, []string{"Engine overhaul", "Body & paint repair"}, time.Millisecond)
			m.ObserveAppraisal("mileage", 176_000_000, false, nil, time.Millisecond)

			Convey("Then counters reflect each dimension", func() {
				So(testutil.ToFloat64(m.appraisals.WithLabelValues("rated")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.appraisals.WithLabelValues("mileage")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.purchaseWorthy), ShouldEqual, 1)
				So(testutil.ToFloat64(m.repairItems.WithLabelValues("Engine overhaul")), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.marketPrice), ShouldEqual, 2)
			})
		})

		Convey("When HTTP requests and errors are observed", func() {
			m.ObserveHTTPRequest("/appraisals", "POST", 200, 1.5)
			m.ObserveHTTPRequest("/appraisals", "POST", 400, 0.5)
			m.ObserveErrorByEndpoint("/appraisals", "POST", "validation")
			m.ObserveErrorByComponent("api", "decode")
			m.ObserveValidationFailure("missing_field")

			Convey("Then status codes are separate series", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/appraisals", "POST", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/appraisals", "POST", "400")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("/appraisals", "POST", "validation")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByComponent.WithLabelValues("api", "decode")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.validationFailures.WithLabelValues("missing_field")), ShouldEqual, 1)
			})
		})

		Convey("When system stats are set", func() {
			m.SetSystemStats(1024, 12)
			m.ObserveGCPause(0.3)

			Convey("Then the gauges hold the latest values", func() {
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
		m.ObserveAppraisal("rated", 1, true, []string{"x"}, time.Millisecond)
		m.ObserveProfitRecalculation()

		Convey("Then nothing is recorded", func() {
			So(testutil.ToFloat64(m.purchaseWorthy), ShouldEqual, 0)
			So(testutil.ToFloat64(m.profitRecalculations), ShouldEqual, 0)
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(Default(), ShouldNotBeNil)

		So(func() {
			RecordAppraisal("rated", 180_000_000, true, []string{"Engine overhaul"}, time.Millisecond)
			RecordProfitRecalculation()
			RecordValidationFailure("invalid_number")
			RecordHTTPRequest("/presets", "GET", 200, 0.2)
			RecordErrorByEndpoint("/presets", "GET", "internal")
			RecordErrorByComponent("api", "encode")
			UpdateSystemStats(2048, 5)
			RecordSystemGCPauseTime(1.2)
		}, ShouldNotPanic)

		Convey("Then the custom registry exposes the series", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			var names []string
			for _, mf := range families {
				names = append(names, mf.GetName())
			}
			joined := strings.Join(names, ",")
			So(joined, ShouldContainSubstring, "appraisal_service_appraisals_total")
			So(joined, ShouldContainSubstring, "appraisal_service_http_requests_total")
			So(joined, ShouldContainSubstring, "appraisal_service_system_goroutine_count")
		})
	})
}
