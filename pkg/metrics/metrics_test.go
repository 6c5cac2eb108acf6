package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithLatencyBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "unit")
				So(m.latencyBuckets, ShouldResemble, []float64{1, 10})
				So(m.constLabels["env"], ShouldEqual, "test")
				So(m.enabled, ShouldBeTrue)
			})

			Convey("Then metrics are registered under the namespace", func() {
				m.RecordPredictionError()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_prediction_errors_total"], ShouldBeTrue)
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(
				WithNamespace(""),
				WithLatencyBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "attrition")
				So(m.latencyBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording predictions", func() {
			m.RecordPrediction("HIGH", 0.61, 0.4)
			m.RecordPrediction("HIGH", 0.7, 0.2)
			m.RecordPrediction("LOW", 0.2, 0.1)

			Convey("Then counts are kept per risk level", func() {
				So(testutil.ToFloat64(m.predictions.WithLabelValues("HIGH")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.predictions.WithLabelValues("LOW")), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.riskScores), ShouldEqual, 1)
			})
		})

		Convey("When recording is disabled", func() {
			off := NewManager(
				WithPrometheusRegistry(prometheus.NewRegistry()),
				WithMetricsEnabled(false),
			)
			off.RecordPrediction("CRITICAL", 0.9, 1)
			off.RecordPredictionError()

			Convey("Then nothing is counted", func() {
				So(testutil.ToFloat64(off.predictions.WithLabelValues("CRITICAL")), ShouldEqual, 0)
				So(testutil.ToFloat64(off.predictionErrors), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When recording through package functions", func() {
			before := testutil.ToFloat64(globalManager.jobsSubmitted)
			RecordJobSubmitted()
			UpdateRiskThreshold(0.42)
			UpdateQueueCapacity(64)
			RecordHTTPRequest("/model", "GET", "200")
			RecordError("api", "not_found")

			Convey("Then the global manager reflects them", func() {
				So(testutil.ToFloat64(globalManager.jobsSubmitted), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.riskThreshold), ShouldEqual, 0.42)
				So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 64)
			})

			Convey("Then the registry can be gathered", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
