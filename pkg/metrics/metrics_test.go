package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a private registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			m.transitions.WithLabelValues("undo", "applied").Inc()

			Convey("Then metrics carry the namespace and labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_transitions_total"], ShouldBeTrue)
				So(testutil.ToFloat64(m.transitions.WithLabelValues("undo", "applied")), ShouldEqual, 1)
			})
		})

		Convey("Registering twice on the same registry panics", func() {
			NewManager(WithPrometheusRegistry(registry))
			So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Engine counters increase", func() {
			before := testutil.ToFloat64(globalManager.transitions.WithLabelValues("place_on_court", "rejected"))
			RecordTransition("place_on_court", "rejected")
			So(testutil.ToFloat64(globalManager.transitions.WithLabelValues("place_on_court", "rejected")), ShouldEqual, before+1)

			RecordPointCommitted("volleyball", "scored")
			RecordPlacementRejected("volleyball", "attack")
			RecordUndo()
			RecordAttributionPrompt()
			RecordDuplicateCommand()
			So(testutil.ToFloat64(globalManager.pointsCommitted.WithLabelValues("volleyball", "scored")), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("Gauges take the latest value", func() {
			UpdateActiveMatches(3)
			UpdateSaveQueueSize(7)
			UpdateLiveSubscribers(2)
			So(testutil.ToFloat64(globalManager.activeMatches), ShouldEqual, 3)
			So(testutil.ToFloat64(globalManager.saveQueueSize), ShouldEqual, 7)
			So(testutil.ToFloat64(globalManager.liveSubscribers), ShouldEqual, 2)
		})

		Convey("Saves count successes and failures", func() {
			saves := testutil.ToFloat64(globalManager.saves)
			RecordSave(4.2)
			RecordSaveError()
			RecordSaveDropped()
			So(testutil.ToFloat64(globalManager.saves), ShouldEqual, saves+1)
		})

		Convey("HTTP metrics are gathered from the custom registry", func() {
			RecordHTTPRequest("/matches", "GET", "200")
			RecordHTTPRequestDuration("/matches", "GET", "200", 1.5)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
