package metrics

import (
	"errors"
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

			Convey("Then it should use the gridiron namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "gridiron")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithFetchBuckets([]float64{100, 1000}),
				WithStageBuckets([]float64{1000, 60000}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the collectors should be registered under the custom names", func() {
				manager.gamesFetched.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				found := false
				for _, f := range families {
					if f.GetName() == "test_sub_games_fetched_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording pipeline counters", func() {
			before := testutil.ToFloat64(globalManager.playerMerges)
			RecordPlayerMerge()
			RecordPlayerMerge()

			Convey("Then the counter should advance", func() {
				So(testutil.ToFloat64(globalManager.playerMerges), ShouldEqual, before+2)
			})
		})

		Convey("When recording cache outcomes", func() {
			hits := testutil.ToFloat64(globalManager.cacheRequests.WithLabelValues("hit"))
			RecordCacheHit()
			RecordCacheMiss()
			RecordCacheError()

			Convey("Then the hit series should advance by one", func() {
				So(testutil.ToFloat64(globalManager.cacheRequests.WithLabelValues("hit")), ShouldEqual, hits+1)
			})
		})

		Convey("When setting gauges", func() {
			UpdatePlayersTotal(42)
			UpdateAggregatesTotal(7)
			UpdateQueueSize(3)
			UpdateWorkerCount(5)

			Convey("Then they should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.playersTotal), ShouldEqual, float64(42))
				So(testutil.ToFloat64(globalManager.aggregatesTotal), ShouldEqual, float64(7))
				So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, float64(3))
				So(testutil.ToFloat64(globalManager.workerCount), ShouldEqual, float64(5))
			})
		})

		Convey("When recording the remaining series", func() {
			So(func() {
				RecordGameFetched()
				RecordGameFailed("status")
				RecordGameDuplicate()
				RecordFetchLatency(12.5)
				RecordMergeWarning("team_not_in_game")
				RecordCorruptDocument()
				RecordRunCompleted(time.Now())
				RecordHTTPRequest("/api/home", "GET", "200")
				RecordHTTPRequestDuration("/api/home", "GET", "200", 1.2)
			}, ShouldNotPanic)
		})
	})
}

func TestRecordStageDuration(t *testing.T) {
	Convey("Given stage timings", t, func() {
		Convey("When the stage is known", func() {
			So(RecordStageDuration(StageMerge, 15*time.Millisecond), ShouldBeNil)
		})

		Convey("When the stage is unknown", func() {
			err := RecordStageDuration("bogus", time.Millisecond)
			So(errors.Is(err, ErrUnknownStage), ShouldBeTrue)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordGameFetched()
		families, err := GetRegistry().Gather()
		So(err, ShouldBeNil)

		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		So(strings.Join(names, ","), ShouldContainSubstring, "gridiron_pipeline_games_fetched_total")
	})
}
