package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When metrics are disabled", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithMetricsEnabled(false),
				WithPrometheusRegistry(registry),
			)

			Convey("Then nothing is registered", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldBeEmpty)
			})
		})
	})
}

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then its registry serves the registered collectors", func() {
			RecordSubmissionAccepted()
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["podium_picks_submissions_accepted_total"], ShouldBeTrue)
			So(names["podium_picks_queue_size"], ShouldBeTrue)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording submission metrics", func() {
			Convey("Then counters accept increments", func() {
				So(func() {
					RecordSubmissionAccepted()
					RecordSubmissionDuplicate()
					RecordPickApplied()
					RecordPickRejected()
				}, ShouldNotPanic)
			})

			Convey("And leaderboard builds record duration", func() {
				So(func() {
					RecordLeaderboardBuild(0.8)
					RecordLeaderboardBuild(12.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording feed metrics", func() {
			So(func() {
				RecordFeedRefresh()
				RecordFeedError()
				UpdateGamesTracked(64)
			}, ShouldNotPanic)
		})

		Convey("When updating operational gauges", func() {
			So(func() {
				UpdateQueueSize(1000)
				UpdateQueueCapacity(10000)
				UpdateWorkerCount(8)
				UpdateTotalPlayers(250)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("leaderboard", "GET", "200")
				RecordHTTPRequestDuration("leaderboard", "GET", "200", 3.2)
				RecordHTTPRequest("picks", "POST", "429")
			}, ShouldNotPanic)
		})
	})
}
