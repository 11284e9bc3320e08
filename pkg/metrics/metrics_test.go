package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given manager construction", t, func() {
		Convey("When created with defaults on a fresh registry", func() {
			m := NewManager(WithRegistry(prometheus.NewRegistry()))

			Convey("Then defaults should be applied", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "refcore")
				So(m.subsystem, ShouldEqual, "pipeline")
				So(m.enabled, ShouldBeTrue)
				So(m.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When created with custom options", func() {
			m := NewManager(
				WithRegistry(prometheus.NewRegistry()),
				WithNamespace("custom"),
				WithSubsystem("validation"),
				WithRefreshInterval(30*time.Second),
				WithEnabled(false),
			)

			Convey("Then the options should override defaults", func() {
				So(m.namespace, ShouldEqual, "custom")
				So(m.subsystem, ShouldEqual, "validation")
				So(m.refreshInterval, ShouldEqual, 30*time.Second)
				So(m.enabled, ShouldBeFalse)
			})
		})

		Convey("When created with empty option values", func() {
			m := NewManager(
				WithRegistry(prometheus.NewRegistry()),
				WithNamespace(""),
				WithSubsystem(""),
				WithRefreshInterval(0),
			)

			Convey("Then invalid values should be ignored", func() {
				So(m.namespace, ShouldEqual, "refcore")
				So(m.subsystem, ShouldEqual, "pipeline")
				So(m.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		So(globalManager, ShouldNotBeNil)

		Convey("When recording pipeline metrics", func() {
			So(func() {
				RecordValidation("APPROVED")
				RecordValidation("REJECTED_HIGH_FRAUD_RISK")
				RecordValidationLatency(12.5)
				RecordFraudScore(35)
				RecordConsistencyScore(0.92)
				RecordSubmissionDuplicate()
			}, ShouldNotPanic)
		})

		Convey("When recording evaluation metrics", func() {
			So(func() {
				RecordEvaluationComputed()
				RecordEvaluationError()
				RecordTokenomicsPreview()
				RecordSnapshotWrite()
				RecordSnapshotFailure()
			}, ShouldNotPanic)
		})

		Convey("When updating queue and worker metrics", func() {
			So(func() {
				UpdateQueueSize(10)
				UpdateQueueCapacity(1000)
				UpdateQueueUtilization(0.01)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueError("capacity_exceeded")
				UpdateWorkerActiveCount(4)
				RecordWorkerProcessingLatency(5.0)
				RecordWorkerError()
			}, ShouldNotPanic)
		})

		Convey("When updating leaderboard, HTTP and system metrics", func() {
			So(func() {
				RecordLeaderboardUpdate()
				UpdateTotalCandidates(42)
				RecordHTTPRequest("references", "POST", "202")
				RecordHTTPRequestDuration("references", "POST", "202", 3.2)
				RecordErrorByComponent("worker", "validation_error")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(25)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		Convey("Then it should be gatherable", func() {
			reg := GetRegistry()
			So(reg, ShouldNotBeNil)

			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
