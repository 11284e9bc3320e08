package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		c := New()

		Convey("Then server defaults should be set", func() {
			So(c.LogLevel, ShouldEqual, "info")
			So(c.Addr, ShouldEqual, ":9080")
			So(c.DBPath, ShouldEqual, "data/refcore.db")
			So(c.QueueSize, ShouldEqual, 10_000)
			So(c.WorkerCount, ShouldBeGreaterThan, 0)
			So(c.MaxLeaderboardLimit, ShouldEqual, 100)
		})

		Convey("Then validator defaults should be set", func() {
			So(c.FraudThreshold, ShouldEqual, 70)
			So(c.ConsistencyThreshold, ShouldEqual, 0.4)
			So(c.SkipEmbeddings, ShouldBeFalse)
			So(c.SkipConsistencyCheck, ShouldBeFalse)
		})

		Convey("Then tokenomics defaults should be set and coherent", func() {
			So(c.FxRateUsdToHrk, ShouldEqual, 10.0)
			So(c.PlatformSharePct+c.ReferenceSharePct+c.CandidateSharePct, ShouldAlmostEqual, 1.0, 1e-12)
			So(c.BaseStakingApr, ShouldEqual, 0.12)
			So(c.DefaultLockMonths, ShouldEqual, 12)
			So(c.MinPriceUsd, ShouldBeLessThan, c.MaxPriceUsd)
		})

		Convey("Then the default config should pass validation", func() {
			So(c.validate(), ShouldBeNil)
		})
	})
}
