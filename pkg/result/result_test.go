package result_test

import (
	"testing"

	"github.com/hrkey/refcore/pkg/result"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResult(t *testing.T) {
	Convey("Given a successful result", t, func() {
		r := result.Ok(42)

		Convey("Then the value is readable and not degraded", func() {
			So(r.Value(), ShouldEqual, 42)
			So(r.IsDegraded(), ShouldBeFalse)
			So(r.Reason(), ShouldBeEmpty)
		})
	})

	Convey("Given a degraded result", t, func() {
		r := result.Degraded([]string{"fallback"}, "snapshot write failed")

		Convey("Then the fallback is still usable and the reason preserved", func() {
			So(r.Value(), ShouldResemble, []string{"fallback"})
			So(r.IsDegraded(), ShouldBeTrue)
			So(r.Reason(), ShouldEqual, "snapshot write failed")
		})
	})
}
