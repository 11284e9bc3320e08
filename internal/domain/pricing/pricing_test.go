package pricing_test

import (
	"math"
	"testing"

	pricing "github.com/hrkey/refcore/internal/domain/pricing"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPriceCurve(t *testing.T) {
	Convey("Given a pricer with default bounds", t, func() {
		p := pricing.New()

		Convey("Then the endpoints should map exactly to the bounds", func() {
			minPrice, maxPrice := p.Bounds()
			So(p.PriceFor(0).PriceUsd, ShouldEqual, minPrice)
			So(p.PriceFor(1).PriceUsd, ShouldEqual, maxPrice)
		})

		Convey("Then the curve should be monotonically non-decreasing", func() {
			prev := math.Inf(-1)
			for s := 0.0; s <= 1.0; s += 0.01 {
				price := p.PriceFor(s).PriceUsd
				So(price, ShouldBeGreaterThanOrEqualTo, prev)
				prev = price
			}
		})

		Convey("Then every price should stay within bounds", func() {
			minPrice, maxPrice := p.Bounds()
			for _, s := range []float64{-2, -0.1, 0, 0.3, 0.77, 1, 1.5, math.NaN()} {
				price := p.PriceFor(s).PriceUsd
				So(price, ShouldBeBetweenOrEqual, minPrice, maxPrice)
			}
		})

		Convey("Then pricing should be deterministic", func() {
			So(p.PriceFor(0.42), ShouldResemble, p.PriceFor(0.42))
		})

		Convey("Then the result should echo the input score", func() {
			res := p.PriceFor(0.6)
			So(res.NormalizedScore, ShouldEqual, 0.6)
		})
	})

	Convey("Given custom bounds and exponent", t, func() {
		p := pricing.New(pricing.WithBounds(5, 50), pricing.WithCurveExponent(1))

		Convey("Then the curve should be linear between the bounds", func() {
			So(p.PriceFor(0.5).PriceUsd, ShouldAlmostEqual, 27.5, 1e-9)
		})

		Convey("And invalid option values should be ignored", func() {
			q := pricing.New(pricing.WithBounds(100, 10), pricing.WithCurveExponent(-2))
			minPrice, maxPrice := q.Bounds()
			So(minPrice, ShouldEqual, 10.0)
			So(maxPrice, ShouldEqual, 500.0)
		})
	})
}
