package tokenomics_test

import (
	"errors"
	"math"
	"testing"

	tokenomics "github.com/hrkey/refcore/internal/domain/tokenomics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConvert(t *testing.T) {
	Convey("Given an engine with default configuration", t, func() {
		e := tokenomics.New()

		Convey("Then a USD amount should convert at the configured rate", func() {
			conv, err := e.Convert(50)
			So(err, ShouldBeNil)
			So(conv.RawTokens, ShouldEqual, 500.0)
			So(conv.ClampedTokens, ShouldEqual, 500.0)
			So(conv.FxRate, ShouldEqual, 10.0)
		})

		Convey("Then amounts beyond the token cap should clamp but keep the raw value", func() {
			conv, err := e.Convert(200_000)
			So(err, ShouldBeNil)
			So(conv.RawTokens, ShouldEqual, 2_000_000.0)
			So(conv.ClampedTokens, ShouldEqual, 1_000_000.0)
		})

		Convey("Then negative and NaN amounts should be rejected", func() {
			_, err := e.Convert(-1)
			So(errors.Is(err, tokenomics.ErrInvalidAmount), ShouldBeTrue)
			_, err = e.Convert(math.NaN())
			So(errors.Is(err, tokenomics.ErrInvalidAmount), ShouldBeTrue)
		})
	})
}

func TestSplitRevenue(t *testing.T) {
	Convey("Given an engine with the default 40/40/20 shares", t, func() {
		e := tokenomics.New()

		Convey("When splitting 100 tokens", func() {
			split, err := e.SplitRevenue(100)
			So(err, ShouldBeNil)

			Convey("Then the shares should be 40, 40 and 20", func() {
				So(split.PlatformTokens, ShouldAlmostEqual, 40.0, 1e-9)
				So(split.ReferenceTokens, ShouldAlmostEqual, 40.0, 1e-9)
				So(split.CandidateTokens, ShouldAlmostEqual, 20.0, 1e-9)
				So(split.PlatformPct, ShouldAlmostEqual, 40.0, 1e-9)
			})

			Convey("Then the parts should reconstruct the total", func() {
				sum := split.PlatformTokens + split.ReferenceTokens + split.CandidateTokens
				So(sum, ShouldAlmostEqual, split.TotalTokens, 1e-6)
			})
		})

		Convey("Then awkward totals should still reconstruct exactly", func() {
			for _, total := range []float64{0, 0.01, 1.0 / 3.0, 99.99, 123456.789} {
				split, err := e.SplitRevenue(total)
				So(err, ShouldBeNil)
				sum := split.PlatformTokens + split.ReferenceTokens + split.CandidateTokens
				So(sum, ShouldAlmostEqual, total, 1e-6)
			}
		})

		Convey("Then a negative total should be rejected", func() {
			_, err := e.SplitRevenue(-5)
			So(errors.Is(err, tokenomics.ErrInvalidAmount), ShouldBeTrue)
		})
	})

	Convey("Given shares that do not sum to one", t, func() {
		e := tokenomics.New(tokenomics.WithShares(0.5, 0.4, 0.2))

		Convey("Then the split should refuse rather than mint tokens", func() {
			_, err := e.SplitRevenue(100)
			So(errors.Is(err, tokenomics.ErrSharesNotUnity), ShouldBeTrue)
		})
	})
}

func TestSplitRevenueUsd(t *testing.T) {
	Convey("Given an engine with default configuration", t, func() {
		e := tokenomics.New()

		Convey("When splitting a 100 USD price", func() {
			split, err := e.SplitRevenueUsd(100)
			So(err, ShouldBeNil)

			Convey("Then the USD shares should follow 40/40/20", func() {
				So(split.PlatformUsd, ShouldAlmostEqual, 40.0, 1e-9)
				So(split.ReferencePoolUsd, ShouldAlmostEqual, 40.0, 1e-9)
				So(split.CandidateUsd, ShouldAlmostEqual, 20.0, 1e-9)
				So(split.TotalUsd, ShouldEqual, 100.0)
			})
		})

		Convey("When the price is large enough for the token cap to clamp", func() {
			price := 200_000.0
			conv, err := e.Convert(price)
			So(err, ShouldBeNil)
			So(conv.ClampedTokens, ShouldBeLessThan, conv.RawTokens)

			split, err := e.SplitRevenueUsd(price)
			So(err, ShouldBeNil)

			Convey("Then the USD split still reconstructs the full price", func() {
				sum := split.PlatformUsd + split.ReferencePoolUsd + split.CandidateUsd
				So(sum, ShouldAlmostEqual, price, 1e-6)
				So(split.TotalUsd, ShouldEqual, price)
			})
		})

		Convey("Then a negative price should be rejected", func() {
			_, err := e.SplitRevenueUsd(-1)
			So(errors.Is(err, tokenomics.ErrInvalidAmount), ShouldBeTrue)
		})
	})

	Convey("Given shares that do not sum to one", t, func() {
		e := tokenomics.New(tokenomics.WithShares(0.5, 0.4, 0.2))

		Convey("Then the USD split should refuse as well", func() {
			_, err := e.SplitRevenueUsd(100)
			So(errors.Is(err, tokenomics.ErrSharesNotUnity), ShouldBeTrue)
		})
	})
}

func TestEstimateStakingRewards(t *testing.T) {
	Convey("Given an engine with the default staking parameters", t, func() {
		e := tokenomics.New()

		Convey("Then 1000 tokens for 12 months at 12% with no boost should earn 120", func() {
			est, err := e.EstimateStakingRewards(1000, 0)
			So(err, ShouldBeNil)
			So(est.EffectiveApr, ShouldAlmostEqual, 0.12, 1e-9)
			So(est.ProjectedRewards, ShouldAlmostEqual, 120.0, 1e-9)
			So(est.LockPeriodMonths, ShouldEqual, 12)
		})

		Convey("Then a full score boost should raise the effective APR by the boost weight", func() {
			est, err := e.EstimateStakingRewards(1000, 1)
			So(err, ShouldBeNil)
			So(est.EffectiveApr, ShouldAlmostEqual, 0.18, 1e-9)
			So(est.ProjectedRewards, ShouldAlmostEqual, 180.0, 1e-9)
		})

		Convey("Then out-of-range boosts should clamp instead of failing", func() {
			high, err := e.EstimateStakingRewards(100, 7)
			So(err, ShouldBeNil)
			low, err2 := e.EstimateStakingRewards(100, -3)
			So(err2, ShouldBeNil)
			capped, _ := e.EstimateStakingRewards(100, 1)
			zero, _ := e.EstimateStakingRewards(100, 0)
			So(high.ProjectedRewards, ShouldEqual, capped.ProjectedRewards)
			So(low.ProjectedRewards, ShouldEqual, zero.ProjectedRewards)
		})

		Convey("Then a negative stake should be rejected", func() {
			_, err := e.EstimateStakingRewards(-10, 0)
			So(errors.Is(err, tokenomics.ErrInvalidAmount), ShouldBeTrue)
		})
	})

	Convey("Given a six month lock", t, func() {
		e := tokenomics.New(tokenomics.WithStaking(0.12, 6, 0.5))

		Convey("Then rewards should scale with the lock period", func() {
			est, err := e.EstimateStakingRewards(1000, 0)
			So(err, ShouldBeNil)
			So(est.ProjectedRewards, ShouldAlmostEqual, 60.0, 1e-9)
		})
	})
}

func TestOnChainPreview(t *testing.T) {
	Convey("Given the settlement basis points", t, func() {
		e := tokenomics.New()

		Convey("Then the display split should follow 60/20/15/5", func() {
			oc := e.OnChainPreview(1000)
			So(oc.ReferrerTokens, ShouldAlmostEqual, 600.0, 1e-9)
			So(oc.CandidateTokens, ShouldAlmostEqual, 200.0, 1e-9)
			So(oc.PlatformTokens, ShouldAlmostEqual, 150.0, 1e-9)
			So(oc.TreasuryTokens, ShouldAlmostEqual, 50.0, 1e-9)
		})
	})
}
