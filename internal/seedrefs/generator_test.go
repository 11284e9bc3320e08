package seedrefs

import (
	"context"
	"testing"
	"time"

	"github.com/hrkey/refcore/internal/domain/scoring"
	logging "github.com/hrkey/refcore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerateSubmissions(t *testing.T) {
	_ = logging.Init()

	Convey("Given a seeding configuration", t, func() {
		config := &Config{
			NumCandidates:    10,
			RefsPerCandidate: 3,
		}

		Convey("When generating submissions", func() {
			stats := &Stats{}
			subs, err := generateSubmissions(context.Background(), config, stats)

			Convey("Then it should produce candidates x refs submissions", func() {
				So(err, ShouldBeNil)
				So(subs, ShouldHaveLength, 30)
				So(stats.SubmissionsGenerated, ShouldEqual, 30)
			})

			Convey("And every submission should carry all KPIs in range", func() {
				So(err, ShouldBeNil)
				kpis := scoring.KPINames()
				for _, sub := range subs {
					So(sub.KPIRatings, ShouldHaveLength, len(kpis))
					for _, kpi := range kpis {
						So(sub.KPIRatings, ShouldContainKey, kpi)
						So(sub.KPIRatings[kpi], ShouldBeBetweenOrEqual, 1.0, 5.0)
					}
				}
			})

			Convey("And referrers within a candidate should be distinct", func() {
				So(err, ShouldBeNil)
				byOwner := make(map[string]map[string]bool)
				for _, sub := range subs {
					if byOwner[sub.OwnerID] == nil {
						byOwner[sub.OwnerID] = make(map[string]bool)
					}
					So(byOwner[sub.OwnerID][sub.ReferrerEmail], ShouldBeFalse)
					byOwner[sub.OwnerID][sub.ReferrerEmail] = true
				}
				So(byOwner, ShouldHaveLength, 10)
			})

			Convey("And timestamps should be valid RFC3339", func() {
				So(err, ShouldBeNil)
				for _, sub := range subs {
					_, parseErr := time.Parse(time.RFC3339, sub.SubmittedAt)
					So(parseErr, ShouldBeNil)
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stats := &Stats{}
			subs, err := generateSubmissions(ctx, config, stats)

			Convey("Then generation should stop with an error", func() {
				So(err, ShouldNotBeNil)
				So(subs, ShouldBeNil)
			})
		})
	})
}

func TestSampleRating(t *testing.T) {
	Convey("Given each archetype", t, func() {
		archetypes := []archetype{
			{kind: archetypeStrong, ratingMean: 4.6, ratingVar: 0.4},
			{kind: archetypeAverage, ratingMean: 3.2, ratingVar: 0.8},
			{kind: archetypeWeak, ratingMean: 2.0, ratingVar: 0.7},
			{kind: archetypeMixed, ratingMean: 3.0, ratingVar: 1.8},
		}

		Convey("When sampling many ratings", func() {
			Convey("Then every rating should be a half point within [1,5]", func() {
				for _, a := range archetypes {
					for i := 0; i < 200; i++ {
						r := sampleRating(a)
						So(r, ShouldBeBetweenOrEqual, 1.0, 5.0)
						So(r*2, ShouldEqual, float64(int(r*2)))
					}
				}
			})
		})
	})
}
