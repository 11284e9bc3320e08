package seedrefs

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/hrkey/refcore/internal/domain/scoring"
	"github.com/hrkey/refcore/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 10
)

// Rating bounds on the submission scale.
const (
	ratingMin = 1.0
	ratingMax = 5.0
)

// Candidate archetypes. The distribution is deliberately uneven so seeded
// data produces a spread-out leaderboard rather than a uniform one.
const (
	archetypeStrong  = iota // rare: consistently high ratings, rich narratives
	archetypeSolid          // common: good ratings, positive narratives
	archetypeAverage        // most common: middling ratings, neutral narratives
	archetypeWeak           // occasional: low ratings, critical narratives
	archetypeMixed          // occasional: high variance across referrers
)

type archetype struct {
	kind       int
	ratingMean float64
	ratingVar  float64
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pickArchetype draws a candidate archetype with a skewed distribution.
func pickArchetype() archetype {
	n, _ := rand.Int(rand.Reader, big.NewInt(archetypeDivisor))
	switch n.Int64() {
	case 0:
		return archetype{kind: archetypeStrong, ratingMean: 4.6, ratingVar: 0.4}
	case 1, 2:
		return archetype{kind: archetypeSolid, ratingMean: 4.0, ratingVar: 0.6}
	case 3, 4, 5, 6:
		return archetype{kind: archetypeAverage, ratingMean: 3.2, ratingVar: 0.8}
	case 7:
		return archetype{kind: archetypeWeak, ratingMean: 2.0, ratingVar: 0.7}
	default:
		return archetype{kind: archetypeMixed, ratingMean: 3.0, ratingVar: 1.8}
	}
}

// sampleRating draws a rating around the archetype mean, clamped to [1,5].
// Summing two uniform draws gives a rough bell shape.
func sampleRating(a archetype) float64 {
	noise := (getRandomFloat() + getRandomFloat() - 1.0) * a.ratingVar
	r := a.ratingMean + noise
	if r < ratingMin {
		r = ratingMin
	}
	if r > ratingMax {
		r = ratingMax
	}
	// Quantize to half points the way a human referrer would rate.
	return float64(int(r*2+0.5)) / 2
}

// Narrative fragments per archetype. Built from vocabulary the scoring
// lexicons recognize so seeded data exercises the whole pipeline.
var (
	strongSummaries = []string{
		"Delivered every milestone we planned and led the migration that reduced our infra costs. Consistently shipped ahead of deadlines and documented everything thoroughly.",
		"Led the platform rebuild, improved our deployment pipeline and mentored two junior engineers along the way. Reliable, clear communicator, trusted with our hardest incidents.",
		"Shipped the billing rework that increased conversion, owned the oncall rotation and wrote excellent documentation. Dependable under pressure and articulate in reviews.",
	}
	solidSummaries = []string{
		"Strong engineer who delivered solid work on schedule. Communicated clearly in standups and collaborated well with the design team.",
		"Dependable and thorough. Improved our test coverage noticeably and explained tradeoffs well when we disagreed on approach.",
		"Consistent contributor who met deadlines and presented their work clearly. Built several internal tools we still use.",
	}
	averageSummaries = []string{
		"Did competent work during our time together. Handled the tasks assigned and asked for help when needed.",
		"A steady team member who completed assigned projects at a reasonable pace. Nothing notable went wrong during the engagement.",
		"Worked on our backend services for about a year. Output was acceptable and the collaboration was generally fine.",
	}
	weakSummaries = []string{
		"Struggled with the pace of the team and missed several deadlines. Code reviews often surfaced careless mistakes that needed rework.",
		"Output was inconsistent and a few deliverables arrived late. Needed closer supervision than expected for the seniority level.",
		"Had difficulty with the more complex parts of the system and the resulting work was sometimes sloppy. Communication was sparse.",
	}
	feedbackFragments = []string{
		"Documented the rollout plan and walked the team through it before launch.",
		"Reduced flaky test failures across the main pipeline.",
		"Presented findings to stakeholders and listened to pushback well.",
		"Handled a production incident calmly and wrote up the followup.",
		"Mentored a new hire through their first quarter.",
		"Kept the ticket queue moving without sacrificing quality.",
	}
)

func summaryFor(a archetype) string {
	switch a.kind {
	case archetypeStrong:
		return pick(strongSummaries)
	case archetypeSolid:
		return pick(solidSummaries)
	case archetypeWeak:
		return pick(weakSummaries)
	case archetypeMixed:
		// Mixed candidates draw from the whole pool.
		all := [][]string{strongSummaries, solidSummaries, averageSummaries, weakSummaries}
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		return pick(all[n.Int64()])
	default:
		return pick(averageSummaries)
	}
}

func pick(options []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(options))))
	return options[n.Int64()]
}

// generateSubmissions creates references for NumCandidates candidates, each
// reviewed by RefsPerCandidate distinct referrers.
func generateSubmissions(ctx context.Context, config *Config, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating reference submissions",
		logger.Int("candidates", config.NumCandidates),
		logger.Int("refsPerCandidate", config.RefsPerCandidate))

	kpis := scoring.KPINames()
	total := config.NumCandidates * config.RefsPerCandidate
	subs := make([]Submission, 0, total)

	for c := 0; c < config.NumCandidates; c++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		default:
		}

		candidateID := uuid.New().String()
		a := pickArchetype()

		for r := 0; r < config.RefsPerCandidate; r++ {
			ratings := make(map[string]float64, len(kpis))
			for _, kpi := range kpis {
				ratings[kpi] = sampleRating(a)
			}

			sub := Submission{
				Summary:       summaryFor(a),
				KPIRatings:    ratings,
				OwnerID:       candidateID,
				ReferrerEmail: fmt.Sprintf("referrer-%d-%d@seed.hrkey.dev", c, r),
				SubmittedAt:   time.Now().UTC().Add(-time.Duration(r) * time.Hour).Format(time.RFC3339),
			}
			// Roughly half the referrers leave detailed feedback.
			if getRandomFloat() < 0.5 {
				sub.DetailedFeedback = map[string]string{
					"working_style": pick(feedbackFragments),
				}
			}
			subs = append(subs, sub)
		}
	}

	stats.SubmissionsGenerated = len(subs)
	logger.Get().Info(ctx, "generated submissions successfully", logger.Int("count", len(subs)))

	return subs, nil
}
