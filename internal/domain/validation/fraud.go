package validation

import (
	"time"

	"github.com/hrkey/refcore/internal/domain/model"
)

// Fraud heuristic weights. The sum of all triggered heuristics is clamped to
// the 0-100 fraud score range; higher means more suspicious.
const (
	duplicatePhrasingPoints  = 40
	textRatingMismatchPoints = 25
	implausibleTimingPoints  = 20
	uniformRatingsPoints     = 15
	superlativeDensityPoints = 10

	highRatingFloor        = 0.8
	lowRatingCeil          = 0.4
	uniformRatingsMinCount = 3
	superlativeDensityMax  = 0.08
	implausibleWindow      = 5 * time.Minute
)

// superlatives flag inflated, evidence-free praise.
var superlatives = map[string]struct{}{ //nolint:gochecknoglobals // shared lexicon
	"best": {}, "greatest": {}, "perfect": {}, "flawless": {}, "incredible": {},
	"amazing": {}, "unbelievable": {}, "extraordinary": {}, "phenomenal": {},
	"genius": {}, "legendary": {}, "unmatched": {}, "exceptional": {},
}

// negatives signal a narrative tone at odds with top ratings.
var negatives = map[string]struct{}{ //nolint:gochecknoglobals // shared lexicon
	"poor": {}, "bad": {}, "late": {}, "missed": {}, "unreliable": {},
	"sloppy": {}, "weak": {}, "failed": {}, "struggled": {}, "conflict": {},
	"problem": {}, "careless": {},
}

// positives signal a narrative tone at odds with bottom ratings.
var positives = map[string]struct{}{ //nolint:gochecknoglobals // shared lexicon
	"excellent": {}, "great": {}, "strong": {}, "outstanding": {}, "reliable": {},
	"thorough": {}, "skilled": {}, "dedicated": {}, "impressive": {},
}

// scoreFraud runs every heuristic over the submission and returns the clamped
// integer fraud score plus one flag per triggered heuristic.
func scoreFraud(sub *model.ReferenceSubmission, text string, dims map[string]model.Dimension, previous []*model.ValidatedReference) (int, []model.Flag) {
	score := 0
	var flags []model.Flag

	tokens := tokenize(text)

	if dup, referrer := duplicatedPhrasing(text, sub.ReferrerEmail, previous); dup {
		score += duplicatePhrasingPoints
		flags = append(flags, model.Flag{
			Type:     "duplicated_phrasing",
			Severity: model.SeverityWarning,
			Message:  "narrative duplicates an earlier reference from a different referrer",
			Details:  map[string]any{"matching_referrer": referrer},
		})
	}

	if mismatch, detail := textRatingMismatch(tokens, dims); mismatch {
		score += textRatingMismatchPoints
		flags = append(flags, model.Flag{
			Type:     "text_rating_mismatch",
			Severity: model.SeverityWarning,
			Message:  "narrative tone contradicts the submitted ratings",
			Details:  detail,
		})
	}

	if timing, gap := implausibleTiming(sub, previous); timing {
		score += implausibleTimingPoints
		flags = append(flags, model.Flag{
			Type:     "implausible_timing",
			Severity: model.SeverityWarning,
			Message:  "submitted implausibly close to another referrer's reference",
			Details:  map[string]any{"gap_seconds": gap.Seconds()},
		})
	}

	if uniformRatings(sub.KPIRatings) {
		score += uniformRatingsPoints
		flags = append(flags, model.Flag{
			Type:     "uniform_ratings",
			Severity: model.SeverityInfo,
			Message:  "every KPI received the identical rating",
			Details:  map[string]any{"kpi_count": len(sub.KPIRatings)},
		})
	}

	if density := lexiconDensity(tokens, superlatives); density > superlativeDensityMax {
		score += superlativeDensityPoints
		flags = append(flags, model.Flag{
			Type:     "superlative_density",
			Severity: model.SeverityInfo,
			Message:  "unusually dense superlative phrasing",
			Details:  map[string]any{"density": density},
		})
	}

	return clampInt(score, 0, 100), flags
}

// duplicatedPhrasing detects the same standardized narrative reused by a
// different referrer, a common template-farm signal.
func duplicatedPhrasing(text, referrer string, previous []*model.ValidatedReference) (bool, string) {
	for _, prev := range previous {
		if prev == nil || prev.ReferrerEmail == referrer {
			continue
		}
		if prev.StandardizedText == text {
			return true, prev.ReferrerEmail
		}
	}
	return false, ""
}

// textRatingMismatch fires when top ratings ride on a negative narrative, or
// bottom ratings on a glowing one.
func textRatingMismatch(tokens []string, dims map[string]model.Dimension) (bool, map[string]any) {
	if len(dims) == 0 {
		return false, nil
	}
	mean := 0.0
	for _, d := range dims {
		mean += d.Normalized
	}
	mean /= float64(len(dims))

	negHits := lexiconHits(tokens, negatives)
	posHits := lexiconHits(tokens, positives)

	if mean >= highRatingFloor && negHits > 0 && negHits >= posHits {
		return true, map[string]any{"mean_normalized": mean, "negative_hits": negHits}
	}
	if mean <= lowRatingCeil && posHits > 0 && posHits > negHits {
		return true, map[string]any{"mean_normalized": mean, "positive_hits": posHits}
	}
	return false, nil
}

// implausibleTiming fires when another referrer's reference for the same
// owner landed within the suspicious window.
func implausibleTiming(sub *model.ReferenceSubmission, previous []*model.ValidatedReference) (bool, time.Duration) {
	if sub.SubmittedAt.IsZero() {
		return false, 0
	}
	for _, prev := range previous {
		if prev == nil || prev.ReferrerEmail == sub.ReferrerEmail {
			continue
		}
		ts, err := time.Parse(time.RFC3339, prev.Metadata.Timestamp)
		if err != nil {
			continue
		}
		gap := sub.SubmittedAt.Sub(ts)
		if gap < 0 {
			gap = -gap
		}
		if gap <= implausibleWindow {
			return true, gap
		}
	}
	return false, 0
}

func uniformRatings(ratings map[string]float64) bool {
	if len(ratings) < uniformRatingsMinCount {
		return false
	}
	var first float64
	started := false
	for _, r := range ratings {
		if !started {
			first, started = r, true
			continue
		}
		if r != first {
			return false
		}
	}
	return true
}

func lexiconHits(tokens []string, lexicon map[string]struct{}) int {
	hits := 0
	for _, tok := range tokens {
		if _, ok := lexicon[tok]; ok {
			hits++
		}
	}
	return hits
}

func lexiconDensity(tokens []string, lexicon map[string]struct{}) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return float64(lexiconHits(tokens, lexicon)) / float64(len(tokens))
}
