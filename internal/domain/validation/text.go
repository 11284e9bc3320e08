package validation

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hrkey/refcore/internal/domain/model"
)

// Evidence-specificity heuristics for dimension confidence.
const (
	baseDimensionConfidence = 0.5
	feedbackBonus           = 0.1
	detailedFeedbackBonus   = 0.2
	numericEvidenceBonus    = 0.1
	longNarrativeBonus      = 0.1

	detailedFeedbackMinLen = 40
	longNarrativeMinLen    = 200
)

// standardizeText folds the summary and detailed feedback into one normalized
// narrative. Length violations produce critical flags; the text itself is kept
// (truncated when over the maximum) so the record stays auditable.
func standardizeText(sub *model.ReferenceSubmission) (string, []model.Flag) {
	parts := []string{strings.TrimSpace(sub.Summary)}

	// Deterministic feedback ordering.
	keys := make([]string, 0, len(sub.DetailedFeedback))
	for k := range sub.DetailedFeedback {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if fb := strings.TrimSpace(sub.DetailedFeedback[k]); fb != "" {
			parts = append(parts, k+": "+fb)
		}
	}

	text := collapseWhitespace(strings.Join(parts, " "))

	var flags []model.Flag
	if len(text) < model.MinTextLength {
		flags = append(flags, model.Flag{
			Type:     "text_length",
			Severity: model.SeverityCritical,
			Message:  "standardized text below minimum length",
			Details:  map[string]any{"length": len(text), "min": model.MinTextLength},
		})
	}
	if len(text) > model.MaxTextLength {
		flags = append(flags, model.Flag{
			Type:     "text_length",
			Severity: model.SeverityCritical,
			Message:  "standardized text above maximum length; truncated",
			Details:  map[string]any{"length": len(text), "max": model.MaxTextLength},
		})
		// Back up to a rune boundary so the cut never leaves invalid UTF-8.
		cut := model.MaxTextLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, flags
}

// buildDimensions derives one structured dimension per submitted KPI rating.
// Confidence grows with evidence specificity: attached feedback, concrete
// numbers, and a substantial narrative.
func buildDimensions(sub *model.ReferenceSubmission, text string) map[string]model.Dimension {
	hasNumbers := containsDigit(text)
	longNarrative := len(text) >= longNarrativeMinLen

	dims := make(map[string]model.Dimension, len(sub.KPIRatings))
	for kpi, rating := range sub.KPIRatings {
		feedback := strings.TrimSpace(sub.DetailedFeedback[kpi])

		confidence := baseDimensionConfidence
		if feedback != "" {
			confidence += feedbackBonus
		}
		if len(feedback) >= detailedFeedbackMinLen {
			confidence += detailedFeedbackBonus
		}
		if hasNumbers {
			confidence += numericEvidenceBonus
		}
		if longNarrative {
			confidence += longNarrativeBonus
		}

		dims[kpi] = model.Dimension{
			Rating:     rating,
			Confidence: clamp01(confidence),
			Normalized: clamp01(rating / model.RatingMax),
			Feedback:   feedback,
		}
	}
	return dims
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// tokenize lowercases and splits on non-letter, non-digit runes.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
