package scoring

import (
	"strings"
	"unicode"
)

// Small curated lexicons. Deliberately conservative: a miss costs a little
// signal, a false positive inflates a candidate's score.
var (
	impactLexicon = map[string]bool{
		"delivered": true, "shipped": true, "launched": true, "led": true,
		"improved": true, "increased": true, "reduced": true, "saved": true,
		"built": true, "drove": true, "achieved": true, "owned": true,
		"impact": true, "migrated": true, "scaled": true,
	}

	reliabilityLexicon = map[string]bool{
		"reliable": true, "dependable": true, "consistent": true,
		"deadline": true, "deadlines": true, "punctual": true,
		"committed": true, "responsible": true, "trusted": true,
		"steady": true, "thorough": true, "accountable": true,
		"oncall": true, "incident": true, "incidents": true,
	}

	communicationLexicon = map[string]bool{
		"communicated": true, "presented": true, "explained": true,
		"wrote": true, "documented": true, "documentation": true,
		"collaborated": true, "listened": true, "feedback": true,
		"clear": true, "articulate": true, "mentored": true,
		"onboarded": true, "facilitated": true,
	}

	superlativeLexicon = map[string]bool{
		"best": true, "greatest": true, "perfect": true, "flawless": true,
		"incredible": true, "amazing": true, "genius": true,
		"unparalleled": true, "extraordinary": true, "phenomenal": true,
	}

	positiveLexicon = map[string]bool{
		"excellent": true, "great": true, "strong": true, "outstanding": true,
		"thorough": true, "skilled": true, "effective": true, "reliable": true,
		"impressive": true, "dependable": true,
	}

	negativeLexicon = map[string]bool{
		"poor": true, "sloppy": true, "late": true, "missed": true,
		"unreliable": true, "weak": true, "careless": true, "failed": true,
		"struggled": true, "inconsistent": true,
	}
)

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
