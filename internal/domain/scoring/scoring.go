// Package scoring aggregates validated reference answers into a single
// HRScore and its derived access price.
//
// Everything in this package is pure: no I/O, no clock, no randomness. Given
// the same answers and configuration the aggregator produces byte-identical
// evaluations, which is what makes batch recalculation and snapshot auditing
// possible.
package scoring

import (
	"math"
	"sort"

	"github.com/hrkey/refcore/internal/domain/pricing"
)

// Signal blend weights. They sum to 1 so the normalized score stays in [0,1]
// and is monotonically non-decreasing in every signal.
const (
	impactWeight        = 0.40
	reliabilityWeight   = 0.35
	communicationWeight = 0.25

	// signalSaturationHits is the lexicon hit count at which a signal
	// saturates to 1.0.
	signalSaturationHits = 3

	// exaggerationDensity is the superlative token density above which an
	// answer is flagged as exaggerated.
	exaggerationDensity = 0.10

	hrScoreMax = 100
)

// Canonical KPI names carried by reference submissions. The weights skew
// toward delivery signals and are used by callers that fold KPI ratings into
// the evaluation narrative.
var DefaultKPIWeights = map[string]float64{
	"code_quality":          0.25,
	"test_coverage":         0.15,
	"deployment_frequency":  0.15,
	"bug_resolution_time":   0.20,
	"api_response_time":     0.10,
	"documentation_quality": 0.15,
}

// AnswerInput is one free-text answer to a structured reference question.
type AnswerInput struct {
	QuestionID string `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

// AnswerAnalysis is the per-answer output: tone flags plus three behavioural
// signals in [0,1].
type AnswerAnalysis struct {
	QuestionID          string  `json:"question_id"`
	ExaggerationFlag    bool    `json:"exaggeration_flag"`
	PositivityFlag      bool    `json:"positivity_flag"`
	NegativityFlag      bool    `json:"negativity_flag"`
	ImpactSignal        float64 `json:"impact_signal"`
	ReliabilitySignal   float64 `json:"reliability_signal"`
	CommunicationSignal float64 `json:"communication_signal"`
}

// AggregatedSignals holds the arithmetic means of the per-answer signals.
// All fields are 0 when there are no answers.
type AggregatedSignals struct {
	TeamImpact    float64 `json:"team_impact"`
	Reliability   float64 `json:"reliability"`
	Communication float64 `json:"communication"`
}

// HRScoreResult is the normalized score and its 0-100 integer presentation.
type HRScoreResult struct {
	NormalizedScore float64 `json:"normalized_score"`
	HRScore         int     `json:"hr_score"`
}

// Evaluation is the complete aggregate for one candidate.
type Evaluation struct {
	ReferenceAnalysis []AnswerAnalysis  `json:"reference_analysis"`
	AggregatedSignals AggregatedSignals `json:"aggregated_signals"`
	HRScoreResult     HRScoreResult     `json:"hr_score_result"`
	PricingResult     pricing.Result    `json:"pricing_result"`
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithPricer sets the pricing curve used to derive the access price.
func WithPricer(p *pricing.Pricer) Option {
	return func(a *Aggregator) {
		if p != nil {
			a.pricer = p
		}
	}
}

// Aggregator turns answers into an Evaluation.
type Aggregator struct {
	pricer *pricing.Pricer
}

// New constructs an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{pricer: pricing.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EvaluateAnswers analyses every answer, aggregates the signals, and derives
// the HRScore and price. Answer order does not affect the aggregate.
func (a *Aggregator) EvaluateAnswers(answers []AnswerInput) Evaluation {
	analyses := make([]AnswerAnalysis, 0, len(answers))
	for _, ans := range answers {
		analyses = append(analyses, analyzeAnswer(ans))
	}

	agg := aggregateSignals(analyses)
	normalized := clamp01(impactWeight*agg.TeamImpact +
		reliabilityWeight*agg.Reliability +
		communicationWeight*agg.Communication)

	score := HRScoreResult{
		NormalizedScore: normalized,
		HRScore:         int(math.Round(normalized * hrScoreMax)),
	}

	return Evaluation{
		ReferenceAnalysis: analyses,
		AggregatedSignals: agg,
		HRScoreResult:     score,
		PricingResult:     a.pricer.PriceFor(normalized),
	}
}

func analyzeAnswer(ans AnswerInput) AnswerAnalysis {
	tokens := tokenize(ans.AnswerText)

	var impactHits, reliabilityHits, communicationHits int
	var superlativeHits, positiveHits, negativeHits int
	for _, tok := range tokens {
		if impactLexicon[tok] {
			impactHits++
		}
		if reliabilityLexicon[tok] {
			reliabilityHits++
		}
		if communicationLexicon[tok] {
			communicationHits++
		}
		if superlativeLexicon[tok] {
			superlativeHits++
		}
		if positiveLexicon[tok] {
			positiveHits++
		}
		if negativeLexicon[tok] {
			negativeHits++
		}
	}

	exaggerated := false
	if len(tokens) > 0 {
		exaggerated = float64(superlativeHits)/float64(len(tokens)) > exaggerationDensity
	}

	return AnswerAnalysis{
		QuestionID:          ans.QuestionID,
		ExaggerationFlag:    exaggerated,
		PositivityFlag:      positiveHits > negativeHits,
		NegativityFlag:      negativeHits > positiveHits,
		ImpactSignal:        saturate(impactHits),
		ReliabilitySignal:   saturate(reliabilityHits),
		CommunicationSignal: saturate(communicationHits),
	}
}

func aggregateSignals(analyses []AnswerAnalysis) AggregatedSignals {
	if len(analyses) == 0 {
		return AggregatedSignals{}
	}
	var agg AggregatedSignals
	for _, a := range analyses {
		agg.TeamImpact += a.ImpactSignal
		agg.Reliability += a.ReliabilitySignal
		agg.Communication += a.CommunicationSignal
	}
	n := float64(len(analyses))
	agg.TeamImpact /= n
	agg.Reliability /= n
	agg.Communication /= n
	return agg
}

// saturate maps a hit count to [0,1], reaching 1.0 at signalSaturationHits.
func saturate(hits int) float64 {
	if hits >= signalSaturationHits {
		return 1
	}
	return float64(hits) / signalSaturationHits
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// KPINames returns the canonical KPI vocabulary in sorted order.
func KPINames() []string {
	names := make([]string, 0, len(DefaultKPIWeights))
	for name := range DefaultKPIWeights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
