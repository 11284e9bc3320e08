// Package validation turns raw reference submissions into structured,
// flagged, fraud- and consistency-scored records.
//
// The validator never returns an error for a schema-valid submission:
// borderline or risky input resolves to a REJECTED_* status with explanatory
// flags, and internal failures (such as an unavailable embedder) downgrade
// the record instead of aborting it.
package validation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hrkey/refcore/internal/domain/model"
)

// Default validator thresholds.
const (
	defaultFraudThreshold       = 70
	defaultConsistencyThreshold = 0.4

	// neutralConsistency is the documented baseline used when no prior
	// references exist for the owner or the check is skipped.
	neutralConsistency = 1.0

	// confidence blend weights between consistency and dimension evidence.
	consistencyWeight = 0.6
	dimensionWeight   = 0.4
)

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithFraudThreshold sets the fraud score at or above which a submission is
// rejected as high fraud risk.
func WithFraudThreshold(threshold int) Option {
	return func(v *Validator) {
		if threshold >= 0 && threshold <= 100 {
			v.fraudThreshold = threshold
		}
	}
}

// WithConsistencyThreshold sets the consistency score below which a
// submission is rejected as inconsistent.
func WithConsistencyThreshold(threshold float64) Option {
	return func(v *Validator) {
		if threshold >= 0 && threshold <= 1 {
			v.consistencyThreshold = threshold
		}
	}
}

// WithEmbedder sets the embedding implementation.
func WithEmbedder(e Embedder) Option {
	return func(v *Validator) {
		if e != nil {
			v.embedder = e
		}
	}
}

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// Options carries per-call validation inputs.
type Options struct {
	// PreviousReferences are earlier validated records for the same owner,
	// used by the consistency and fraud heuristics.
	PreviousReferences []*model.ValidatedReference

	// SkipEmbeddings leaves the embedding vector nil, bounding latency when
	// the embedder is slow or unavailable.
	SkipEmbeddings bool

	// SkipConsistencyCheck keeps the neutral consistency baseline, bounding
	// latency when cross-reference lookups are unavailable.
	SkipConsistencyCheck bool
}

// Validator computes ValidatedReference records from raw submissions.
type Validator struct {
	fraudThreshold       int
	consistencyThreshold float64
	embedder             Embedder
	now                  func() time.Time
}

// New constructs a Validator with default thresholds and a deterministic
// in-process embedder.
func New(opts ...Option) *Validator {
	v := &Validator{
		fraudThreshold:       defaultFraudThreshold,
		consistencyThreshold: defaultConsistencyThreshold,
		embedder:             NewHashingEmbedder(),
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate derives a well-formed ValidatedReference from a submission.
// It always returns a record for schema-valid input; the caller should run
// sub.Validate() first to weed out malformed payloads.
func (v *Validator) Validate(ctx context.Context, sub *model.ReferenceSubmission, opts Options) *model.ValidatedReference {
	start := v.now()
	var flags []model.Flag

	// 1. Normalize narrative text.
	text, textFlags := standardizeText(sub)
	flags = append(flags, textFlags...)

	// 2. Structured dimensions from KPI ratings.
	dims := buildDimensions(sub, text)

	// 3. Consistency against prior references for the same owner. A failed
	// embedder leaves the embedding nil and the check falls back to rating
	// variance, so the score stays meaningful on degraded records.
	consistency := neutralConsistency
	var embedding []float64
	if !opts.SkipEmbeddings {
		var embedErr error
		embedding, embedErr = v.embedder.Embed(ctx, text)
		if embedErr != nil {
			embedding = nil
			flags = append(flags, model.Flag{
				Type:     "embedding_failure",
				Severity: model.SeverityCritical,
				Message:  "embedding computation failed; record rejected pending retry",
				Details:  map[string]any{"error": embedErr.Error()},
			})
		}
	}
	if !opts.SkipConsistencyCheck {
		var consistencyFlags []model.Flag
		consistency, consistencyFlags = scoreConsistency(sub, embedding, opts.PreviousReferences, v.consistencyThreshold)
		flags = append(flags, consistencyFlags...)
	}

	// 4. Fraud heuristics.
	fraudScore, fraudFlags := scoreFraud(sub, text, dims, opts.PreviousReferences)
	flags = append(flags, fraudFlags...)

	// 5. Blended confidence.
	confidence := clamp01(consistencyWeight*consistency + dimensionWeight*meanDimensionConfidence(dims))

	// 6. Threshold-driven status decision.
	status := v.decideStatus(fraudScore, consistency, flags)

	elapsed := v.now().Sub(start)
	rec := &model.ValidatedReference{
		ID:                   uuid.NewString(),
		OwnerID:              sub.OwnerID,
		ReferrerEmail:        sub.ReferrerEmail,
		StandardizedText:     text,
		StructuredDimensions: dims,
		ConsistencyScore:     consistency,
		FraudScore:           fraudScore,
		Confidence:           confidence,
		ValidationStatus:     status,
		Flags:                flags,
		EmbeddingVector:      embedding,
		Metadata: model.Metadata{
			Version:          model.SchemaVersion,
			Timestamp:        v.now().UTC().Format(time.RFC3339),
			TextLength:       len(text),
			KPICount:         len(sub.KPIRatings),
			HasEmbedding:     len(embedding) > 0,
			ProcessingTimeMS: elapsed.Milliseconds(),
		},
	}
	return rec
}

// decideStatus applies the documented precedence: fraud, then critical flags,
// then consistency, then warnings.
func (v *Validator) decideStatus(fraudScore int, consistency float64, flags []model.Flag) model.ValidationStatus {
	if fraudScore >= v.fraudThreshold {
		return model.StatusRejectedHighFraudRisk
	}
	critical := false
	nonCritical := false
	for _, f := range flags {
		if f.Severity == model.SeverityCritical {
			critical = true
		} else {
			nonCritical = true
		}
	}
	if critical {
		return model.StatusRejectedCriticalIssues
	}
	if consistency < v.consistencyThreshold {
		return model.StatusRejectedInconsistent
	}
	if nonCritical {
		return model.StatusApprovedWithWarnings
	}
	return model.StatusApproved
}

func meanDimensionConfidence(dims map[string]model.Dimension) float64 {
	if len(dims) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range dims {
		sum += d.Confidence
	}
	return sum / float64(len(dims))
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

func clampInt(x, lo, hi int) int {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}
