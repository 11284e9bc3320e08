// Package pricing maps a normalized candidate score to a USD access price.
package pricing

import "math"

// Default pricing curve parameters.
const (
	defaultMinPriceUsd = 10.0
	defaultMaxPriceUsd = 500.0

	// defaultCurveExponent shapes the power curve. Values above 1 keep
	// mid-range scores cheap and reserve the top prices for top scores.
	defaultCurveExponent = 1.5
)

// Option applies a configuration option to the Pricer.
type Option func(*Pricer)

// WithBounds sets the price range of the curve.
func WithBounds(minPrice, maxPrice float64) Option {
	return func(p *Pricer) {
		if minPrice >= 0 && maxPrice >= minPrice {
			p.minPriceUsd = minPrice
			p.maxPriceUsd = maxPrice
		}
	}
}

// WithCurveExponent sets the power-curve exponent. Must be positive to keep
// the curve monotonic.
func WithCurveExponent(exp float64) Option {
	return func(p *Pricer) {
		if exp > 0 {
			p.exponent = exp
		}
	}
}

// Result pairs the input score with the derived price so callers can audit
// pricing from the score alone.
type Result struct {
	NormalizedScore float64 `json:"normalized_score"`
	PriceUsd        float64 `json:"price_usd"`
}

// Pricer computes prices on a pure, deterministic power curve:
//
//	price = min + (max-min) * score^exponent, score clamped to [0,1]
//
// The curve is monotonically non-decreasing over [0,1] and maps its endpoints
// to exactly [minPriceUsd, maxPriceUsd].
type Pricer struct {
	minPriceUsd float64
	maxPriceUsd float64
	exponent    float64
}

// New creates a Pricer with configuration options.
func New(opts ...Option) *Pricer {
	p := &Pricer{
		minPriceUsd: defaultMinPriceUsd,
		maxPriceUsd: defaultMaxPriceUsd,
		exponent:    defaultCurveExponent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PriceFor evaluates the curve at the given normalized score.
func (p *Pricer) PriceFor(normalizedScore float64) Result {
	s := normalizedScore
	switch {
	case s < 0 || math.IsNaN(s):
		s = 0
	case s > 1:
		s = 1
	}
	price := p.minPriceUsd + (p.maxPriceUsd-p.minPriceUsd)*math.Pow(s, p.exponent)
	return Result{NormalizedScore: normalizedScore, PriceUsd: price}
}

// Bounds exposes the configured price range.
func (p *Pricer) Bounds() (minPrice, maxPrice float64) {
	return p.minPriceUsd, p.maxPriceUsd
}
