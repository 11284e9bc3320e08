// Package tokenomics converts USD prices to HRK token amounts, splits
// revenue between platform participants, and estimates staking rewards.
//
// All computations are previews: nothing here touches a ledger or a chain.
package tokenomics

import (
	"fmt"
	"math"
)

// Default economic parameters.
const (
	defaultFxRateUsdToHrk = 10.0

	defaultPlatformSharePct  = 0.40
	defaultReferenceSharePct = 0.40
	defaultCandidateSharePct = 0.20

	defaultBaseStakingApr    = 0.12
	defaultLockPeriodMonths  = 12
	defaultBoostWeight       = 0.5
	defaultMinTokens         = 0.0
	defaultMaxTokens         = 1_000_000.0
	shareSumTolerance        = 1e-9
	splitTotalTolerance      = 1e-6
	monthsPerYear            = 12.0
	percentScale             = 100.0
	basisPointsDen           = 10_000.0
)

// On-chain distribution constants in basis points. These describe the split
// a settlement contract would apply and are surfaced for display only; the
// preview split above is authoritative for off-chain accounting.
const (
	OnChainReferrerBps  = 6000
	OnChainCandidateBps = 2000
	OnChainPlatformBps  = 1500
	OnChainTreasuryBps  = 500
)

// Config carries every tunable of the tokenomics engine.
type Config struct {
	FxRateUsdToHrk float64

	PlatformSharePct  float64
	ReferenceSharePct float64
	CandidateSharePct float64

	BaseStakingApr   float64
	LockPeriodMonths int
	BoostWeight      float64

	MinTokens float64
	MaxTokens float64
}

// DefaultConfig returns the standard economic parameters.
func DefaultConfig() Config {
	return Config{
		FxRateUsdToHrk:    defaultFxRateUsdToHrk,
		PlatformSharePct:  defaultPlatformSharePct,
		ReferenceSharePct: defaultReferenceSharePct,
		CandidateSharePct: defaultCandidateSharePct,
		BaseStakingApr:    defaultBaseStakingApr,
		LockPeriodMonths:  defaultLockPeriodMonths,
		BoostWeight:       defaultBoostWeight,
		MinTokens:         defaultMinTokens,
		MaxTokens:         defaultMaxTokens,
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfig replaces the entire configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithFxRate overrides the USD-to-HRK conversion rate.
func WithFxRate(rate float64) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.cfg.FxRateUsdToHrk = rate
		}
	}
}

// WithShares overrides the revenue split percentages.
func WithShares(platform, reference, candidate float64) Option {
	return func(e *Engine) {
		e.cfg.PlatformSharePct = platform
		e.cfg.ReferenceSharePct = reference
		e.cfg.CandidateSharePct = candidate
	}
}

// WithStaking overrides the staking parameters.
func WithStaking(baseApr float64, lockMonths int, boostWeight float64) Option {
	return func(e *Engine) {
		e.cfg.BaseStakingApr = baseApr
		e.cfg.LockPeriodMonths = lockMonths
		e.cfg.BoostWeight = boostWeight
	}
}

// Conversion is the result of a USD-to-HRK conversion. RawTokens is the
// exact product; ClampedTokens is RawTokens bounded to the configured range.
type Conversion struct {
	AmountUsd     float64 `json:"amount_usd"`
	FxRate        float64 `json:"fx_rate"`
	RawTokens     float64 `json:"raw_tokens"`
	ClampedTokens float64 `json:"clamped_tokens"`
}

// Split is a three-way revenue distribution. The share amounts always sum
// back to TotalTokens within a small floating-point tolerance.
type Split struct {
	TotalTokens     float64 `json:"total_tokens"`
	PlatformTokens  float64 `json:"platform_tokens"`
	ReferenceTokens float64 `json:"reference_tokens"`
	CandidateTokens float64 `json:"candidate_tokens"`

	PlatformPct  float64 `json:"platform_pct"`
	ReferencePct float64 `json:"reference_pct"`
	CandidatePct float64 `json:"candidate_pct"`
}

// RevenueSplit is the USD-denominated three-way distribution of a price,
// taken before any token conversion or clamp. The parts always reconstruct
// TotalUsd within a small floating-point tolerance.
type RevenueSplit struct {
	TotalUsd         float64 `json:"total_usd"`
	PlatformUsd      float64 `json:"platform_usd"`
	ReferencePoolUsd float64 `json:"reference_pool_usd"`
	CandidateUsd     float64 `json:"candidate_usd"`

	PlatformPct  float64 `json:"platform_pct"`
	ReferencePct float64 `json:"reference_pct"`
	CandidatePct float64 `json:"candidate_pct"`
}

// StakingEstimate projects rewards for locking tokens over the configured
// period. EffectiveApr folds the score boost into the base APR.
type StakingEstimate struct {
	StakedTokens     float64 `json:"staked_tokens"`
	BaseApr          float64 `json:"base_apr"`
	EffectiveApr     float64 `json:"effective_apr"`
	LockPeriodMonths int     `json:"lock_period_months"`
	ProjectedRewards float64 `json:"projected_rewards"`
}

// OnChainSplit is the display-only distribution a settlement contract would
// apply, derived from the basis-point constants.
type OnChainSplit struct {
	ReferrerTokens  float64 `json:"referrer_tokens"`
	CandidateTokens float64 `json:"candidate_tokens"`
	PlatformTokens  float64 `json:"platform_tokens"`
	TreasuryTokens  float64 `json:"treasury_tokens"`
}

// Engine implements the tokenomics computations over one Config.
type Engine struct {
	cfg Config
}

// New constructs an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Convert computes the HRK token amount for a USD price.
func (e *Engine) Convert(amountUsd float64) (Conversion, error) {
	if amountUsd < 0 || math.IsNaN(amountUsd) {
		return Conversion{}, fmt.Errorf("%w: amount %v", ErrInvalidAmount, amountUsd)
	}
	raw := amountUsd * e.cfg.FxRateUsdToHrk
	clamped := raw
	if clamped < e.cfg.MinTokens {
		clamped = e.cfg.MinTokens
	}
	if clamped > e.cfg.MaxTokens {
		clamped = e.cfg.MaxTokens
	}
	return Conversion{
		AmountUsd:     amountUsd,
		FxRate:        e.cfg.FxRateUsdToHrk,
		RawTokens:     raw,
		ClampedTokens: clamped,
	}, nil
}

// SplitRevenue distributes a token total across platform, reference owner
// and candidate. It refuses to split when the configured shares do not sum
// to 1, so a misconfiguration can never silently mint or burn tokens.
func (e *Engine) SplitRevenue(totalTokens float64) (Split, error) {
	platform, reference, candidate, err := e.shareParts(totalTokens)
	if err != nil {
		return Split{}, err
	}
	return Split{
		TotalTokens:     totalTokens,
		PlatformTokens:  platform,
		ReferenceTokens: reference,
		CandidateTokens: candidate,
		PlatformPct:     e.cfg.PlatformSharePct * percentScale,
		ReferencePct:    e.cfg.ReferenceSharePct * percentScale,
		CandidatePct:    e.cfg.CandidateSharePct * percentScale,
	}, nil
}

// SplitRevenueUsd distributes a USD price across platform, reference owner
// and candidate. It operates on the price directly, so the parts sum back to
// the full priceUsd even when the token conversion clamps.
func (e *Engine) SplitRevenueUsd(priceUsd float64) (RevenueSplit, error) {
	platform, reference, candidate, err := e.shareParts(priceUsd)
	if err != nil {
		return RevenueSplit{}, err
	}
	return RevenueSplit{
		TotalUsd:         priceUsd,
		PlatformUsd:      platform,
		ReferencePoolUsd: reference,
		CandidateUsd:     candidate,
		PlatformPct:      e.cfg.PlatformSharePct * percentScale,
		ReferencePct:     e.cfg.ReferenceSharePct * percentScale,
		CandidatePct:     e.cfg.CandidateSharePct * percentScale,
	}, nil
}

// shareParts applies the configured shares to a total in whatever unit the
// caller passes. The candidate takes the remainder so the three parts
// reconstruct the total exactly even when the products round.
func (e *Engine) shareParts(total float64) (platform, reference, candidate float64, err error) {
	if total < 0 || math.IsNaN(total) {
		return 0, 0, 0, fmt.Errorf("%w: total %v", ErrInvalidAmount, total)
	}
	sum := e.cfg.PlatformSharePct + e.cfg.ReferenceSharePct + e.cfg.CandidateSharePct
	if math.Abs(sum-1) > shareSumTolerance {
		return 0, 0, 0, fmt.Errorf("%w: shares sum to %v", ErrSharesNotUnity, sum)
	}
	platform = total * e.cfg.PlatformSharePct
	reference = total * e.cfg.ReferenceSharePct
	candidate = total - platform - reference
	return platform, reference, candidate, nil
}

// EstimateStakingRewards projects rewards over the lock period. scoreBoost
// is a normalized score in [0,1]; higher scores earn a higher effective APR.
func (e *Engine) EstimateStakingRewards(stakedTokens, scoreBoost float64) (StakingEstimate, error) {
	if stakedTokens < 0 || math.IsNaN(stakedTokens) {
		return StakingEstimate{}, fmt.Errorf("%w: stake %v", ErrInvalidAmount, stakedTokens)
	}
	boost := scoreBoost
	switch {
	case boost < 0 || math.IsNaN(boost):
		boost = 0
	case boost > 1:
		boost = 1
	}

	effectiveApr := e.cfg.BaseStakingApr * (1 + e.cfg.BoostWeight*boost)
	rewards := stakedTokens * effectiveApr * float64(e.cfg.LockPeriodMonths) / monthsPerYear

	return StakingEstimate{
		StakedTokens:     stakedTokens,
		BaseApr:          e.cfg.BaseStakingApr,
		EffectiveApr:     effectiveApr,
		LockPeriodMonths: e.cfg.LockPeriodMonths,
		ProjectedRewards: rewards,
	}, nil
}

// OnChainPreview derives the display-only settlement split from the
// basis-point constants.
func (e *Engine) OnChainPreview(totalTokens float64) OnChainSplit {
	return OnChainSplit{
		ReferrerTokens:  totalTokens * OnChainReferrerBps / basisPointsDen,
		CandidateTokens: totalTokens * OnChainCandidateBps / basisPointsDen,
		PlatformTokens:  totalTokens * OnChainPlatformBps / basisPointsDen,
		TreasuryTokens:  totalTokens * OnChainTreasuryBps / basisPointsDen,
	}
}
