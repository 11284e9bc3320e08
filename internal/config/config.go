// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with documented defaults.
// - Load() layers defaults, optional YAML file, and environment variables.
// - Invariant violations in loaded values fail loudly at startup.
package config

import (
	"runtime"
)

// Config contains process configuration. Every field has a documented default
// and may be overridden via file or environment.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file for reference rows and snapshots.
	DBPath string `koanf:"db_path"`

	// QueueSize bounds the in-memory validation job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of validation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// EvalTimeoutMS bounds reference-row fetches during candidate evaluation.
	EvalTimeoutMS int `koanf:"eval_timeout_ms"`

	// BatchParallelism bounds concurrent candidates during batch recalculation.
	BatchParallelism int `koanf:"batch_parallelism"`

	// FraudThreshold is the fraud score (0-100) at or above which a
	// submission is rejected as high fraud risk.
	FraudThreshold int `koanf:"fraud_threshold"`

	// ConsistencyThreshold is the consistency score (0-1) below which a
	// submission is rejected as inconsistent.
	ConsistencyThreshold float64 `koanf:"consistency_threshold"`

	// SkipEmbeddings disables embedding computation fleet-wide, bounding
	// worst-case validation latency.
	SkipEmbeddings bool `koanf:"skip_embeddings"`

	// SkipConsistencyCheck disables cross-reference consistency scoring
	// fleet-wide.
	SkipConsistencyCheck bool `koanf:"skip_consistency_check"`

	// MinPriceUsd and MaxPriceUsd bound the dynamic pricing curve.
	MinPriceUsd float64 `koanf:"min_price_usd"`
	MaxPriceUsd float64 `koanf:"max_price_usd"`

	// MinTokens and MaxTokens clamp converted token amounts. A non-positive
	// MaxTokens means unbounded above.
	MinTokens float64 `koanf:"min_tokens"`
	MaxTokens float64 `koanf:"max_tokens"`

	// BoostWeight scales how strongly the HRScore boost lifts staking APR.
	BoostWeight float64 `koanf:"boost_weight"`

	// FxRateUsdToHrk converts a USD price into HRK tokens.
	FxRateUsdToHrk float64 `koanf:"fx_rate_usd_to_hrk"`

	// PlatformSharePct, ReferenceSharePct and CandidateSharePct split a USD
	// price across stakeholders. They must sum to 1.0.
	PlatformSharePct  float64 `koanf:"platform_share_pct"`
	ReferenceSharePct float64 `koanf:"reference_share_pct"`
	CandidateSharePct float64 `koanf:"candidate_share_pct"`

	// BaseStakingApr is the unboosted annual staking rate.
	BaseStakingApr float64 `koanf:"base_staking_apr"`

	// DefaultLockMonths is the staking lock period used when callers do not
	// override it.
	DefaultLockMonths int `koanf:"default_lock_months"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		DBPath:               "data/refcore.db",
		QueueSize:            10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           100_000,
		MaxLeaderboardLimit:  100,
		EvalTimeoutMS:        5_000,
		BatchParallelism:     4,
		FraudThreshold:       70,
		ConsistencyThreshold: 0.4,
		SkipEmbeddings:       false,
		SkipConsistencyCheck: false,
		MinPriceUsd:          10,
		MaxPriceUsd:          500,
		MinTokens:            0,
		MaxTokens:            1_000_000,
		BoostWeight:          0.5,
		FxRateUsdToHrk:       10,
		PlatformSharePct:     0.4,
		ReferenceSharePct:    0.4,
		CandidateSharePct:    0.2,
		BaseStakingApr:       0.12,
		DefaultLockMonths:    12,
	}
}
