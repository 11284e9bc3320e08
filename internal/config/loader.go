package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// shareSumTolerance is the floating tolerance when checking that revenue
// shares sum to 1.0.
const shareSumTolerance = 1e-9

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if HRKEY_CONFIG is set
//  3. env (prefix HRKEY_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("HRKEY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: HRKEY_ADDR, HRKEY_QUEUE_SIZE, ...
	// Map env keys like HRKEY_QUEUE_SIZE -> queue_size (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("HRKEY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "hrkey_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations that would violate pipeline invariants.
// These are programming or deployment errors, not inputs to degrade on.
func (c *Config) validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	if c.FraudThreshold < 0 || c.FraudThreshold > 100 {
		return fmt.Errorf("%w: fraud_threshold %d outside [0,100]", ErrInvalidThreshold, c.FraudThreshold)
	}
	if c.ConsistencyThreshold < 0 || c.ConsistencyThreshold > 1 {
		return fmt.Errorf("%w: consistency_threshold %v outside [0,1]", ErrInvalidThreshold, c.ConsistencyThreshold)
	}
	if c.MinPriceUsd < 0 || c.MaxPriceUsd < c.MinPriceUsd {
		return fmt.Errorf("%w: price bounds [%v,%v]", ErrInvalidBounds, c.MinPriceUsd, c.MaxPriceUsd)
	}
	if c.MaxTokens > 0 && c.MaxTokens < c.MinTokens {
		return fmt.Errorf("%w: token bounds [%v,%v]", ErrInvalidBounds, c.MinTokens, c.MaxTokens)
	}
	if c.FxRateUsdToHrk <= 0 {
		return fmt.Errorf("%w: fx_rate_usd_to_hrk %v must be positive", ErrInvalidBounds, c.FxRateUsdToHrk)
	}
	sum := c.PlatformSharePct + c.ReferenceSharePct + c.CandidateSharePct
	if math.Abs(sum-1.0) > shareSumTolerance {
		return fmt.Errorf("%w: shares sum to %v, want 1.0", ErrInvalidShares, sum)
	}
	if c.BaseStakingApr < 0 {
		return fmt.Errorf("%w: base_staking_apr %v must not be negative", ErrInvalidBounds, c.BaseStakingApr)
	}
	if c.DefaultLockMonths < 1 {
		return fmt.Errorf("%w: default_lock_months %d must be positive", ErrInvalidBounds, c.DefaultLockMonths)
	}
	return nil
}
