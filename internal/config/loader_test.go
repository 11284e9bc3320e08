package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		os.Unsetenv("HRKEY_CONFIG")

		cfg, err := Load(context.Background())

		Convey("Then defaults should be returned", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.FraudThreshold, ShouldEqual, 70)
			So(cfg.PlatformSharePct, ShouldEqual, 0.4)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("HRKEY_ADDR", ":7070")
		t.Setenv("HRKEY_LOG_LEVEL", "debug")
		t.Setenv("HRKEY_FRAUD_THRESHOLD", "85")
		t.Setenv("HRKEY_FX_RATE_USD_TO_HRK", "12.5")

		cfg, err := Load(context.Background())

		Convey("Then env values should win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.FraudThreshold, ShouldEqual, 85)
			So(cfg.FxRateUsdToHrk, ShouldEqual, 12.5)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		yaml := "addr: \":6060\"\nqueue_size: 500\nconsistency_threshold: 0.25\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("HRKEY_CONFIG", path)

		cfg, err := Load(context.Background())

		Convey("Then file values should override defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.QueueSize, ShouldEqual, 500)
			So(cfg.ConsistencyThreshold, ShouldEqual, 0.25)
		})

		Convey("And env should override the file", func() {
			t.Setenv("HRKEY_ADDR", ":6061")
			cfg, err := Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6061")
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("HRKEY_CONFIG", "/nonexistent/config.yaml")

		_, err := Load(context.Background())

		Convey("Then loading should fail", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadInvariantViolations(t *testing.T) {
	Convey("Given invariant-violating overrides", t, func() {
		// Convey re-runs this closure for every leaf, but t.Setenv from a
		// previous leaf persists until the test function ends. Clear the
		// variables here so each scenario sees only its own overrides.
		for _, key := range []string{
			"HRKEY_CONFIG",
			"HRKEY_ADDR",
			"HRKEY_FRAUD_THRESHOLD",
			"HRKEY_PLATFORM_SHARE_PCT",
			"HRKEY_REFERENCE_SHARE_PCT",
			"HRKEY_CANDIDATE_SHARE_PCT",
			"HRKEY_MIN_PRICE_USD",
			"HRKEY_MAX_PRICE_USD",
			"HRKEY_FX_RATE_USD_TO_HRK",
		} {
			os.Unsetenv(key)
		}

		Convey("When addr is empty", func() {
			t.Setenv("HRKEY_ADDR", "")
			// koanf treats the empty env value as unset, so force it via file.
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), ShouldBeNil)
			t.Setenv("HRKEY_CONFIG", path)

			_, err := Load(context.Background())
			So(errors.Is(err, ErrEmptyAddr), ShouldBeTrue)
		})

		Convey("When the fraud threshold is out of range", func() {
			t.Setenv("HRKEY_FRAUD_THRESHOLD", "250")
			_, err := Load(context.Background())
			So(errors.Is(err, ErrInvalidThreshold), ShouldBeTrue)
		})

		Convey("When shares do not sum to 1.0", func() {
			t.Setenv("HRKEY_PLATFORM_SHARE_PCT", "0.5")
			t.Setenv("HRKEY_REFERENCE_SHARE_PCT", "0.3")
			t.Setenv("HRKEY_CANDIDATE_SHARE_PCT", "0.3")
			_, err := Load(context.Background())
			So(errors.Is(err, ErrInvalidShares), ShouldBeTrue)
		})

		Convey("When price bounds are inverted", func() {
			t.Setenv("HRKEY_MIN_PRICE_USD", "100")
			t.Setenv("HRKEY_MAX_PRICE_USD", "50")
			_, err := Load(context.Background())
			So(errors.Is(err, ErrInvalidBounds), ShouldBeTrue)
		})

		Convey("When the fx rate is non-positive", func() {
			t.Setenv("HRKEY_FX_RATE_USD_TO_HRK", "0")
			_, err := Load(context.Background())
			So(errors.Is(err, ErrInvalidBounds), ShouldBeTrue)
		})
	})
}
