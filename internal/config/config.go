// Package config defines the tunable knobs for the matcher, inference
// engine, and attention bank, with sensible defaults and optional
// environment/file overrides loaded via viper and godotenv — the same
// config-with-defaults idiom the teacher's cognitive.DefaultConfig
// follows, generalized from engine-sharding knobs to these three.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ECANConfig tunes the economic attention bank.
type ECANConfig struct {
	InitialSTIFunds     float64
	InitialLTIFunds     float64
	AFBoundary          float64
	ForgettingThreshold float64
	RentRate            float64
	WageRate            float64
	SpreadRate          float64
	AgeRate             float64
}

// DefaultECANConfig returns the bank's default tuning: rates chosen so
// update_cycle leaves total system STI non-increasing absent explicit
// top-ups, and spread_activation strictly conserves STI.
func DefaultECANConfig() ECANConfig {
	return ECANConfig{
		InitialSTIFunds:     10000,
		InitialLTIFunds:     10000,
		AFBoundary:          100,
		ForgettingThreshold: 0,
		RentRate:            0.01,
		WageRate:            1.0,
		SpreadRate:          0.1,
		AgeRate:             0.1,
	}
}

// MatcherConfig tunes a pattern-matcher run.
type MatcherConfig struct {
	MaxResults         int
	Trace              bool
	DeterministicOrder bool
}

// DefaultMatcherConfig returns deterministic ordering on, no cap, no
// tracing.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{DeterministicOrder: true}
}

// InferenceConfig bounds a forward- or backward-chaining run.
type InferenceConfig struct {
	MaxIterations int
	Epsilon       float64
	Deadline      time.Duration
}

// DefaultInferenceConfig returns a modest iteration cap, a 1e-4
// convergence tolerance, and no deadline.
func DefaultInferenceConfig() InferenceConfig {
	return InferenceConfig{MaxIterations: 100, Epsilon: 1e-4}
}

// Settings bundles the three config structs plus any environment/file
// overrides layered on top via viper.
type Settings struct {
	ECAN      ECANConfig
	Matcher   MatcherConfig
	Inference InferenceConfig
}

// Load builds Settings from compiled-in defaults, an optional .env
// file (loaded via godotenv — missing file is not an error), and a
// fixed set of HYPERSPACE_-prefixed environment variables read via
// viper (ECAN_AF_BOUNDARY, ECAN_RENT_RATE, ECAN_WAGE_RATE,
// ECAN_SPREAD_RATE, INFERENCE_MAX_ITERATIONS, MATCHER_MAX_RESULTS);
// other variables with that prefix are ignored. This configures
// tuning constants only; it never reads or writes atom data.
func Load(envFile string) Settings {
	if envFile != "" {
		_ = godotenv.Load(envFile) // absence of a .env file is not an error
	}

	v := viper.New()
	v.SetEnvPrefix("HYPERSPACE")
	v.AutomaticEnv()

	settings := Settings{
		ECAN:      DefaultECANConfig(),
		Matcher:   DefaultMatcherConfig(),
		Inference: DefaultInferenceConfig(),
	}

	if v.IsSet("ecan_af_boundary") {
		settings.ECAN.AFBoundary = v.GetFloat64("ecan_af_boundary")
	}
	if v.IsSet("ecan_rent_rate") {
		settings.ECAN.RentRate = v.GetFloat64("ecan_rent_rate")
	}
	if v.IsSet("ecan_wage_rate") {
		settings.ECAN.WageRate = v.GetFloat64("ecan_wage_rate")
	}
	if v.IsSet("ecan_spread_rate") {
		settings.ECAN.SpreadRate = v.GetFloat64("ecan_spread_rate")
	}
	if v.IsSet("inference_max_iterations") {
		settings.Inference.MaxIterations = v.GetInt("inference_max_iterations")
	}
	if v.IsSet("matcher_max_results") {
		settings.Matcher.MaxResults = v.GetInt("matcher_max_results")
	}

	return settings
}
