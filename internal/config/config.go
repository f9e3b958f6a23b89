// Package config resolves the CLI's tunables (window size, oracle
// choice, output format, log level) from flags, environment
// variables, and defaults, in that precedence order.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default values used when neither a flag nor an environment variable
// supplies one, per spec §6 ("k defaulting to 3").
const (
	DefaultK      = 3
	DefaultOracle = "de_facto"
	DefaultFormat = "text"
	DefaultLevel  = "info"
)

// Config is the fully resolved set of knobs cmd/ktestable needs to run
// one `learn` invocation.
type Config struct {
	K        int
	Oracle   string
	Format   string
	LogLevel string
}

// Resolve builds a Config from explicit flag values (zero value means
// "flag not set") and environment variables KTESTABLE_K,
// KTESTABLE_ORACLE, KTESTABLE_LOG_LEVEL, falling back to defaults.
// Precedence: flag > env var > default.
func Resolve(flagK int, flagOracle, flagFormat, flagLogLevel string) (Config, error) {
	cfg := Config{
		K:        DefaultK,
		Oracle:   DefaultOracle,
		Format:   DefaultFormat,
		LogLevel: DefaultLevel,
	}

	if v, ok := os.LookupEnv("KTESTABLE_K"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("KTESTABLE_K=%q is not an integer: %w", v, err)
		}
		cfg.K = n
	}
	if v, ok := os.LookupEnv("KTESTABLE_ORACLE"); ok {
		cfg.Oracle = v
	}
	if v, ok := os.LookupEnv("KTESTABLE_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	if flagK != 0 {
		cfg.K = flagK
	}
	if flagOracle != "" {
		cfg.Oracle = flagOracle
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	if cfg.Oracle != "de_facto" && cfg.Oracle != "graph" {
		return Config{}, fmt.Errorf("unknown oracle %q: want \"de_facto\" or \"graph\"", cfg.Oracle)
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		return Config{}, fmt.Errorf("unknown format %q: want \"text\" or \"json\"", cfg.Format)
	}
	if cfg.K < 2 {
		return Config{}, fmt.Errorf("k must be >= 2, got %d", cfg.K)
	}

	return cfg, nil
}
