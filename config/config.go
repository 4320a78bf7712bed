// SPDX-License-Identifier: MIT

// Package config provides layered configuration for cmd/lambdag, grounded
// in junjiewwang-perf-analysis/pkg/config's viper-backed, mapstructure-tagged
// Config struct: flags override environment, environment overrides a
// config file, a config file overrides the defaults below.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything cmd/lambdag needs to parse a source file and
// reduce it.
type Config struct {
	Reduce ReduceConfig `mapstructure:"reduce"`
	Log    LogConfig    `mapstructure:"log"`
}

// ReduceConfig controls how a term is reduced.
type ReduceConfig struct {
	// Mode is "whnf" or "norm".
	Mode string `mapstructure:"mode"`
	// UnfoldRefs enables resolving Ref nodes against a definitions file
	// during reduction instead of treating them as opaque values.
	UnfoldRefs bool `mapstructure:"unfold_refs"`
	// DefsFile is the path to a definitions source file, required when
	// UnfoldRefs is set.
	DefsFile string `mapstructure:"defs_file"`
	// MaxSteps bounds a single reduction call's work. Zero means use the
	// engine's built-in default.
	MaxSteps int `mapstructure:"max_steps"`
}

// LogConfig controls internal/obs's output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load builds a Config from (in ascending priority) built-in defaults, an
// optional config file, environment variables prefixed LAMBDAG_, and
// finally whatever the caller has already set on v via pflag bindings.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("lambdag")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reduce.mode", "norm")
	v.SetDefault("reduce.unfold_refs", false)
	v.SetDefault("reduce.max_steps", 0)
	v.SetDefault("log.level", "info")
}

// Validate rejects configurations the CLI has no sensible way to act on.
func (c *Config) Validate() error {
	switch c.Reduce.Mode {
	case "whnf", "norm":
	default:
		return fmt.Errorf("reduce.mode must be \"whnf\" or \"norm\", got %q", c.Reduce.Mode)
	}
	if c.Reduce.UnfoldRefs && c.Reduce.DefsFile == "" {
		return fmt.Errorf("reduce.unfold_refs requires reduce.defs_file")
	}
	return nil
}
