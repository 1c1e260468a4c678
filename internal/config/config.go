// Package config provides configuration management for the scrutin pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSources                = errors.New("at least one source is required")
	ErrSourceMissingChamber     = errors.New("chamber is required")
	ErrSourceMissingLegislature = errors.New("legislature is required")
	ErrSourceMissingScrutins    = errors.New("either scrutins_url or scrutins_file is required")
	ErrNoEnabledSources         = errors.New("at least one source must be enabled")
	ErrInvalidLimit             = errors.New("limit must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingDataDir           = errors.New("output.data_dir is required")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// PipelineConfig contains pipeline-wide settings.
type PipelineConfig struct {
	Sources  []SourceConfig `yaml:"sources"`
	CacheDir string         `yaml:"cache_dir"`
	Limit    int            `yaml:"limit"`
	Output   OutputConfig   `yaml:"output"`
	Retry    RetryPolicy    `yaml:"retry"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SourceConfig describes one chamber's published archives. The scrutin
// archive and the actor/organ registry archive are each located either
// via a URL (fetched once and cached) or a local file path.
type SourceConfig struct {
	Chamber      string `yaml:"chamber"`
	Legislature  string `yaml:"legislature"`
	ScrutinsURL  string `yaml:"scrutins_url"`
	ScrutinsFile string `yaml:"scrutins_file"`
	RegistryURL  string `yaml:"registry_url"`
	RegistryFile string `yaml:"registry_file"`
	Enabled      bool   `yaml:"enabled"`
}

// RetryPolicy defines download retry behavior. Retries apply to the
// network layer only; the parsing pipeline never retries.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines where the exported artifacts land.
type OutputConfig struct {
	DataDir    string `yaml:"data_dir"`
	ThemesFile string `yaml:"themes_file"`
	ReportFile string `yaml:"report_file"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultRetryPolicy returns the retry policy applied when the config
// file leaves the retry section empty.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    500,
		MaxDelayMs:        30000,
		BackoffMultiplier: 2.0,
		TimeoutSec:        120,
	}
}

// LoadConfig loads configuration from a YAML file, applies defaults for
// omitted sections and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	p := &c.Pipeline

	if p.CacheDir == "" {
		p.CacheDir = ".cache"
	}

	if p.Limit == 0 {
		p.Limit = 100
	}

	if p.Output.DataDir == "" {
		p.Output.DataDir = "data"
	}

	if p.Output.ThemesFile == "" {
		p.Output.ThemesFile = filepath.Join(p.Output.DataDir, "themes.json")
	}

	if (p.Retry == RetryPolicy{}) {
		p.Retry = DefaultRetryPolicy()
	}

	if p.Logging.Level == "" {
		p.Logging.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	p := &c.Pipeline

	if len(p.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0

	for i, src := range p.Sources {
		if src.Chamber == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingChamber, i)
		}

		if src.Legislature == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingLegislature, i)
		}

		if src.ScrutinsURL == "" && src.ScrutinsFile == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingScrutins, i)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if p.Limit < 1 {
		return ErrInvalidLimit
	}

	if p.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if p.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if p.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if p.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if p.Output.DataDir == "" {
		return ErrMissingDataDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[p.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Pipeline.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// ScrutinsCachePath returns where the source's scrutin archive lives
// locally: the configured file if any, else a cache location.
func (c *Config) ScrutinsCachePath(src SourceConfig) string {
	if src.ScrutinsFile != "" {
		return src.ScrutinsFile
	}

	return filepath.Join(c.Pipeline.CacheDir, src.Chamber, "scrutins.zip")
}

// RegistryCachePath returns where the source's actor/organ registry
// archive lives locally, or "" when the source configures none.
func (c *Config) RegistryCachePath(src SourceConfig) string {
	if src.RegistryFile != "" {
		return src.RegistryFile
	}

	if src.RegistryURL == "" {
		return ""
	}

	return filepath.Join(c.Pipeline.CacheDir, src.Chamber, "registry.zip")
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, Limit: %d, DataDir: %s}",
		len(c.Pipeline.Sources),
		c.Pipeline.Limit,
		c.Pipeline.Output.DataDir,
	)
}
