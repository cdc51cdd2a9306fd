package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
)

// Config holds the normalization settings
type Config struct {
	// Workers is the pool size; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// QualityThreshold enables the sentence filter when > 0.
	QualityThreshold float64 `yaml:"quality_threshold"`
	DotInvocation    bool    `yaml:"dot_invocation"`
	// KeepEmpty retains records that end up without text.
	KeepEmpty bool `yaml:"keep_empty"`
}

// Default returns the default configuration: every optional stage off.
func Default() *Config {
	return &Config{}
}

// Load reads a YAML config. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Environment variables read by ApplyEnv
const (
	EnvWorkers          = "DOCNORM_WORKERS"
	EnvQualityThreshold = "DOCNORM_QUALITY_THRESHOLD"
	EnvDotInvocation    = "DOCNORM_DOT_INVOCATION"
	EnvKeepEmpty        = "DOCNORM_KEEP_EMPTY"
)

// ApplyEnv overlays DOCNORM_* variables, loading .env files first when
// present. Unparsable values are ignored.
func (c *Config) ApplyEnv(envFiles ...string) {
	_ = godotenv.Load(envFiles...)

	c.Workers = getEnvInt(EnvWorkers, c.Workers)
	c.QualityThreshold = getEnvFloat(EnvQualityThreshold, c.QualityThreshold)
	c.DotInvocation = getEnvBool(EnvDotInvocation, c.DotInvocation)
	c.KeepEmpty = getEnvBool(EnvKeepEmpty, c.KeepEmpty)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d: %w", c.Workers, internalerr.ErrInvalidConfig)
	}
	if c.QualityThreshold < 0 || c.QualityThreshold > 1 {
		return fmt.Errorf("quality_threshold must be in [0,1], got %g: %w", c.QualityThreshold, internalerr.ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
