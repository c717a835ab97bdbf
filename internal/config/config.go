// Package config loads and validates the optional .cargo-mcp YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultMaxOutput caps captured output when max_output is unset.
const DefaultMaxOutput = 1 << 20 // 1 MB

// Config holds the parsed .cargo-mcp configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int          `yaml:"version"`
	RawTimeout   string       `yaml:"timeout"`    // e.g. "5m", "30s"; empty means no timeout
	RawMaxOutput int          `yaml:"max_output"` // bytes per stream
	RawCargo     string       `yaml:"cargo"`      // cargo binary override
	Verify       VerifyConfig `yaml:"verify"`
}

// VerifyConfig defines the steps for the verify pipeline.
type VerifyConfig struct {
	Steps []string `yaml:"steps"` // default: [fmt, clippy, test]
}

// DefaultVerifySteps are used when no verify steps are configured.
var DefaultVerifySteps = []string{"fmt", "clippy", "test"}

// Timeout returns the configured timeout, or zero when none is set.
// No timeout is imposed by default; bounded latency is the caller's job.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// Cargo returns the configured cargo binary or "cargo".
func (c *Config) Cargo() string {
	if c.RawCargo != "" {
		return c.RawCargo
	}
	return "cargo"
}

// VerifySteps returns the configured verify steps, falling back to defaults.
func (c *Config) VerifySteps() []string {
	if len(c.Verify.Steps) > 0 {
		return c.Verify.Steps
	}
	return DefaultVerifySteps
}

// Load reads the .cargo-mcp file from dir. If no file exists, a default
// Config is returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ".cargo-mcp")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading .cargo-mcp: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .cargo-mcp: %w", err)
	}
	return cfg, nil
}
