package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a regression run.
type Config struct {
	LearningRate      float64 `yaml:"learning_rate"`
	Steps             int     `yaml:"steps"`
	Size              int     `yaml:"size"`
	FeatureUpperBound float64 `yaml:"feature_upper_bound"`
	NoiseUpperBound   float64 `yaml:"noise_upper_bound"`
	TrueSlope         float64 `yaml:"true_slope"`
	TrueIntercept     float64 `yaml:"true_intercept"`
	InitialSlope      float64 `yaml:"initial_slope"`
	InitialIntercept  float64 `yaml:"initial_intercept"`
	Seed              int64   `yaml:"seed"`
	Workers           int     `yaml:"workers"`
	Tolerance         float64 `yaml:"tolerance"`
	LogEvery          int     `yaml:"log_every"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	LearningRate float64
	Steps        int
	Size         int
	Seed         int64
	Workers      int
	Tolerance    float64
	LogEvery     int
}

// Default returns the reference configuration. Running with it reproduces
// the canonical demo: 2000 samples of y = 4x + 2 plus one-sided noise,
// descended for 100000 steps.
func Default() *Config {
	return &Config{
		LearningRate:      0.001,
		Steps:             100000,
		Size:              2000,
		FeatureUpperBound: 20,
		NoiseUpperBound:   1,
		TrueSlope:         4,
		TrueIntercept:     2,
		InitialSlope:      1,
		InitialIntercept:  0,
		Seed:              42,
		Workers:           1,
		Tolerance:         0,
		LogEvery:          10000,
	}
}

// Load reads a Config from YAML, layered over the defaults so that absent
// keys keep their reference values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Steps > 0 {
		c.Steps = o.Steps
	}
	if o.Size > 0 {
		c.Size = o.Size
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.Tolerance > 0 {
		c.Tolerance = o.Tolerance
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be > 0 (got %d)", c.Steps)
	}
	if c.Size <= 0 {
		return fmt.Errorf("size must be > 0 (got %d)", c.Size)
	}
	if c.FeatureUpperBound <= 0 {
		return fmt.Errorf("feature_upper_bound must be > 0 (got %g)", c.FeatureUpperBound)
	}
	if c.NoiseUpperBound < 0 {
		return fmt.Errorf("noise_upper_bound must be >= 0 (got %g)", c.NoiseUpperBound)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", c.Workers)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be >= 0 (got %g)", c.Tolerance)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 10000
	}
	return nil
}
