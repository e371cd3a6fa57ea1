package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.001, cfg.LearningRate)
	assert.Equal(t, 100000, cfg.Steps)
	assert.Equal(t, 2000, cfg.Size)
	assert.Equal(t, 4.0, cfg.TrueSlope)
	assert.Equal(t, 2.0, cfg.TrueIntercept)
	assert.Equal(t, 1.0, cfg.InitialSlope)
	assert.Equal(t, 0.0, cfg.InitialIntercept)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 500\nseed: 7\ninitial_slope: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Steps)
	assert.Equal(t, int64(7), cfg.Seed)
	// explicit zero in the file wins over a non-zero default
	assert.Equal(t, 0.0, cfg.InitialSlope)
	// absent keys keep their defaults
	assert.Equal(t, 0.001, cfg.LearningRate)
	assert.Equal(t, 2000, cfg.Size)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: not-a-number\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{Steps: 10, LearningRate: 0.5, Seed: 99})

	assert.Equal(t, 10, cfg.Steps)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.Equal(t, int64(99), cfg.Seed)

	// zero values leave the config untouched
	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, 10, cfg.Steps)
	assert.Equal(t, 0.5, cfg.LearningRate)
}

func TestValidate(t *testing.T) {
	type test struct {
		mutate  func(*Config)
		wantErr bool
	}

	tests := map[string]test{
		"defaults": {
			mutate: func(c *Config) {}, wantErr: false,
		},
		"zero learning rate": {
			mutate: func(c *Config) { c.LearningRate = 0 }, wantErr: true,
		},
		"negative steps": {
			mutate: func(c *Config) { c.Steps = -1 }, wantErr: true,
		},
		"zero size": {
			mutate: func(c *Config) { c.Size = 0 }, wantErr: true,
		},
		"zero feature bound": {
			mutate: func(c *Config) { c.FeatureUpperBound = 0 }, wantErr: true,
		},
		"negative noise bound": {
			mutate: func(c *Config) { c.NoiseUpperBound = -1 }, wantErr: true,
		},
		"zero workers": {
			mutate: func(c *Config) { c.Workers = 0 }, wantErr: true,
		},
		"negative tolerance": {
			mutate: func(c *Config) { c.Tolerance = -1e-9 }, wantErr: true,
		},
		"zero noise bound is fine": {
			mutate: func(c *Config) { c.NoiseUpperBound = 0 }, wantErr: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDefaultsLogEvery(t *testing.T) {
	cfg := Default()
	cfg.LogEvery = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10000, cfg.LogEvery)
}
