package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jancervenka/gradient-descent/internal/config"
	"github.com/jancervenka/gradient-descent/internal/trainer"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional, defaults are built in)")
	learningRate := flag.Float64("learning-rate", 0, "Gradient descent step size")
	steps := flag.Int("steps", 0, "Number of gradient descent steps")
	size := flag.Int("size", 0, "Number of generated samples")
	seed := flag.Int64("seed", 0, "PRNG seed (0 seeds from the clock)")
	workers := flag.Int("workers", 0, "Workers for the per-sample reductions")
	tolerance := flag.Float64("tolerance", 0, "Stop early when the squared update distance drops below this (0 disables)")
	logEvery := flag.Int("log-every", 0, "Log progress every N steps")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	cfg.ApplyOverrides(config.Overrides{
		LearningRate: *learningRate,
		Steps:        *steps,
		Size:         *size,
		Seed:         *seed,
		Workers:      *workers,
		Tolerance:    *tolerance,
		LogEvery:     *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Size:             cfg.Size,
		Steps:            cfg.Steps,
		LearningRate:     cfg.LearningRate,
		FeatureUB:        cfg.FeatureUpperBound,
		NoiseUB:          cfg.NoiseUpperBound,
		TrueSlope:        cfg.TrueSlope,
		TrueIntercept:    cfg.TrueIntercept,
		InitialSlope:     cfg.InitialSlope,
		InitialIntercept: cfg.InitialIntercept,
		Seed:             cfg.Seed,
		Workers:          cfg.Workers,
		Tolerance:        cfg.Tolerance,
		LogEvery:         cfg.LogEvery,
	}

	if _, err := trainer.Run(ctx, runCfg); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Fatal().Msg("interrupted")
		}
		log.Fatal().Err(err).Msg("gradient descent failed")
	}
}
