package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jancervenka/gradient-descent/internal/dataset"
	"github.com/jancervenka/gradient-descent/internal/metrics"
	"github.com/jancervenka/gradient-descent/internal/regression"
)

// RunConfig captures the knobs required by the descent loop.
type RunConfig struct {
	Size             int
	Steps            int
	LearningRate     float64
	FeatureUB        float64
	NoiseUB          float64
	TrueSlope        float64
	TrueIntercept    float64
	InitialSlope     float64
	InitialIntercept float64
	Seed             int64
	Workers          int
	// Tolerance > 0 stops the loop early once the squared update distance
	// between consecutive coefficient pairs drops below it.
	Tolerance float64
	LogEvery  int
	// Out receives the human-readable report. Defaults to os.Stdout.
	Out io.Writer
}

// Result summarizes a finished run.
type Result struct {
	Coefficients regression.Coefficients
	Loss         float64
	Steps        int
	Elapsed      time.Duration
	Unstable     bool
}

// Run executes the full pipeline: generate the dataset once, descend for the
// configured number of steps, evaluate the final loss and print the report.
func Run(ctx context.Context, cfg RunConfig) (Result, error) {
	if cfg.Steps <= 0 {
		return Result{}, errors.New("trainer: steps must be > 0")
	}
	if cfg.LearningRate <= 0 {
		return Result{}, errors.New("trainer: learning rate must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 10000
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	src := dataset.NewSource(cfg.Seed)
	ds, err := dataset.Generate(src, cfg.Size, cfg.TrueSlope, cfg.TrueIntercept, cfg.FeatureUB, cfg.NoiseUB)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintln(cfg.Out, "Computing regression coefficients using gradient descent.")
	fmt.Fprintf(cfg.Out, "Dataset size n=%d\n", ds.Len())

	coefs := regression.Coefficients{A: cfg.InitialSlope, B: cfg.InitialIntercept}
	var window metrics.Window
	completed := 0

	start := time.Now()
	for step := 1; step <= cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		stepStart := time.Now()
		next, err := regression.Step(ds, coefs, cfg.LearningRate, cfg.Workers)
		if err != nil {
			return Result{}, err
		}
		window.Record(time.Since(stepStart))

		da := next.A - coefs.A
		db := next.B - coefs.B
		coefs = next
		completed = step

		if step%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			loss, err := regression.Loss(ds, coefs, cfg.Workers)
			if err != nil {
				return Result{}, err
			}
			log.Info().
				Int("step", step).
				Float64("loss", loss).
				Float64("a", coefs.A).
				Float64("b", coefs.B).
				Float64("steps_per_sec", snap.StepsPerSec).
				Float64("avg_step_us", snap.AvgStepMicros).
				Msg("descending")
		}

		if cfg.Tolerance > 0 && da*da+db*db < cfg.Tolerance {
			log.Info().Int("step", step).Float64("tolerance", cfg.Tolerance).Msg("update distance below tolerance, stopping early")
			break
		}
	}
	elapsed := time.Since(start)

	finalLoss, err := regression.Loss(ds, coefs, cfg.Workers)
	if err != nil {
		return Result{}, err
	}

	unstable := regression.Unstable(coefs, finalLoss)
	if unstable {
		log.Warn().
			Float64("a", coefs.A).
			Float64("b", coefs.B).
			Float64("loss", finalLoss).
			Msg("numeric instability: training diverged")
	}

	if baseline, err := regression.LeastSquares(ds); err == nil {
		log.Debug().
			Float64("a", baseline.A).
			Float64("b", baseline.B).
			Msg("least squares baseline")
	}

	fmt.Fprintf(cfg.Out, "Gradient descent finished after %d steps with loss=%.3f\n", completed, finalLoss)
	fmt.Fprintf(cfg.Out, "Estimated coefficients: a=%.3f, b=%.3f\n", coefs.A, coefs.B)
	fmt.Fprintf(cfg.Out, "Elapsed CPU time: %.3f seconds\n", elapsed.Seconds())

	return Result{
		Coefficients: coefs,
		Loss:         finalLoss,
		Steps:        completed,
		Elapsed:      elapsed,
		Unstable:     unstable,
	}, nil
}
