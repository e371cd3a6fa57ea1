package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidArgument marks generation parameters that cannot produce a dataset.
var ErrInvalidArgument = errors.New("dataset: invalid argument")

// Source is a seedable uniform random source. All randomness in a run flows
// through one Source so that equal seeds produce equal datasets.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a Source for the given seed.
// A zero seed derives the seed from the clock; any other value is reproducible.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Bounded returns a value uniformly distributed in [0, ub).
// ub must be > 0.
func (s *Source) Bounded(ub float64) float64 {
	return s.rng.Float64() * ub
}

// Dataset holds the generated feature and target values, paired by index.
// Both slices always have the same length and are never mutated after
// generation.
type Dataset struct {
	X []float64
	Y []float64
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.X)
}

// Generate synthesizes n samples of a noisy line. Features are drawn
// uniformly from [0, featureUB) and targets are slope*x + intercept plus
// noise drawn uniformly from [0, noiseUB). The noise is one-sided on
// purpose, so targets sit at or above the clean line.
func Generate(src *Source, n int, slope, intercept, featureUB, noiseUB float64) (*Dataset, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: size must be > 0 (got %d)", ErrInvalidArgument, n)
	}
	if featureUB <= 0 {
		return nil, fmt.Errorf("%w: feature upper bound must be > 0 (got %g)", ErrInvalidArgument, featureUB)
	}
	if noiseUB < 0 {
		return nil, fmt.Errorf("%w: noise upper bound must be >= 0 (got %g)", ErrInvalidArgument, noiseUB)
	}

	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = src.Bounded(featureUB)
		y[i] = slope*x[i] + intercept
		if noiseUB > 0 {
			y[i] += src.Bounded(noiseUB)
		}
	}
	return &Dataset{X: x, Y: y}, nil
}
