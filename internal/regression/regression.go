// Package regression implements single-feature linear regression fitted by
// batch gradient descent on the mean-squared-error loss.
package regression

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/jancervenka/gradient-descent/internal/dataset"
)

// ErrInvalidArgument marks inputs the closed forms are undefined for.
var ErrInvalidArgument = errors.New("regression: invalid argument")

// Coefficients is the (slope, intercept) pair of the linear model y = A*x + B.
type Coefficients struct {
	A float64
	B float64
}

// Predict evaluates the model at x.
func (c Coefficients) Predict(x float64) float64 {
	return c.A*x + c.B
}

// sums carries the per-sample reductions shared by the loss and the gradient:
// Σ x_i*r_i, Σ r_i and Σ r_i² with r_i = y_i - (A*x_i + B).
type sums struct {
	xr float64
	r  float64
	rr float64
}

func accumulate(x, y []float64, c Coefficients) sums {
	r := make([]float64, len(x))
	for i := range x {
		r[i] = y[i] - (c.A*x[i] + c.B)
	}
	return sums{
		xr: floats.Dot(x, r),
		r:  floats.Sum(r),
		rr: floats.Dot(r, r),
	}
}

// reduce computes the residual sums over the dataset. workers <= 1 runs the
// single serial pass. workers > 1 splits the samples into fixed chunks summed
// concurrently; chunk boundaries depend only on n and workers, so a given
// worker count is deterministic, but the summation order differs from the
// serial pass and results may disagree in the last few ulps.
func reduce(ds *dataset.Dataset, c Coefficients, workers int) (sums, error) {
	n := ds.Len()
	if n <= 0 {
		return sums{}, fmt.Errorf("%w: dataset size must be > 0 (got %d)", ErrInvalidArgument, n)
	}
	if workers <= 1 || n < workers {
		return accumulate(ds.X, ds.Y, c), nil
	}

	partials := make([]sums, workers)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			partials[w] = accumulate(ds.X[lo:hi], ds.Y[lo:hi], c)
		}(w, lo, hi)
	}
	wg.Wait()

	var total sums
	for _, p := range partials {
		total.xr += p.xr
		total.r += p.r
		total.rr += p.rr
	}
	return total, nil
}

// Loss computes the mean squared error of the model over the dataset.
// Pure; the result is non-negative and zero only for an exact fit.
func Loss(ds *dataset.Dataset, c Coefficients, workers int) (float64, error) {
	s, err := reduce(ds, c, workers)
	if err != nil {
		return 0, err
	}
	return s.rr / float64(ds.Len()), nil
}

// Gradient computes the analytic partial derivatives of the loss at c:
// ∂loss/∂A = (2/n)*Σ(-x_i*r_i) and ∂loss/∂B = (2/n)*Σ(-r_i).
func Gradient(ds *dataset.Dataset, c Coefficients, workers int) (Coefficients, error) {
	s, err := reduce(ds, c, workers)
	if err != nil {
		return Coefficients{}, err
	}
	n := float64(ds.Len())
	return Coefficients{
		A: -2 * s.xr / n,
		B: -2 * s.r / n,
	}, nil
}

// Step applies one gradient-descent move and returns the new coefficients.
// The input coefficients are not mutated; divergence under an oversized
// learning rate is not guarded here.
func Step(ds *dataset.Dataset, c Coefficients, learningRate float64, workers int) (Coefficients, error) {
	if learningRate <= 0 {
		return Coefficients{}, fmt.Errorf("%w: learning rate must be > 0 (got %g)", ErrInvalidArgument, learningRate)
	}
	grad, err := Gradient(ds, c, workers)
	if err != nil {
		return Coefficients{}, err
	}
	return Coefficients{
		A: c.A - learningRate*grad.A,
		B: c.B - learningRate*grad.B,
	}, nil
}

// Unstable reports whether training has diverged to NaN or infinity.
func Unstable(c Coefficients, loss float64) bool {
	for _, v := range []float64{c.A, c.B, loss} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
