package regression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/jancervenka/gradient-descent/internal/dataset"
)

// LeastSquares solves the same fit exactly via QR factorization of the
// degree-1 Vandermonde system. It serves as a baseline to compare the
// descent estimate against, not as a replacement for it.
func LeastSquares(ds *dataset.Dataset) (Coefficients, error) {
	n := ds.Len()
	if n <= 0 {
		return Coefficients{}, fmt.Errorf("%w: dataset size must be > 0 (got %d)", ErrInvalidArgument, n)
	}

	a := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, ds.X[i])
		a.Set(i, 1, 1)
	}
	b := mat.NewDense(n, 1, ds.Y)
	c := mat.NewDense(2, 1, nil)

	var qr mat.QR
	qr.Factorize(a)
	if err := qr.SolveTo(c, false, b); err != nil {
		return Coefficients{}, fmt.Errorf("least squares solve: %w", err)
	}

	return Coefficients{A: c.At(0, 0), B: c.At(1, 0)}, nil
}
