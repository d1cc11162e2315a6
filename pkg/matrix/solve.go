package matrix

import (
	"fmt"
	"math"
)

// PivotThreshold is the minimum magnitude a pivot may have before the
// banded solve reports the system as non-invertible.
const PivotThreshold = 1e-26

// BandedSolve solves A x = b for an N-diagonal A in place: A and b are both
// mutated during elimination. Forward elimination subtracts a multiple of
// each (unscaled) pivot row from the in-band rows below it; back
// substitution reads only the in-band cells above the diagonal. There is no row-swapping -- the diagonal is assumed
// non-zero by construction (the thermal engine's assembly guarantees this);
// if a pivot nonetheless falls below PivotThreshold the matrix is reported
// as non-invertible.
func BandedSolve(a *Band, b []float64) ([]float64, error) {
	n := a.Size
	if len(b) != n {
		return nil, fmt.Errorf("matrix: rhs length %d does not match matrix size %d", len(b), n)
	}

	// forward elimination
	for i := 0; i < n; i++ {
		pivot := a.At(i, i)
		if math.Abs(pivot) < PivotThreshold {
			return nil, fmt.Errorf("matrix: non-invertible banded system, pivot %.3e at row %d below threshold %.3e", pivot, i, PivotThreshold)
		}
		hi := i + a.Half
		if hi > n-1 {
			hi = n - 1
		}
		for k := i + 1; k <= hi; k++ {
			below := a.At(k, i)
			if below == 0 {
				continue
			}
			factor := below / pivot
			jHi := i + a.Half
			if jHi > n-1 {
				jHi = n - 1
			}
			for j := i; j <= jHi; j++ {
				v := a.At(k, j) - factor*a.At(i, j)
				if err := a.Set(k, j, v); err != nil {
					// j may fall outside k's band once factor*a.At(i,j) is
					// subtracted from an already-zero off-band cell; that's
					// a no-op, not an error.
					continue
				}
			}
			b[k] -= factor * b[i]
		}
	}

	// back substitution
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		hi := i + a.Half
		if hi > n-1 {
			hi = n - 1
		}
		for j := i + 1; j <= hi; j++ {
			sum -= a.At(i, j) * x[j]
		}
		x[i] = sum / a.At(i, i)
	}
	return x, nil
}

// BandedSolveCopy clones a and b before solving, leaving the caller's copies
// untouched. The thermal engine calls BandedSolve directly on a matrix it
// builds fresh for every solve; no matrix is kept and reused across
// sub-steps.
func BandedSolveCopy(a *Band, b []float64) ([]float64, error) {
	bCopy := make([]float64, len(b))
	copy(bCopy, b)
	return BandedSolve(a.Clone(), bCopy)
}

// GaussSeidel iteratively solves A x = b starting from x0, stopping when the
// max-norm change between iterations falls below tol or maxIter is reached
// (in which case it returns the last iterate alongside a non-convergence
// error, returning the last iterate on success and an error when the
// iteration cap is exceeded.
func GaussSeidel(a *Band, b, x0 []float64, maxIter int, tol float64) ([]float64, error) {
	n := a.Size
	if len(b) != n || len(x0) != n {
		return nil, fmt.Errorf("matrix: vector length must be %d", n)
	}
	x := make([]float64, n)
	copy(x, x0)

	for iter := 0; iter < maxIter; iter++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			diag := a.At(i, i)
			if math.Abs(diag) < PivotThreshold {
				return x, fmt.Errorf("matrix: gauss-seidel zero diagonal at row %d", i)
			}
			lo := i - a.Half
			if lo < 0 {
				lo = 0
			}
			hi := i + a.Half
			if hi > n-1 {
				hi = n - 1
			}
			var sum float64
			for j := lo; j <= hi; j++ {
				if j == i {
					continue
				}
				sum += a.At(i, j) * x[j]
			}
			newXi := (b[i] - sum) / diag
			delta := math.Abs(newXi - x[i])
			if delta > maxDelta {
				maxDelta = delta
			}
			x[i] = newXi
		}
		if maxDelta < tol {
			return x, nil
		}
	}
	return x, fmt.Errorf("matrix: gauss-seidel did not converge within %d iterations (tol=%.3e)", maxIter, tol)
}
