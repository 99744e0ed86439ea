package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Solve returns x satisfying A*x = b. When A is square it is solved
// directly; otherwise x is the least-squares solution, accepted only
// when the residual sum of squares is within len(A)*eps^2 of zero,
// mirroring original_source/fea/util.py's lstsq validation.
func Solve(a [][]float64, b []float64, eps float64) ([]float64, error) {
	rows := len(a)
	if rows == 0 {
		return nil, ErrEmptySystem
	}
	cols := len(a[0])

	flat := make([]float64, 0, rows*cols)
	for _, row := range a {
		if len(row) != cols {
			return nil, fmt.Errorf("linalg: %w: ragged row", ErrSingular)
		}
		flat = append(flat, row...)
	}

	A := mat.NewDense(rows, cols, flat)
	B := mat.NewVecDense(rows, append([]float64(nil), b...))

	var x mat.VecDense
	if err := x.SolveVec(A, B); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	xs := make([]float64, cols)
	for i := 0; i < cols; i++ {
		xs[i] = x.AtVec(i)
	}

	if rows != cols {
		var residual float64
		for i := 0; i < rows; i++ {
			var dot float64
			for j := 0; j < cols; j++ {
				dot += a[i][j] * xs[j]
			}
			d := dot - b[i]
			residual += d * d
		}
		if residual > float64(rows)*eps*eps {
			return nil, ErrInvalidResult
		}
	}

	return xs, nil
}
