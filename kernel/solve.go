package kernel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SolveLeastSquares solves the linear least-squares problem
// design*coef ~= target via QR decomposition (mat.Dense.Solve, which picks
// QR for a tall design matrix). It returns singular=true (rather than an
// error) when the system is rank-deficient or ill-conditioned, so that
// callers such as the AR(p) cost can translate that into a +Inf segment
// cost instead of failing outright.
func SolveLeastSquares(design *mat.Dense, target []float64) (coef []float64, singular bool) {
	rows, cols := design.Dims()
	if rows < cols {
		return nil, true
	}

	if cond := mat.Cond(design, 2); cond > 1/PivotEps {
		return nil, true
	}

	b := mat.NewDense(rows, 1, target)

	var x mat.Dense
	if err := x.Solve(design, b); err != nil {
		return nil, true
	}

	coef = make([]float64, cols)
	for i := 0; i < cols; i++ {
		v := x.At(i, 0)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, true
		}
		coef[i] = v
	}

	return coef, false
}

// ResidualSumOfSquares computes sum((design*coef - target)^2).
func ResidualSumOfSquares(design *mat.Dense, coef, target []float64) float64 {
	rows, cols := design.Dims()
	rss := 0.0
	for i := 0; i < rows; i++ {
		pred := 0.0
		for j := 0; j < cols; j++ {
			pred += design.At(i, j) * coef[j]
		}
		d := target[i] - pred
		rss += d * d
	}

	return rss
}
