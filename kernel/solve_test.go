package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSolveLeastSquaresExact(t *testing.T) {
	// y = 2x, exact fit.
	design := mat.NewDense(3, 1, []float64{1, 2, 3})
	target := []float64{2, 4, 6}

	coef, singular := SolveLeastSquares(design, target)
	assert.False(t, singular)
	assert.InDelta(t, 2.0, coef[0], 1e-9)

	rss := ResidualSumOfSquares(design, coef, target)
	assert.InDelta(t, 0.0, rss, 1e-9)
}

func TestSolveLeastSquaresSingular(t *testing.T) {
	// Intercept-only design on a constant target: perfectly fits but a
	// rank-deficient two-column design (duplicate columns) is singular.
	design := mat.NewDense(3, 2, []float64{1, 1, 1, 1, 1, 1})
	target := []float64{2, 2, 2}

	_, singular := SolveLeastSquares(design, target)
	assert.True(t, singular)
}

func TestSolveLeastSquaresUnderdetermined(t *testing.T) {
	design := mat.NewDense(1, 2, []float64{1, 2})
	_, singular := SolveLeastSquares(design, []float64{1})
	assert.True(t, singular)
}
