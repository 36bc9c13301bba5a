package cost

import (
	"testing"

	cp "github.com/invertedv/changepoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBFStepChange(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{0, 0, 0, 0, 5, 5, 5, 5}}}

	fn, err := NewRBF(0).Fit(signal) // 0 => auto gamma
	require.NoError(t, err)

	whole, err := fn.ComputeCost()
	require.NoError(t, err)

	left, err := fn.ComputeCost(cp.Segment{Start: 0, End: 4})
	require.NoError(t, err)
	right, err := fn.ComputeCost(cp.Segment{Start: 4, End: 8})
	require.NoError(t, err)

	assert.Less(t, left+right, whole)

	rbf := fn.(*RBF)
	assert.Greater(t, rbf.Gamma(), 0.0)
}

func TestRBFEmptySegmentTooShort(t *testing.T) {
	fn, err := NewRBF(1.0).Fit(cp.Signal{Data: [][]float64{{1, 2, 3}}})
	require.NoError(t, err)

	_, err = fn.ComputeCost(cp.Segment{Start: 1, End: 1})
	assert.True(t, errIsKind(err, cp.SegmentTooShort))
}

func TestRBFNonNegative(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{1, 5, 2, 9, 3, 7}}}
	fn, err := NewRBF(0.5).Fit(signal)
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, -1e-9)
}
