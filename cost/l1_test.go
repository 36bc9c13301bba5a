package cost

import (
	"testing"

	cp "github.com/invertedv/changepoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL1StepInMedian(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{1, 1, 1, 10, 10, 10, 1, 1, 1}}}

	fn, err := NewL1().Fit(signal)
	require.NoError(t, err)

	whole, err := fn.ComputeCost()
	require.NoError(t, err)

	left, err := fn.ComputeCost(cp.Segment{Start: 0, End: 3})
	require.NoError(t, err)
	mid, err := fn.ComputeCost(cp.Segment{Start: 3, End: 6})
	require.NoError(t, err)
	right, err := fn.ComputeCost(cp.Segment{Start: 6, End: 9})
	require.NoError(t, err)

	assert.Less(t, left+mid+right, whole)
}

func TestL1ConstantSegmentIsZero(t *testing.T) {
	fn, err := NewL1().Fit(cp.Signal{Data: [][]float64{{4, 4, 4}}})
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestL1MultiDimensional(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{1, 2, 3}, {10, 20, 30}}}
	fn, err := NewL1().Fit(signal)
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 0.0)
}
