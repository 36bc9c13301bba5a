package cost

import (
	"testing"

	cp "github.com/invertedv/changepoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonRateChange(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{1, 1, 1, 1, 10, 10, 10, 10}}}

	fn, err := NewPoisson().Fit(signal)
	require.NoError(t, err)

	whole, err := fn.ComputeCost()
	require.NoError(t, err)

	left, err := fn.ComputeCost(cp.Segment{Start: 0, End: 4})
	require.NoError(t, err)
	right, err := fn.ComputeCost(cp.Segment{Start: 4, End: 8})
	require.NoError(t, err)

	assert.Less(t, left+right, whole)
	assert.GreaterOrEqual(t, whole, 0.0)
}

func TestPoissonZeroSegment(t *testing.T) {
	fn, err := NewPoisson().Fit(cp.Signal{Data: [][]float64{{0, 0, 0}}})
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestPoissonNegativeInputRejected(t *testing.T) {
	_, err := NewPoisson().Fit(cp.Signal{Data: [][]float64{{1, -5, 2}}})
	require.Error(t, err)
	assert.True(t, errIsKind(err, cp.InvalidArgument))
}

func TestPoissonNearZeroClamped(t *testing.T) {
	fn, err := NewPoisson().Fit(cp.Signal{Data: [][]float64{{1e-12, 2, 3}}})
	require.NoError(t, err)

	_, err = fn.ComputeCost()
	require.NoError(t, err)
}

func TestPoissonParameterCount(t *testing.T) {
	fn, err := NewPoisson().Fit(cp.Signal{Data: [][]float64{{1, 2, 3}}})
	require.NoError(t, err)

	p := fn.(*Poisson)
	pc, err := p.SegmentParameterCount(3)
	require.NoError(t, err)
	assert.Equal(t, 1, pc)
}
