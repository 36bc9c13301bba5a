package cost

import (
	"testing"

	cp "github.com/invertedv/changepoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL2SubsetCost(t *testing.T) {
	// S2: ComputeCost(1, 4) = 0.5 exactly.
	signal := cp.Signal{Data: [][]float64{{1.0, 1.5, 2.0, 2.5, 3.0}}}

	fn, err := NewL2().Fit(signal)
	require.NoError(t, err)

	got, err := fn.ComputeCost(cp.Segment{Start: 1, End: 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestL2StepInMean(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{1, 1, 1, 10, 10, 10, 1, 1, 1}}}

	fn, err := NewL2().Fit(signal)
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

func TestL2Uninitialized(t *testing.T) {
	_, err := NewL2().ComputeCost()
	require.Error(t, err)
	assert.True(t, errIsKind(err, cp.Uninitialized))
}

func TestL2OutOfRange(t *testing.T) {
	fn, err := NewL2().Fit(cp.Signal{Data: [][]float64{{1, 2, 3}}})
	require.NoError(t, err)

	_, err = fn.ComputeCost(cp.Segment{Start: -1, End: 2})
	assert.True(t, errIsKind(err, cp.OutOfRange))

	_, err = fn.ComputeCost(cp.Segment{Start: 0, End: 4})
	assert.True(t, errIsKind(err, cp.OutOfRange))
}

func TestL2EmptySignal(t *testing.T) {
	fn, err := NewL2().Fit(cp.Signal{})
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestL2NonNegative(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{3, -1, 4, 1, 5, 9, 2, 6}}}
	fn, err := NewL2().Fit(signal)
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 0.0)
}

// errIsKind is a small helper shared by the cost test files.
func errIsKind(err error, kind cp.Kind) bool {
	ce, ok := err.(*cp.Error)

	return ok && ce.Kind == kind
}
