package cost

import (
	"math"
	"testing"

	cp "github.com/invertedv/changepoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestARNoInterceptFitsExactDecay(t *testing.T) {
	// S6: [1, 0.8, 0.64, 0.512, 0.4096], AR(1), no intercept, cost ~ 0.
	signal := cp.Signal{Data: [][]float64{{1, 0.8, 0.64, 0.512, 0.4096}}}

	fn, err := NewAR(1, false).Fit(signal)
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-6)
}

func TestARInterceptOnConstantIsInfinite(t *testing.T) {
	// S7: [2,2,2,2,2], AR(1) with intercept, cost = +Inf.
	signal := cp.Signal{Data: [][]float64{{2, 2, 2, 2, 2}}}

	fn, err := NewAR(1, true).Fit(signal)
	require.NoError(t, err)

	got, err := fn.ComputeCost()
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestARRejectsMultiDimensional(t *testing.T) {
	signal := cp.Signal{Data: [][]float64{{1, 2, 3}, {4, 5, 6}}}
	_, err := NewAR(1, false).Fit(signal)
	require.Error(t, err)
	assert.True(t, errIsKind(err, cp.Unsupported))
}

func TestARMinSegmentLength(t *testing.T) {
	ar := NewAR(2, true)
	// max(p+1, 2p+1) = max(3, 5) = 5
	assert.Equal(t, 5, ar.MinSegmentLength())

	noIntercept := NewAR(2, false)
	// max(p+1, 2p) = max(3, 4) = 4
	assert.Equal(t, 4, noIntercept.MinSegmentLength())
}

func TestARSegmentTooShort(t *testing.T) {
	fn, err := NewAR(1, false).Fit(cp.Signal{Data: [][]float64{{1, 2, 3}}})
	require.NoError(t, err)

	_, err = fn.ComputeCost(cp.Segment{Start: 0, End: 1})
	assert.True(t, errIsKind(err, cp.SegmentTooShort))
}
