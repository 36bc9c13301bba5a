package penalty

import (
	"context"
	"testing"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/cost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRegimeGaussian(n1, n2 int, mean1, mean2 float64) []float64 {
	data := make([]float64, 0, n1+n2)
	for i := 0; i < n1; i++ {
		data = append(data, mean1)
	}
	for i := 0; i < n2; i++ {
		data = append(data, mean2)
	}

	return data
}

func TestSelectTwoRegimeGaussian(t *testing.T) {
	// S8: two-regime Gaussian signal, 100+100 samples, BIC selects
	// exactly one change point near index 100 (within MinSize).
	data := twoRegimeGaussian(100, 100, 0, 5)

	fn, err := cost.NewGaussian().Fit(cp.Signal{Data: [][]float64{data}})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.MinSize = 5

	res, err := Select(context.Background(), fn, cp.Signal{Data: [][]float64{data}}, opts)
	require.NoError(t, err)
	require.Len(t, res.Breakpoints, 1)

	bp := res.Breakpoints[0]
	assert.InDelta(t, 100, bp, float64(opts.MinSize))
	assert.Equal(t, BIC, res.Method)
	assert.NotEmpty(t, res.Diagnostics)
}

func TestSelectUnsupportedCostFunction(t *testing.T) {
	fn, err := cost.NewL2().Fit(cp.Signal{Data: [][]float64{{1, 2, 3, 4}}})
	require.NoError(t, err)

	_, err = Select(context.Background(), fn, cp.Signal{Data: [][]float64{{1, 2, 3, 4}}}, DefaultOptions())
	require.Error(t, err)
	require.ErrorIs(t, err, cp.ErrUnsupported)
}

func TestSelectEmptySignal(t *testing.T) {
	fn, err := cost.NewGaussian().Fit(cp.Signal{Data: [][]float64{{}}})
	require.NoError(t, err)

	res, err := Select(context.Background(), fn, cp.Signal{Data: [][]float64{{}}}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Breakpoints)
}

func TestSelectCancellation(t *testing.T) {
	data := twoRegimeGaussian(100, 100, 0, 5)

	fn, err := cost.NewGaussian().Fit(cp.Signal{Data: [][]float64{data}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Select(ctx, fn, cp.Signal{Data: [][]float64{data}}, DefaultOptions())
	require.Error(t, err)
	require.ErrorIs(t, err, cp.ErrNoSolution)
}

func TestSelectNoSolutionWhenMinSizeExceedsRegime(t *testing.T) {
	data := twoRegimeGaussian(3, 3, 0, 5)

	fn, err := cost.NewGaussian().Fit(cp.Signal{Data: [][]float64{data}})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.MinSize = 50 // larger than the whole signal

	_, err = Select(context.Background(), fn, cp.Signal{Data: [][]float64{data}}, opts)
	require.Error(t, err)
}

func TestPenaltyGridMinPZero(t *testing.T) {
	grid := penaltyGrid(0, 10, 5)
	require.Len(t, grid, 5)
	assert.Equal(t, 0.0, grid[0])
	assert.InDelta(t, 10.0, grid[len(grid)-1], 1e-9)

	for i := 1; i < len(grid); i++ {
		assert.Greater(t, grid[i], grid[i-1])
	}
}

func TestPenaltyGridMinPPositive(t *testing.T) {
	grid := penaltyGrid(2, 20, 10)
	require.Len(t, grid, 10)
	assert.InDelta(t, 2.0, grid[0], 1e-9)
	assert.InDelta(t, 20.0, grid[len(grid)-1], 1e-9)
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "BIC", BIC.String())
	assert.Equal(t, "AIC", AIC.String())
	assert.Equal(t, "AICc", AICc.String())
}

func TestSelectAICAndAICc(t *testing.T) {
	data := twoRegimeGaussian(60, 60, -3, 3)
	signal := cp.Signal{Data: [][]float64{data}}

	for _, method := range []Method{AIC, AICc} {
		fn, err := cost.NewGaussian().Fit(signal)
		require.NoError(t, err)

		opts := DefaultOptions()
		opts.Method = method
		opts.MinSize = 5

		res, err := Select(context.Background(), fn, signal, opts)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Breakpoints), 3)
	}
}
