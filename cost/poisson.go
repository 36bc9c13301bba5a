package cost

import (
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/kernel"
)

// Poisson scores a segment by the change in event rate on count data.
// Inputs must be non-negative within kernel.DefaultEps; values in
// [-eps, 0) are clamped to 0 at Fit time.
type Poisson struct {
	fitted bool
	n      int
	sum    [][]float64
}

// NewPoisson constructs an unfitted Poisson cost function.
func NewPoisson() *Poisson {
	return &Poisson{}
}

// Fit implements Function.
func (c *Poisson) Fit(signal cp.Signal) (Function, error) {
	const op = "Poisson.Fit"

	if signal.Dims() == 0 {
		c.n = 0
		c.fitted = true

		return c, nil
	}

	n := signal.N()
	clamped := make([][]float64, signal.Dims())
	for d, row := range signal.Data {
		if len(row) != n {
			return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(len(row)), nil)
		}

		clamped[d] = make([]float64, n)
		for i, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, v, nil)
			}
			if v < -kernel.DefaultEps {
				return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, v, nil)
			}
			if v < 0 {
				v = 0
			}
			clamped[d][i] = v
		}
	}

	c.n = n
	c.sum = make([][]float64, signal.Dims())
	for d, row := range clamped {
		c.sum[d] = kernel.PrefixSum(row)
	}
	c.fitted = true

	return c, nil
}

// MinSegmentLength implements Function.
func (c *Poisson) MinSegmentLength() int {
	return 1
}

// ComputeCost implements Function; it equals ComputeLikelihoodMetric.
func (c *Poisson) ComputeCost(seg ...cp.Segment) (float64, error) {
	return c.ComputeLikelihoodMetric(seg...)
}

// ComputeLikelihoodMetric implements LikelihoodFunction: twice the
// negative log-likelihood at the segment's MLE rate, dropping the
// log-factorial terms, which sum to the same value over every
// segmentation.
func (c *Poisson) ComputeLikelihoodMetric(seg ...cp.Segment) (float64, error) {
	const op = "Poisson.ComputeLikelihoodMetric"

	if !c.fitted {
		return 0, cp.Wrap(cp.Uninitialized, op, cp.Segment{}, math.NaN(), nil)
	}

	if c.n == 0 {
		return 0, nil
	}

	s := resolveSegment(c.n, seg)
	if err := validateRange(op, s, c.n); err != nil {
		return 0, err
	}

	if err := validateMinLength(op, s, c.MinSegmentLength()); err != nil {
		return 0, err
	}

	n := float64(s.Len())
	total := 0.0
	for d := range c.sum {
		sum := kernel.RangeSum(c.sum[d], s.Start, s.End)
		if sum <= kernel.DefaultEps {
			continue
		}
		total += 2 * (sum - sum*math.Log(sum) + sum*math.Log(n))
	}

	return total, nil
}

// SegmentParameterCount implements LikelihoodFunction: one rate per
// dimension.
func (c *Poisson) SegmentParameterCount(_ int) (int, error) {
	if !c.fitted {
		return 0, cp.Wrap(cp.Uninitialized, "Poisson.SegmentParameterCount", cp.Segment{}, math.NaN(), nil)
	}

	return len(c.sum), nil
}

// SupportsInformationCriteria implements LikelihoodFunction.
func (c *Poisson) SupportsInformationCriteria() bool {
	return true
}
