package cost

import (
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/kernel"
)

// Bernoulli scores a segment by the change in success probability on
// binary data. Every value must be within kernel.DefaultEps of 0 or 1;
// Fit clamps to {0,1}.
type Bernoulli struct {
	fitted bool
	n      int
	sum    [][]float64 // prefix sum of clamped 0/1 values
}

// NewBernoulli constructs an unfitted Bernoulli cost function.
func NewBernoulli() *Bernoulli {
	return &Bernoulli{}
}

// Fit implements Function.
func (c *Bernoulli) Fit(signal cp.Signal) (Function, error) {
	const op = "Bernoulli.Fit"

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
			switch {
			case math.Abs(v) <= kernel.DefaultEps:
				clamped[d][i] = 0
			case math.Abs(v-1) <= kernel.DefaultEps:
				clamped[d][i] = 1
			default:
				return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, v, nil)
			}
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
func (c *Bernoulli) MinSegmentLength() int {
	return 1
}

// ComputeCost implements Function; it equals ComputeLikelihoodMetric.
func (c *Bernoulli) ComputeCost(seg ...cp.Segment) (float64, error) {
	return c.ComputeLikelihoodMetric(seg...)
}

// ComputeLikelihoodMetric implements LikelihoodFunction: twice the
// negative log-likelihood at the segment's MLE success probability.
func (c *Bernoulli) ComputeLikelihoodMetric(seg ...cp.Segment) (float64, error) {
	const op = "Bernoulli.ComputeLikelihoodMetric"

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
		sm := kernel.RangeSum(c.sum[d], s.Start, s.End)
		if sm <= kernel.DefaultEps || sm >= n-kernel.DefaultEps {
			continue
		}
		nMinusS := n - sm
		total += -2 * (sm*math.Log(sm) + nMinusS*math.Log(nMinusS) - n*math.Log(n))
	}

	return total, nil
}

// SegmentParameterCount implements LikelihoodFunction: one probability per
// dimension.
func (c *Bernoulli) SegmentParameterCount(_ int) (int, error) {
	if !c.fitted {
		return 0, cp.Wrap(cp.Uninitialized, "Bernoulli.SegmentParameterCount", cp.Segment{}, math.NaN(), nil)
	}

	return len(c.sum), nil
}

// SupportsInformationCriteria implements LikelihoodFunction.
func (c *Bernoulli) SupportsInformationCriteria() bool {
	return true
}
