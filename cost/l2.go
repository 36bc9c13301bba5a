package cost

import (
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/kernel"
)

// L2 scores a segment by the sum, over dimensions, of squared deviations
// from the segment mean. O(D) per query once fitted.
type L2 struct {
	fitted bool
	n      int
	sum    [][]float64 // per-dimension prefix sums
	sumSq  [][]float64 // per-dimension prefix sum of squares
}

// NewL2 constructs an unfitted L2 cost function.
func NewL2() *L2 {
	return &L2{}
}

// Fit implements Function.
func (c *L2) Fit(signal cp.Signal) (Function, error) {
	const op = "L2.Fit"

	if err := validateSignal(op, signal); err != nil {
		return nil, err
	}

	c.n = signal.N()
	c.sum = make([][]float64, signal.Dims())
	c.sumSq = make([][]float64, signal.Dims())

	for d, row := range signal.Data {
		c.sum[d] = kernel.PrefixSum(row)
		c.sumSq[d] = kernel.PrefixSumSq(row)
	}

	c.fitted = true

	return c, nil
}

// MinSegmentLength implements Function: L2 can score any non-empty
// segment.
func (c *L2) MinSegmentLength() int {
	return 1
}

// ComputeCost implements Function.
func (c *L2) ComputeCost(seg ...cp.Segment) (float64, error) {
	const op = "L2.ComputeCost"

	if !c.fitted {
		return 0, cp.Wrap(cp.Uninitialized, op, cp.Segment{}, math.NaN(), nil)
	}

	if c.n == 0 {
		return 0, nil // empty signal has zero cost
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
		sumSq := kernel.RangeSum(c.sumSq[d], s.Start, s.End)
		total += sumSq - sum*sum/n
	}

	return total, nil
}
