package cost

import (
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/kernel"
)

// Gaussian scores a segment under a per-dimension normal model whose mean
// AND variance are allowed to change, making it suitable for
// information-criterion penalty selection via LikelihoodFunction.
type Gaussian struct {
	fitted bool
	n      int
	sum    [][]float64
	sumSq  [][]float64
}

// NewGaussian constructs an unfitted Gaussian cost function.
func NewGaussian() *Gaussian {
	return &Gaussian{}
}

// Fit implements Function.
func (c *Gaussian) Fit(signal cp.Signal) (Function, error) {
	const op = "Gaussian.Fit"

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

// MinSegmentLength implements Function.
func (c *Gaussian) MinSegmentLength() int {
	return 1
}

func (c *Gaussian) dimContribution(d int, s cp.Segment) float64 {
	n := float64(s.Len())
	sum := kernel.RangeSum(c.sum[d], s.Start, s.End)
	sumSq := kernel.RangeSum(c.sumSq[d], s.Start, s.End)

	sumSqDev := sumSq - sum*sum/n
	if sumSqDev < 0 {
		sumSqDev = 0
	}

	varMLE := sumSqDev / n
	varEff := math.Max(varMLE, kernel.VarFloor)

	return n * math.Log(varEff)
}

// ComputeCost implements Function; it equals ComputeLikelihoodMetric.
func (c *Gaussian) ComputeCost(seg ...cp.Segment) (float64, error) {
	return c.ComputeLikelihoodMetric(seg...)
}

// ComputeLikelihoodMetric implements LikelihoodFunction: twice the
// negative log-likelihood at the segment's MLE mean and variance, summed
// across dimensions, without the n*(1+log(2*pi)) term, which sums to the
// same value over every segmentation.
func (c *Gaussian) ComputeLikelihoodMetric(seg ...cp.Segment) (float64, error) {
	const op = "Gaussian.ComputeLikelihoodMetric"

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

	total := 0.0
	for d := range c.sum {
		total += c.dimContribution(d, s)
	}

	return total, nil
}

// SegmentParameterCount implements LikelihoodFunction: mean + variance per
// dimension.
func (c *Gaussian) SegmentParameterCount(_ int) (int, error) {
	if !c.fitted {
		return 0, cp.Wrap(cp.Uninitialized, "Gaussian.SegmentParameterCount", cp.Segment{}, math.NaN(), nil)
	}

	return 2 * len(c.sum), nil
}

// SupportsInformationCriteria implements LikelihoodFunction.
func (c *Gaussian) SupportsInformationCriteria() bool {
	return true
}
