package cost

import (
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/kernel"
)

// Binomial scores a segment by the change in success probability across
// repeated Bernoulli trials. It requires a 2xN signal: row 0 is
// successes k_i, row 1 is trials n_i, both effectively non-negative
// integers with 0 <= k_i <= n_i and n_i >= 1.
type Binomial struct {
	fitted  bool
	n       int
	sumK    []float64 // prefix sum of successes
	sumTrls []float64 // prefix sum of trials
}

// NewBinomial constructs an unfitted Binomial cost function.
func NewBinomial() *Binomial {
	return &Binomial{}
}

// Fit implements Function. An empty signal (no rows) fits with zero
// cost; Unsupported is returned for any other shape than exactly 2 rows.
func (c *Binomial) Fit(signal cp.Signal) (Function, error) {
	const op = "Binomial.Fit"

	if signal.Dims() == 0 {
		c.n = 0
		c.fitted = true

		return c, nil
	}

	if signal.Dims() != 2 {
		return nil, cp.Wrap(cp.Unsupported, op, cp.Segment{}, float64(signal.Dims()), nil)
	}

	n := signal.N()
	k := signal.Data[0]
	trials := signal.Data[1]
	if len(k) != n || len(trials) != n {
		return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, math.NaN(), nil)
	}

	kInt := make([]float64, n)
	tInt := make([]float64, n)
	for i := 0; i < n; i++ {
		ki, ok := kernel.NearInt(k[i], kernel.DefaultEps)
		if !ok || ki < 0 {
			return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, k[i], nil)
		}
		ti, ok := kernel.NearInt(trials[i], kernel.DefaultEps)
		if !ok || ti < 1 {
			return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, trials[i], nil)
		}
		if ki > ti {
			return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, k[i], nil)
		}

		kInt[i] = float64(ki)
		tInt[i] = float64(ti)
	}

	c.n = n
	c.sumK = kernel.PrefixSum(kInt)
	c.sumTrls = kernel.PrefixSum(tInt)
	c.fitted = true

	return c, nil
}

// MinSegmentLength implements Function.
func (c *Binomial) MinSegmentLength() int {
	return 1
}

// ComputeCost implements Function; it equals ComputeLikelihoodMetric.
func (c *Binomial) ComputeCost(seg ...cp.Segment) (float64, error) {
	return c.ComputeLikelihoodMetric(seg...)
}

// ComputeLikelihoodMetric implements LikelihoodFunction: the negative
// log-likelihood at the pooled MLE success probability across the
// segment's trials.
func (c *Binomial) ComputeLikelihoodMetric(seg ...cp.Segment) (float64, error) {
	const op = "Binomial.ComputeLikelihoodMetric"

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

	k := kernel.RangeSum(c.sumK, s.Start, s.End)
	nt := kernel.RangeSum(c.sumTrls, s.Start, s.End)

	if k <= kernel.DefaultEps || k >= nt-kernel.DefaultEps {
		return 0, nil
	}

	ntMinusK := nt - k

	return -(k*math.Log(k) + ntMinusK*math.Log(ntMinusK) - nt*math.Log(nt)), nil
}

// SegmentParameterCount implements LikelihoodFunction: a single pooled
// success probability.
func (c *Binomial) SegmentParameterCount(_ int) (int, error) {
	if !c.fitted {
		return 0, cp.Wrap(cp.Uninitialized, "Binomial.SegmentParameterCount", cp.Segment{}, math.NaN(), nil)
	}

	return 1, nil
}

// SupportsInformationCriteria implements LikelihoodFunction.
func (c *Binomial) SupportsInformationCriteria() bool {
	return true
}
