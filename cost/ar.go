package cost

import (
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/kernel"
	"gonum.org/v1/gonum/mat"
)

// AR scores a univariate segment by the residual sum of squares of a
// fitted AR(p) model. Unlike the other cost functions, AR has no prefix
// acceleration: every ComputeCost call builds and solves a fresh
// least-squares system.
type AR struct {
	order            int
	includeIntercept bool

	fitted bool
	n      int
	data   []float64
}

// NewAR constructs an unfitted AR(p) cost function. order must be >= 1.
func NewAR(order int, includeIntercept bool) *AR {
	return &AR{order: order, includeIntercept: includeIntercept}
}

// Fit implements Function. Unsupported is returned for multi-dimensional
// signals: the AR(p) model here is univariate only.
func (c *AR) Fit(signal cp.Signal) (Function, error) {
	const op = "AR.Fit"

	if c.order < 1 {
		return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(c.order), nil)
	}

	if signal.Dims() == 0 {
		c.n = 0
		c.fitted = true

		return c, nil
	}

	if signal.Dims() != 1 {
		return nil, cp.Wrap(cp.Unsupported, op, cp.Segment{}, float64(signal.Dims()), nil)
	}

	if err := validateSignal(op, signal); err != nil {
		return nil, err
	}

	c.n = signal.N()
	c.data = append([]float64(nil), signal.Data[0]...)
	c.fitted = true

	return c, nil
}

// MinSegmentLength implements Function: max(p+1, 2p + (intercept?1:0)),
// the smallest segment with enough observations to identify the model.
func (c *AR) MinSegmentLength() int {
	min := c.order + 1
	alt := 2*c.order
	if c.includeIntercept {
		alt++
	}
	if alt > min {
		min = alt
	}

	return min
}

// ComputeCost implements Function: builds the design matrix of lagged
// values (with an optional intercept column) and the target vector, then
// solves the least-squares system and returns the residual sum of
// squares. A singular or ill-conditioned system returns +Inf rather than
// an error, since a constant-value segment is a legitimate (if
// uninformative) input.
func (c *AR) ComputeCost(seg ...cp.Segment) (float64, error) {
	const op = "AR.ComputeCost"

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

	x := c.data[s.Start:s.End]
	n := len(x)
	p := c.order

	cols := p
	if c.includeIntercept {
		cols++
	}
	rows := n - p

	design := mat.NewDense(rows, cols, nil)
	target := make([]float64, rows)

	for row, t := 0, p; t < n; row, t = row+1, t+1 {
		col := 0
		if c.includeIntercept {
			design.Set(row, col, 1)
			col++
		}
		for lag := 1; lag <= p; lag++ {
			design.Set(row, col, x[t-lag])
			col++
		}
		target[row] = x[t]
	}

	coef, singular := kernel.SolveLeastSquares(design, target)
	if singular {
		return math.Inf(1), nil
	}

	rss := kernel.ResidualSumOfSquares(design, coef, target)
	if math.IsNaN(rss) || math.IsInf(rss, 0) {
		return 0, cp.Wrap(cp.CostDomain, op, s, rss, nil)
	}

	return rss, nil
}
