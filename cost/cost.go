package cost

import (
	"math"

	cp "github.com/invertedv/changepoint"
)

// Function is the base contract every cost function satisfies: fit once
// against a signal, then query the cost of any admissible segment many
// times. seg is variadic so callers can omit it: zero args means the
// full fitted range.
type Function interface {
	// Fit validates signal and precomputes internal structures, returning
	// the receiver so callers can chain construction and fitting.
	Fit(signal cp.Signal) (Function, error)

	// ComputeCost returns the cost of seg (default: the full fitted
	// range), or +Inf when the model cannot be fit to the segment. The
	// Gaussian and Poisson likelihood metrics can be negative; every
	// other cost function in this package returns a non-negative value.
	ComputeCost(seg ...cp.Segment) (float64, error)

	// MinSegmentLength returns the minimum segment length this cost
	// function can score.
	MinSegmentLength() int
}

// LikelihoodFunction extends Function with the likelihood-metric /
// parameter-count protocol that enables BIC/AIC/AICc penalty selection.
type LikelihoodFunction interface {
	Function

	// ComputeLikelihoodMetric returns a value proportional to -2*logL at
	// the segment MLE. For every cost function in this package that
	// implements this interface, it equals ComputeCost.
	ComputeLikelihoodMetric(seg ...cp.Segment) (float64, error)

	// SegmentParameterCount returns the number of free parameters fit
	// for a segment of length n.
	SegmentParameterCount(n int) (int, error)

	// SupportsInformationCriteria reports whether this instance is
	// usable with the penalty selector.
	SupportsInformationCriteria() bool
}

// resolveSegment applies the "default full range" convention to a
// variadic segment argument.
func resolveSegment(n int, seg []cp.Segment) cp.Segment {
	if len(seg) == 0 {
		return cp.FullRange(n)
	}

	return seg[0]
}

// validateRange checks start/end against the fitted length N.
func validateRange(op string, seg cp.Segment, n int) error {
	if seg.Start < 0 || seg.End > n || seg.Start > seg.End {
		return cp.Wrap(cp.OutOfRange, op, seg, math.NaN(), nil)
	}

	return nil
}

// validateMinLength checks seg against minLen.
func validateMinLength(op string, seg cp.Segment, minLen int) error {
	if seg.Len() < minLen {
		return cp.Wrap(cp.SegmentTooShort, op, seg, float64(seg.Len()), nil)
	}

	return nil
}

// validateSignal rejects a nil or ragged signal with InvalidArgument.
func validateSignal(op string, signal cp.Signal) error {
	if signal.Dims() == 0 {
		return nil // empty signal: callers return a zero cost for it
	}

	n := signal.N()
	for d, row := range signal.Data {
		if row == nil {
			return cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(d), nil)
		}
		if len(row) != n {
			return cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(len(row)), nil)
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, v, nil)
			}
		}
	}

	return nil
}
