package changepoint

import (
	"fmt"
	"math"
)

// Kind enumerates the error taxonomy shared by every layer of this
// library: cost functions, the PELT engine, and the penalty selector.
type Kind int

const (
	// InvalidArgument: null/invalid input data, a bad shape, or an
	// out-of-range hyperparameter.
	InvalidArgument Kind = iota
	// Unsupported: the operation is not defined for this cost function,
	// or a capability (e.g. the likelihood protocol) is missing.
	Unsupported
	// Uninitialized: a compute call was made before Fit.
	Uninitialized
	// OutOfRange: start < 0, end > N, or start > end.
	OutOfRange
	// SegmentTooShort: segment length below the cost function's minimum.
	SegmentTooShort
	// CostDomain: a cost computation produced NaN/Inf from an
	// ill-conditioned input.
	CostDomain
	// NoSolution: the penalty selector exhausted its grid without a
	// valid finite score.
	NoSolution
)

// String returns the Kind's name, used by Error.Error.
func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case Unsupported:
		return "Unsupported"
	case Uninitialized:
		return "Uninitialized"
	case OutOfRange:
		return "OutOfRange"
	case SegmentTooShort:
		return "SegmentTooShort"
	case CostDomain:
		return "CostDomain"
	case NoSolution:
		return "NoSolution"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every exported operation in
// this module. Callers compare against it with errors.Is, e.g.
// errors.Is(err, changepoint.ErrOutOfRange).
type Error struct {
	Kind    Kind
	Op      string  // operation that failed, e.g. "L2.ComputeCost"
	Segment Segment // offending segment indices; zero value if n/a
	Value   float64 // offending value; math.NaN() if n/a
	Err     error   // wrapped cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("changepoint: %s: %s", e.Op, e.Kind)

	if e.Segment != (Segment{}) {
		msg = fmt.Sprintf("%s [%d, %d)", msg, e.Segment.Start, e.Segment.End)
	}

	if !math.IsNaN(e.Value) {
		msg = fmt.Sprintf("%s value=%v", msg, e.Value)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, changepoint.ErrOutOfRange) works regardless of Op,
// Segment, or Value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument, Value: math.NaN()}
	ErrUnsupported     = &Error{Kind: Unsupported, Value: math.NaN()}
	ErrUninitialized   = &Error{Kind: Uninitialized, Value: math.NaN()}
	ErrOutOfRange      = &Error{Kind: OutOfRange, Value: math.NaN()}
	ErrSegmentTooShort = &Error{Kind: SegmentTooShort, Value: math.NaN()}
	ErrCostDomain      = &Error{Kind: CostDomain, Value: math.NaN()}
	ErrNoSolution      = &Error{Kind: NoSolution, Value: math.NaN()}
)

// Wrap builds an *Error of the given kind for op, with optional segment and
// value context. Either may be zero/NaN when not applicable.
func Wrap(kind Kind, op string, seg Segment, value float64, err error) *Error {
	return &Error{Kind: kind, Op: op, Segment: seg, Value: value, Err: err}
}
