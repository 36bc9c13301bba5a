package penalty

import (
	cp "github.com/invertedv/changepoint"
)

// Method selects the information criterion used to score a candidate
// penalty.
type Method int

const (
	// BIC: L + P*log(N).
	BIC Method = iota
	// AIC: L + 2*P.
	AIC
	// AICc: AIC with a small-sample correction; requires N > P+1.
	AICc
)

// String returns the method's name, used in diagnostics and CLI flags.
func (m Method) String() string {
	switch m {
	case BIC:
		return "BIC"
	case AIC:
		return "AIC"
	case AICc:
		return "AICc"
	default:
		return "Unknown"
	}
}

// Options configures the penalty selector.
type Options struct {
	// Method is the information criterion to minimize.
	Method Method

	// MinPenalty and MaxPenalty bound the search grid. Each is used only
	// when its MinPenaltySet/MaxPenaltySet flag is true; a bound whose
	// flag is false is derived automatically, whatever its value.
	MinPenalty, MaxPenalty float64
	MinPenaltySet          bool
	MaxPenaltySet          bool

	// NumSteps is the number of candidate penalties in the grid. 0 means
	// a default of 50.
	NumSteps int

	// MinSize is the minimum admissible segment length passed through to
	// the PELT engine.
	MinSize int

	// Jump is the PELT candidate stride passed through to the engine. 0
	// means 1 (exact).
	Jump int

	// Sink receives diagnostics for PELT-level events and discarded
	// candidates.
	Sink cp.EventSink
}

// DefaultOptions returns BIC selection with a 50-step automatic grid and
// MinSize/Jump of 1.
func DefaultOptions() Options {
	return Options{Method: BIC, NumSteps: 50, MinSize: 1, Jump: 1}
}

// Validate checks Options for an internally consistent combination.
func (o Options) Validate() error {
	const op = "Options.Validate"

	if o.MinSize < 0 {
		return cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(o.MinSize), nil)
	}
	if o.Jump < 0 {
		return cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(o.Jump), nil)
	}
	if o.NumSteps < 0 {
		return cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, float64(o.NumSteps), nil)
	}
	if o.MinPenaltySet && o.MaxPenaltySet && o.MinPenalty > o.MaxPenalty {
		return cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, o.MinPenalty, nil)
	}

	return nil
}

func (o Options) numSteps() int {
	if o.NumSteps == 0 {
		return 50
	}

	return o.NumSteps
}

func (o Options) minSize() int {
	if o.MinSize == 0 {
		return 1
	}

	return o.MinSize
}

func (o Options) jump() int {
	if o.Jump == 0 {
		return 1
	}

	return o.Jump
}
