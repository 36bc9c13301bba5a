package pelt

import (
	cp "github.com/invertedv/changepoint"
)

// Options configures the PELT engine.
type Options struct {
	// MinSize is the minimum admissible segment length; must be >= 1 and
	// is typically raised to the cost function's own MinSegmentLength.
	MinSize int

	// Jump is the candidate-predecessor stride. 1 (the default) is
	// exact PELT; >1 trades optimality for speed.
	Jump int

	// Sink receives diagnostics for cost-function errors encountered
	// during the main loop (the "log and skip" edge case). nil is a
	// valid, silent sink.
	Sink cp.EventSink
}

// DefaultOptions returns exact (Jump=1), minimally-constrained (MinSize=1)
// options with no event sink.
func DefaultOptions() Options {
	return Options{MinSize: 1, Jump: 1}
}

// Validate checks that Options hold a valid combination: InvalidArgument
// if MinSize<1 or Jump<1.
func (o Options) Validate() error {
	if o.MinSize < 1 {
		return cp.Wrap(cp.InvalidArgument, "Options.Validate", cp.Segment{}, float64(o.MinSize), nil)
	}
	if o.Jump < 1 {
		return cp.Wrap(cp.InvalidArgument, "Options.Validate", cp.Segment{}, float64(o.Jump), nil)
	}

	return nil
}
