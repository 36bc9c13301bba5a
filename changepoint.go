// Package changepoint provides the shared data model (signals, segments)
// and error taxonomy consumed by the kernel, cost, pelt, and penalty
// packages that make up this change-point detection library.
package changepoint

// Signal is a D x N numeric matrix: Data[d] is dimension d's N samples.
// A one-dimensional signal is modeled as D=1, i.e. len(Data) == 1.
type Signal struct {
	Data [][]float64
}

// Dims returns the number of dimensions (rows) in the signal.
func (s Signal) Dims() int {
	return len(s.Data)
}

// N returns the number of time points (columns), or 0 for a dimensionless
// signal.
func (s Signal) N() int {
	if len(s.Data) == 0 {
		return 0
	}

	return len(s.Data[0])
}

// Segment is a half-open index interval [Start, End) into a Signal.
type Segment struct {
	Start, End int
}

// Len returns End - Start.
func (sg Segment) Len() int {
	return sg.End - sg.Start
}

// FullRange returns the segment spanning the whole signal [0, n).
func FullRange(n int) Segment {
	return Segment{Start: 0, End: n}
}

// EventSink receives diagnostic messages from components that would
// otherwise need a process-wide logger (the pruning engine's "log and
// skip" behavior, the penalty selector's discarded candidates). The zero
// value (nil) is a valid, silent sink.
type EventSink func(format string, args ...any)

// Emit calls sink with the given message if sink is non-nil. Components
// that accept an EventSink use this instead of checking for nil at every
// call site.
func Emit(sink EventSink, format string, args ...any) {
	if sink != nil {
		sink(format, args...)
	}
}
