package pelt

import (
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/cost"
)

// Engine is the Pruned Exact Linear Time change-point detector. It owns
// its cost function exclusively for the life of a Fit/Detect sequence:
// construct once, Fit once, then call Detect many times with different
// penalties.
type Engine struct {
	opts   Options
	costFn cost.Function

	fitted bool
	n      int
}

// New constructs an Engine around costFn with the given options. costFn is
// not fit yet; call Fit before Detect.
func New(costFn cost.Function, opts Options) (*Engine, error) {
	const op = "pelt.New"

	if costFn == nil {
		return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, math.NaN(), nil)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.MinSize < costFn.MinSegmentLength() {
		opts.MinSize = costFn.MinSegmentLength()
	}

	return &Engine{opts: opts, costFn: costFn}, nil
}

// Fit fits the engine's cost function against signal.
func (e *Engine) Fit(signal cp.Signal) (*Engine, error) {
	fn, err := e.costFn.Fit(signal)
	if err != nil {
		return nil, err
	}

	e.costFn = fn
	e.n = signal.N()
	e.fitted = true

	return e, nil
}

// Detect runs PELT with the given penalty and returns the ordered,
// strictly increasing breakpoint list.
func (e *Engine) Detect(penalty float64) ([]int, error) {
	const op = "pelt.Detect"

	if !e.fitted {
		return nil, cp.Wrap(cp.Uninitialized, op, cp.Segment{}, math.NaN(), nil)
	}
	if penalty < 0 {
		return nil, cp.Wrap(cp.InvalidArgument, op, cp.Segment{}, penalty, nil)
	}

	n := e.n
	minSize := e.opts.MinSize

	// Too short for even one valid segment, or too short for a single
	// change point to be possible.
	if n < minSize || n < 2*minSize {
		return nil, nil
	}

	// 1) DP state: F[t] is the optimal penalized cost of segmenting
	// [0, t); CP[t] is the best predecessor change point.
	f := make([]float64, n+1)
	cpIdx := make([]int, n+1)
	for t := 1; t <= n; t++ {
		f[t] = math.Inf(1)
		cpIdx[t] = -1
	}
	f[0] = -penalty

	// admissible is the set R of candidate predecessors still
	// competitive at the current t, kept sorted ascending.
	admissible := []int{0}

	for t := minSize; t <= n; t++ {
		// Step 1: candidate predecessors. Exact PELT (Jump=1) considers
		// every member of the admissible set; Jump>1 restricts this to
		// strides of Jump from t-MinSize downward, always also
		// considering s=0.
		candidates := admissible
		if e.opts.Jump > 1 {
			candidates = strideCandidates(admissible, t, minSize, e.opts.Jump)
		}

		best := math.Inf(1)
		bestS := -1

		for _, s := range candidates {
			if t-s < minSize {
				continue
			}

			c, err := e.costFn.ComputeCost(cp.Segment{Start: s, End: t})
			if err != nil {
				// Cost calculation failed for this candidate: log and
				// skip it rather than aborting the whole run.
				cp.Emit(e.opts.Sink, "pelt: skipping candidate s=%d t=%d: %v", s, t, err)
				continue
			}

			cand := f[s] + c + penalty
			if cand < best {
				best = cand
				bestS = s
			}
		}

		f[t] = best
		cpIdx[t] = bestS

		// Step 3: pruning always considers the full admissible set,
		// regardless of Jump.
		admissible = e.prune(admissible, f, t, minSize)
	}

	return backtrack(cpIdx, n), nil
}

// prune rebuilds the admissible set for the next iteration from the
// current one: keep s if F[s]+cost(s,t) <= F[t]; always keep s if the
// segment [s,t) isn't MinSize long yet (the pruning bound isn't valid
// there); add t itself if F[t] is finite.
func (e *Engine) prune(admissible []int, f []float64, t, minSize int) []int {
	next := make([]int, 0, len(admissible)+1)

	for _, s := range admissible {
		if t-s < minSize {
			next = append(next, s)

			continue
		}

		c, err := e.costFn.ComputeCost(cp.Segment{Start: s, End: t})
		if err != nil {
			// Cost calculation failed during pruning: conservatively
			// keep s in the admissible set if it is reachable.
			if !math.IsInf(f[s], 1) {
				next = append(next, s)
			}

			continue
		}

		if f[s]+c <= f[t] {
			next = append(next, s)
		}
	}

	if !math.IsInf(f[t], 1) {
		next = append(next, t)
	}

	return next
}

// strideCandidates restricts admissible to {t-MinSize, t-MinSize-Jump,
// t-MinSize-2*Jump, ...} plus 0.
func strideCandidates(admissible []int, t, minSize, jump int) []int {
	inAdmissible := make(map[int]bool, len(admissible))
	for _, s := range admissible {
		inAdmissible[s] = true
	}

	var out []int
	if inAdmissible[0] {
		out = append(out, 0)
	}

	for s := t - minSize; s > 0; s -= jump {
		if inAdmissible[s] {
			out = append(out, s)
		}
	}

	return out
}

// backtrack reconstructs the breakpoint list from the CP array: from
// t=N, repeatedly prepend CP[t] and set t=CP[t] until CP[t]<=0; drop the
// trailing 0 sentinel. Guards against reconstruction loops by bailing
// once the list exceeds n entries.
func backtrack(cpIdx []int, n int) []int {
	var rev []int

	t := n
	for {
		prev := cpIdx[t]
		if prev <= 0 {
			break
		}

		rev = append(rev, prev)
		t = prev

		if len(rev) > n {
			break
		}
	}

	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}

	return out
}
