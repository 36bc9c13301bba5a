package penalty

import (
	"context"
	"math"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/cost"
	"github.com/invertedv/changepoint/pelt"
	"gonum.org/v1/gonum/floats"
)

// Candidate is one scored grid point, returned as part of Result's
// diagnostics regardless of whether it won.
type Candidate struct {
	Penalty float64
	Score   float64 // +Inf if this candidate was discarded
	Changes int
	Valid   bool
}

// Result is the outcome of a successful Select call.
type Result struct {
	Penalty     float64
	Breakpoints []int
	Method      Method
	Diagnostics []Candidate
}

const scoreTolerance = 1e-9

// Select runs a log-spaced grid search over candidate penalties against
// fn (already Fit) and signal, under opts, and returns the candidate that
// minimizes the chosen information criterion. fn must implement
// cost.LikelihoodFunction with SupportsInformationCriteria true, or
// Select fails with Unsupported before any PELT run.
func Select(ctx context.Context, fn cost.Function, signal cp.Signal, opts Options) (*Result, error) {
	const op = "penalty.Select"

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lf, ok := fn.(cost.LikelihoodFunction)
	if !ok || !lf.SupportsInformationCriteria() {
		return nil, cp.Wrap(cp.Unsupported, op, cp.Segment{}, math.NaN(), nil)
	}

	n := signal.N()
	if n == 0 {
		return &Result{Method: opts.Method}, nil
	}

	minSize := opts.minSize()

	engine, err := pelt.New(fn, pelt.Options{MinSize: minSize, Jump: opts.jump(), Sink: opts.Sink})
	if err != nil {
		return nil, err
	}
	if _, err := engine.Fit(signal); err != nil {
		return nil, err
	}

	minP, maxP, err := penaltyRange(lf, n, opts)
	if err != nil {
		return nil, err
	}

	grid := penaltyGrid(minP, maxP, opts.numSteps())

	diagnostics := make([]Candidate, 0, len(grid))

	var (
		best    *Candidate
		bestBPs []int
	)

	for _, penaltyVal := range grid {
		if err := ctx.Err(); err != nil {
			return nil, cp.Wrap(cp.NoSolution, op, cp.Segment{}, penaltyVal, err)
		}

		bps, score, changes, valid := scoreCandidate(ctx, engine, lf, penaltyVal, n, minSize, opts.Method)

		cand := Candidate{Penalty: penaltyVal, Score: score, Changes: changes, Valid: valid}
		diagnostics = append(diagnostics, cand)

		if !valid {
			cp.Emit(opts.Sink, "penalty: discarded candidate %v (invalid segmentation/score)", penaltyVal)

			continue
		}

		if best == nil || isBetter(cand, *best) {
			best = &diagnostics[len(diagnostics)-1]
			bestBPs = bps
		}
	}

	if best == nil {
		return nil, cp.Wrap(cp.NoSolution, op, cp.Segment{}, math.NaN(), nil)
	}

	return &Result{
		Penalty:     best.Penalty,
		Breakpoints: bestBPs,
		Method:      opts.Method,
		Diagnostics: diagnostics,
	}, nil
}

// isBetter reports whether cand beats cur: a strictly lower score wins;
// within scoreTolerance, the candidate with fewer change points wins (the
// simpler model, on a tie).
func isBetter(cand, cur Candidate) bool {
	if cand.Score < cur.Score-scoreTolerance {
		return true
	}
	if cand.Score > cur.Score+scoreTolerance {
		return false
	}

	return cand.Changes < cur.Changes
}

// penaltyRange derives [minP, maxP], honoring any user-supplied bounds.
func penaltyRange(lf cost.LikelihoodFunction, n int, opts Options) (float64, float64, error) {
	if opts.MinPenaltySet && opts.MaxPenaltySet {
		return opts.MinPenalty, opts.MaxPenalty, nil
	}

	// p̂: the per-segment parameter count at a representative segment
	// length. "Representative" has no single canonical choice before
	// any segmentation exists, so this uses the whole-signal length N,
	// the only length guaranteed meaningful at this point.
	pHat, err := lf.SegmentParameterCount(n)
	if err != nil {
		return 0, 0, err
	}

	minP := opts.MinPenalty
	if !opts.MinPenaltySet {
		minP = math.Max(0.1, float64(pHat)*math.Log(float64(n)))
	}

	maxP := opts.MaxPenalty
	if !opts.MaxPenaltySet {
		maxP = math.Max(float64(n)*math.Log(float64(n)), math.Max(20*minP, minP*1.1+1))
	}

	return minP, maxP, nil
}

// penaltyGrid generates numSteps log-spaced candidates in [minP, maxP],
// special-casing minP=0 since log-spacing cannot include zero.
func penaltyGrid(minP, maxP float64, numSteps int) []float64 {
	if numSteps <= 0 {
		numSteps = 50
	}

	if minP > 0 {
		dst := make([]float64, numSteps)
		floats.LogSpan(dst, minP, maxP)
		dst[len(dst)-1] = maxP

		return dst
	}

	// minP == 0: yield 0, then log-space the remainder from
	// max(1e-9, maxP*1e-6) upward, ending exactly at maxP.
	if numSteps == 1 {
		return []float64{0}
	}

	rest := make([]float64, numSteps-1)
	lo := math.Max(1e-9, maxP*1e-6)
	floats.LogSpan(rest, lo, maxP)
	rest[len(rest)-1] = maxP

	return append([]float64{0}, rest...)
}

// scoreCandidate runs PELT at penaltyVal and scores the resulting
// segmentation via method.
func scoreCandidate(
	ctx context.Context,
	engine *pelt.Engine,
	lf cost.LikelihoodFunction,
	penaltyVal float64,
	n, minSize int,
	method Method,
) (bps []int, score float64, changes int, valid bool) {
	bps, err := engine.Detect(penaltyVal)
	if err != nil {
		return nil, math.Inf(1), 0, false
	}

	bounds := make([]int, 0, len(bps)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, bps...)
	bounds = append(bounds, n)

	var likelihoodSum float64
	var paramSum int

	for i := 0; i+1 < len(bounds); i++ {
		if err := ctx.Err(); err != nil {
			return nil, math.Inf(1), 0, false
		}

		a, b := bounds[i], bounds[i+1]
		if b-a < minSize {
			return nil, math.Inf(1), 0, false
		}

		metric, err := lf.ComputeLikelihoodMetric(cp.Segment{Start: a, End: b})
		if err != nil || math.IsNaN(metric) || math.IsInf(metric, 0) {
			return nil, math.Inf(1), 0, false
		}

		params, err := lf.SegmentParameterCount(b - a)
		if err != nil {
			return nil, math.Inf(1), 0, false
		}

		likelihoodSum += metric
		paramSum += params
	}

	k := len(bps)
	p := float64(paramSum + k)

	var sc float64
	switch method {
	case AIC:
		sc = likelihoodSum + 2*p
	case AICc:
		if float64(n) <= p+1 {
			return nil, math.Inf(1), 0, false
		}

		aic := likelihoodSum + 2*p
		sc = aic + 2*p*(p+1)/(float64(n)-p-1)
	default: // BIC
		sc = likelihoodSum + p*math.Log(float64(n))
	}

	if math.IsNaN(sc) || math.IsInf(sc, 0) {
		return nil, math.Inf(1), 0, false
	}

	return bps, sc, k, true
}
