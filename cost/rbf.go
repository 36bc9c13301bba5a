package cost

import (
	"math"
	"runtime"
	"sync"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/kernel"
)

const (
	rbfExpMin = 1e-2
	rbfExpMax = 1e2
)

// RBF scores a segment by how well an exponential (Gaussian) kernel
// distribution fits it, via a per-dimension Gram matrix. Gamma, if <= 0,
// is set at Fit time to 1/median(pairwise squared distances), the
// standard median heuristic.
type RBF struct {
	gamma float64 // <=0 means "auto" until Fit runs

	fitted    bool
	n         int
	usedGamma float64
	rects     []*kernel.PrefixRect2D // per-dimension Gram-matrix prefix sums
}

// NewRBF constructs an unfitted RBF cost function. gamma <= 0 selects the
// median-heuristic default.
func NewRBF(gamma float64) *RBF {
	return &RBF{gamma: gamma}
}

// Fit implements Function.
func (c *RBF) Fit(signal cp.Signal) (Function, error) {
	const op = "RBF.Fit"

	if err := validateSignal(op, signal); err != nil {
		return nil, err
	}

	if signal.Dims() == 0 {
		c.n = 0
		c.fitted = true

		return c, nil
	}

	n := signal.N()
	gamma := c.gamma
	if gamma <= 0 {
		gamma = autoGamma(signal.Data)
	}

	c.rects = make([]*kernel.PrefixRect2D, signal.Dims())
	for d, row := range signal.Data {
		gram := make([][]float64, n)
		for i := range gram {
			gram[i] = make([]float64, n)
		}

		fillGramRow(gram, row, gamma, n)

		c.rects[d] = kernel.NewPrefixRect2D(gram)
	}

	c.n = n
	c.usedGamma = gamma
	c.fitted = true

	return c, nil
}

// fillGramRow fills the Gram matrix for a single dimension's row of
// samples. Each row i of the upper triangle is independent of every other
// row, so rows are farmed out to a bounded worker pool; output is
// deterministic because every worker writes to disjoint (i,j)/(j,i)
// positions.
func fillGramRow(gram [][]float64, row []float64, gamma float64, n int) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		lo := w * rowsPerWorker
		hi := lo + rowsPerWorker
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				gram[i][i] = 1 // exp(0)
				for j := i + 1; j < n; j++ {
					diff := row[i] - row[j]
					expArg := gamma * diff * diff
					expArg = math.Min(math.Max(expArg, rbfExpMin), rbfExpMax)
					v := math.Exp(-expArg)
					gram[i][j] = v
					gram[j][i] = v
				}
			}
		}(lo, hi)
	}

	wg.Wait()
}

// autoGamma computes 1/median(pairwise squared distances) across all
// dimensions pooled together, the standard RBF bandwidth heuristic.
func autoGamma(data [][]float64) float64 {
	var dists []float64
	for _, row := range data {
		n := len(row)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				diff := row[i] - row[j]
				dists = append(dists, diff*diff)
			}
		}
	}

	if len(dists) == 0 {
		return 1
	}

	med := kernel.Median(dists)
	if med <= 0 {
		return 1
	}

	return 1 / med
}

// Gamma returns the gamma value actually used (resolved at Fit time).
func (c *RBF) Gamma() float64 {
	return c.usedGamma
}

// MinSegmentLength implements Function: an empty segment raises
// SegmentTooShort.
func (c *RBF) MinSegmentLength() int {
	return 1
}

// ComputeCost implements Function: n minus the average Gram-matrix
// rectangle sum over the segment, summed across dimensions.
func (c *RBF) ComputeCost(seg ...cp.Segment) (float64, error) {
	const op = "RBF.ComputeCost"

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

	n := float64(s.Len())
	total := 0.0
	for _, rect := range c.rects {
		total += n - rect.RectSum(s.Start, s.End)/n
	}

	return total, nil
}
