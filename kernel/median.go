package kernel

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the sample median of xs: for an odd-length sample, the
// middle order statistic; for an even-length sample, the average of the
// two middle order statistics. The odd case uses gonum/stat's empirical
// quantile at p=0.5. xs is copied and sorted; the caller's slice is
// untouched.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	if n := len(sorted); n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// SegmentMedian returns the median of xs[start:end]. Each call sorts its
// own sub-slice (O(n log n) per query) rather than consulting a
// precomputed whole-signal median table.
func SegmentMedian(xs []float64, start, end int) float64 {
	return Median(xs[start:end])
}
