package kernel

// PrefixSum returns a length-(len(row)+1) array P with P[0]=0 and
// P[i] = sum(row[0:i]), so that the sum over [a,b) is P[b]-P[a].
func PrefixSum(row []float64) []float64 {
	p := make([]float64, len(row)+1)
	for i, v := range row {
		p[i+1] = p[i] + v
	}

	return p
}

// PrefixSumSq returns the prefix sum of squared values, same convention
// as PrefixSum.
func PrefixSumSq(row []float64) []float64 {
	p := make([]float64, len(row)+1)
	for i, v := range row {
		p[i+1] = p[i] + v*v
	}

	return p
}

// RangeSum returns the sum over [a,b) given a prefix array built by
// PrefixSum/PrefixSumSq.
func RangeSum(prefix []float64, a, b int) float64 {
	return prefix[b] - prefix[a]
}

// PrefixRect2D is a two-dimensional prefix sum over a square matrix m of
// size n x n, used by the RBF cost to answer rectangle-sum queries over a
// Gram matrix in O(1). P has size (n+1) x (n+1), P[0][*] = P[*][0] = 0.
type PrefixRect2D struct {
	p [][]float64
	n int
}

// NewPrefixRect2D builds the 2-D prefix sum of m (n x n).
func NewPrefixRect2D(m [][]float64) *PrefixRect2D {
	n := len(m)
	p := make([][]float64, n+1)
	for i := range p {
		p[i] = make([]float64, n+1)
	}

	for i := 1; i <= n; i++ {
		rowSum := 0.0
		for j := 1; j <= n; j++ {
			rowSum += m[i-1][j-1]
			p[i][j] = p[i-1][j] + rowSum
		}
	}

	return &PrefixRect2D{p: p, n: n}
}

// RectSum returns the sum of m[a:b][a:b] (the square block spanning rows
// and columns [a,b)) in O(1).
func (r *PrefixRect2D) RectSum(a, b int) float64 {
	return r.p[b][b] - r.p[a][b] - r.p[b][a] + r.p[a][a]
}
