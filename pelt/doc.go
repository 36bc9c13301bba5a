// Package pelt implements the Pruned Exact Linear Time dynamic-programming
// engine for exact change-point detection with pruning, plus a documented
// Jump>1 relaxation that trades optimality for speed. Its row-by-row style
// — explicit boundary initialization, named accumulator variables, numbered
// steps in comments — follows katalvlaran-lvlath/dtw's dtw.go, a single-pass
// pruned dynamic program in the same vein.
package pelt
