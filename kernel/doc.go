// Package kernel implements the numeric primitives shared by every cost
// function in the cost package: prefix sums, two-dimensional prefix
// rectangles over a Gram matrix, a least-squares solver for the AR(p)
// cost, a median helper for the RBF gamma heuristic, and the three-band
// epsilon policy used throughout this module.
package kernel
