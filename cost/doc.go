// Package cost implements segment cost functions: L2, L1, Gaussian,
// Poisson, Bernoulli, Binomial, AR(p), and RBF. Every cost function
// implements Function. Gaussian, Poisson, Bernoulli, and Binomial
// additionally implement LikelihoodFunction, the capability the penalty
// package requires for BIC/AIC/AICc selection; L1, L2, AR, and RBF have no
// natural parameter count and so only implement Function.
package cost
