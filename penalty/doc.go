// Package penalty implements automatic PELT penalty selection: a
// log-spaced grid search over BIC/AIC/AICc scores, driving the pelt
// package across each candidate and scoring the result via the
// likelihood-metric / parameter-count protocol of cost.LikelihoodFunction.
//
// Selection requires the underlying cost function to support information
// criteria (cost.LikelihoodFunction.SupportsInformationCriteria); anything
// else fails with changepoint.Unsupported before a single PELT run is
// attempted.
package penalty
