// Package gmaberr defines the sentinel error taxonomy surfaced by the
// optimizer's constructor and search loop. Callers match against these
// with errors.Is; every raise site wraps one of them with a
// value-specific message via fmt.Errorf's %w verb.
package gmaberr

import "errors"

var (
	// ErrInvalidBounds covers malformed or infeasible box bounds: a
	// lower bound above its upper bound, zero dimensions, a single
	// dimension with crossover enabled, or a box too small to hold
	// the requested population.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrInvalidHyperparameters covers rates outside [0,1], an odd or
	// non-positive population size, and a non-positive simulation
	// budget.
	ErrInvalidHyperparameters = errors.New("invalid hyperparameters")

	// ErrObjectiveFailure covers an objective call that returned a
	// non-finite value (NaN or +/-Inf).
	ErrObjectiveFailure = errors.New("objective failure")

	// ErrBudgetExhaustedNoEvaluations covers a budget too small to
	// evaluate even the initial population.
	ErrBudgetExhaustedNoEvaluations = errors.New("budget exhausted before initial population could be evaluated")
)
