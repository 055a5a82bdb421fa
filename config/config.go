// Package config validates and normalizes the optimizer's user-facing
// Options into the internally-consistent Validated form the rest of the
// module consumes, raising the gmaberr taxonomy up front the way
// ga.NewSolver validates its SolverOptions before constructing a Solver —
// generalized from panics to returned errors so a caller parsing
// untrusted input (e.g. the benchmark CLI) can handle misconfiguration
// gracefully.
package config

import (
	"fmt"
	"math/rand/v2"

	"github.com/halbux/gogmab/gmaberr"
)

// Bound is an inclusive per-dimension range.
type Bound struct {
	Lower, Upper int32
}

// Options is the raw, user-facing constructor configuration.
type Options struct {
	// Bounds gives one inclusive (lower, upper) pair per dimension; the
	// problem dimension is inferred from its length.
	Bounds []Bound

	// PopulationSize is the working-set size P; must be even and >= 2.
	PopulationSize int

	// MutationRate is the per-gene Gaussian-jitter probability, [0,1].
	MutationRate float64

	// CrossoverRate is the per-pair recombination probability, [0,1].
	CrossoverRate float64

	// MutationSpan scales the mutation Gaussian's standard deviation
	// relative to each dimension's bound width.
	MutationSpan float64

	// Seed seeds the RNG. When nil, a seed is drawn from system entropy.
	Seed *uint64
}

// Validated is the normalized configuration the genetic engine and
// optimizer consume; it is only ever produced by Validate.
type Validated struct {
	Lower, Upper   []int32
	Dimension      int
	PopulationSize int
	MutationRate   float64
	CrossoverRate  float64
	MutationSpan   float64
	Seed           uint64
}

// Validate checks opts against the error taxonomy up front, before any
// engine or optimizer is built. It returns an error for the first check
// that fails; later checks are not run, so a configuration with several
// problems reports only one of them per call.
func Validate(opts Options) (Validated, error) {
	dimension := len(opts.Bounds)
	if dimension == 0 {
		return Validated{}, fmt.Errorf("%w: dimension must be at least 1", gmaberr.ErrInvalidBounds)
	}
	if dimension == 1 && opts.CrossoverRate > 0 {
		return Validated{}, fmt.Errorf("%w: crossover requires dimension >= 2, got 1 with crossover_rate %v", gmaberr.ErrInvalidBounds, opts.CrossoverRate)
	}

	lower := make([]int32, dimension)
	upper := make([]int32, dimension)
	cardinality := int64(1)
	for i, b := range opts.Bounds {
		if b.Lower > b.Upper {
			return Validated{}, fmt.Errorf("%w: dimension %d has lower bound %d greater than upper bound %d", gmaberr.ErrInvalidBounds, i, b.Lower, b.Upper)
		}
		lower[i] = b.Lower
		upper[i] = b.Upper
		cardinality = saturatingMul(cardinality, int64(b.Upper)-int64(b.Lower)+1)
	}

	if opts.PopulationSize <= 0 || opts.PopulationSize%2 != 0 {
		return Validated{}, fmt.Errorf("%w: population size must be a positive even number, got %d", gmaberr.ErrInvalidHyperparameters, opts.PopulationSize)
	}
	if cardinality < int64(opts.PopulationSize) {
		return Validated{}, fmt.Errorf("%w: bounds admit only %d distinct vectors, fewer than population size %d", gmaberr.ErrInvalidBounds, cardinality, opts.PopulationSize)
	}
	if opts.MutationRate < 0 || opts.MutationRate > 1 {
		return Validated{}, fmt.Errorf("%w: mutation_rate must be within [0,1], got %v", gmaberr.ErrInvalidHyperparameters, opts.MutationRate)
	}
	if opts.CrossoverRate < 0 || opts.CrossoverRate > 1 {
		return Validated{}, fmt.Errorf("%w: crossover_rate must be within [0,1], got %v", gmaberr.ErrInvalidHyperparameters, opts.CrossoverRate)
	}

	seed := uint64(0)
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = rand.Uint64()
	}

	return Validated{
		Lower:          lower,
		Upper:          upper,
		Dimension:      dimension,
		PopulationSize: opts.PopulationSize,
		MutationRate:   opts.MutationRate,
		CrossoverRate:  opts.CrossoverRate,
		MutationSpan:   opts.MutationSpan,
		Seed:           seed,
	}, nil
}

// ValidateBudget checks a simulation_budget against an already-validated
// configuration's population size, raised separately from Validate since
// the budget is an Optimize-time parameter rather than a constructor one.
func ValidateBudget(budget int, populationSize int) error {
	if budget <= 0 {
		return fmt.Errorf("%w: simulation_budget must be positive, got %d", gmaberr.ErrInvalidHyperparameters, budget)
	}
	if budget < populationSize {
		return fmt.Errorf("%w: simulation_budget %d is smaller than population size %d", gmaberr.ErrBudgetExhaustedNoEvaluations, budget, populationSize)
	}
	return nil
}

// saturatingMul multiplies a and b, clamping to math.MaxInt64 instead of
// overflowing. Box cardinality only needs to be compared against a
// population size far smaller than MaxInt64, so saturation never changes
// the outcome of that comparison.
func saturatingMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	const maxInt64 = 1<<63 - 1
	if a > maxInt64/b {
		return maxInt64
	}
	return a * b
}
