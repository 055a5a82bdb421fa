// Package genetic implements the stateless-except-for-RNG generator of new
// Candidates: uniform random initial population, single-point crossover,
// and Gaussian-rounded mutation, all subject to per-dimension box bounds.
//
// Every operation draws a fresh sub-seed from the engine's parent RNG
// before doing any sampling, so each step is independently reproducible
// from that sub-seed and the streams for population generation, crossover,
// and mutation never interfere with one another.
package genetic

import (
	"math"
	"math/rand/v2"

	"github.com/halbux/gogmab/arm"
)

// Engine holds the box bounds, hyperparameters, and private RNG state used
// to generate new Candidates.
type Engine struct {
	lower, upper   []int32
	dimension      int
	populationSize int
	mutationRate   float64
	crossoverRate  float64
	mutationSpan   float64

	rng *rand.Rand
}

// NewEngine constructs an Engine from already-validated bounds and
// hyperparameters. Callers outside this module should go through
// config.Validate rather than calling this directly with unchecked input.
func NewEngine(lower, upper []int32, populationSize int, mutationRate, crossoverRate, mutationSpan float64, seed uint64) *Engine {
	return &Engine{
		lower:          lower,
		upper:          upper,
		dimension:      len(lower),
		populationSize: populationSize,
		mutationRate:   mutationRate,
		crossoverRate:  crossoverRate,
		mutationSpan:   mutationSpan,
		rng:            rand.New(rand.NewPCG(seed, seed)),
	}
}

// subRNG draws a fresh sub-seed from the parent RNG and returns an
// independent generator seeded from it, decoupling the stream consumed by
// this call from every other operation's stream.
func (e *Engine) subRNG() *rand.Rand {
	seed := e.rng.Uint64()
	return rand.New(rand.NewPCG(seed, seed))
}

// InitialPopulation generates PopulationSize distinct integer vectors,
// each component sampled uniformly on its inclusive bound. Distinctness is
// enforced by rejection sampling within the batch being built; callers
// must ensure via config.Validate that the box is large enough for this to
// terminate.
func (e *Engine) InitialPopulation() []arm.Candidate {
	rng := e.subRNG()
	seen := make(map[string]struct{}, e.populationSize)
	population := make([]arm.Candidate, 0, e.populationSize)

	for len(population) < e.populationSize {
		vector := make([]int32, e.dimension)
		for i := range vector {
			span := int64(e.upper[i]) - int64(e.lower[i]) + 1
			vector[i] = e.lower[i] + int32(rng.Int64N(span))
		}
		key := arm.Key(vector)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		population = append(population, arm.New(vector))
	}

	return population
}

// Shuffle permutes population in place using a fresh sub-seed, and returns
// it for chaining.
func (e *Engine) Shuffle(population []arm.Candidate) []arm.Candidate {
	rng := e.subRNG()
	rng.Shuffle(len(population), func(i, j int) {
		population[i], population[j] = population[j], population[i]
	})
	return population
}

// Crossover operates pairwise on consecutive pairs (population[2k],
// population[2k+1]). Requires an even-length population and dimension >=
// 2, both enforced upstream by config.Validate. For each pair, with
// probability (1 - crossoverRate) both parents are cloned unchanged
// (carrying their statistics along, since the action vector is
// unchanged); otherwise a single split point produces two fresh children
// with zeroed statistics.
func (e *Engine) Crossover(population []arm.Candidate) []arm.Candidate {
	rng := e.subRNG()
	children := make([]arm.Candidate, 0, len(population))

	for i := 0; i+1 < len(population); i += 2 {
		parent1, parent2 := population[i], population[i+1]

		if rng.Float64() >= e.crossoverRate {
			children = append(children, parent1.Clone(), parent2.Clone())
			continue
		}

		split := 1 + rng.IntN(e.dimension-1) // uniform in {1, ..., D-1}
		v1 := parent1.ActionVector()
		v2 := parent2.ActionVector()

		child1 := append(append([]int32{}, v1[:split]...), v2[split:]...)
		child2 := append(append([]int32{}, v2[:split]...), v1[split:]...)

		children = append(children, arm.New(child1), arm.New(child2))
	}

	return children
}

// Mutate copies each individual's action vector, independently jitters
// each dimension with probability mutationRate by a Gaussian draw scaled
// by the dimension's bound width, clamps to bounds, and truncates toward
// zero to an integer. A mutated vector identical to one already emitted by
// this call is dropped, so the output is at most len(population) and never
// contains duplicates.
func (e *Engine) Mutate(population []arm.Candidate) []arm.Candidate {
	rng := e.subRNG()
	seen := make(map[string]struct{}, len(population))
	mutated := make([]arm.Candidate, 0, len(population))

	for _, individual := range population {
		vector := individual.ActionVector()
		for i := range vector {
			if rng.Float64() >= e.mutationRate {
				continue
			}
			span := float64(e.upper[i] - e.lower[i])
			adjustment := rng.NormFloat64() * e.mutationSpan * span
			v := float64(vector[i]) + adjustment
			v = math.Max(float64(e.lower[i]), math.Min(float64(e.upper[i]), v))
			vector[i] = int32(math.Trunc(v))
		}

		key := arm.Key(vector)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		mutated = append(mutated, arm.New(vector))
	}

	return mutated
}
