// Package gmab implements a Genetic-algorithm-guided Multi-Armed Bandit
// optimizer: a search over integer-vector inputs that minimizes a noisy,
// stochastic objective function under a fixed evaluation budget.
//
// The public surface is intentionally small: New constructs an Optimizer
// from an Objective and a set of Options, and Optimize runs the search to
// completion and returns the selected minimizer. Everything else —
// candidate bookkeeping, genetic reproduction, the sorted mean index, and
// the bandit's selection rule — lives in the arm, genetic, memory, and
// bandit subpackages and is wired together here.
package gmab

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/halbux/gogmab/arm"
	"github.com/halbux/gogmab/bandit"
	"github.com/halbux/gogmab/config"
	"github.com/halbux/gogmab/genetic"
	"github.com/halbux/gogmab/gmaberr"
	"github.com/halbux/gogmab/memory"
	"github.com/halbux/gogmab/telemetry"
)

// Objective is re-exported from arm so callers never need to import the
// subpackage directly.
type Objective = arm.Objective

// ObjectiveFunc is re-exported from arm for the same reason.
type ObjectiveFunc = arm.ObjectiveFunc

// Options is re-exported from config.
type Options = config.Options

// Bound is re-exported from config.
type Bound = config.Bound

// Optimizer holds one run's objective, validated configuration, genetic
// engine, and candidate memory. It is not safe for concurrent use: the
// core is single-threaded and synchronous by design (see SPEC_FULL.md
// §5), and Optimize is the sole mutator of its internal state.
type Optimizer struct {
	objective arm.Objective
	cfg       config.Validated
	engine    *genetic.Engine
	store     *memory.Store

	// LogOutput is where verbose Optimize calls write their telemetry.
	// Defaults to os.Stderr; tests may override it before calling
	// Optimize.
	LogOutput io.Writer
}

// New validates opts and constructs an Optimizer for objective. It
// returns a wrapped gmaberr.ErrInvalidBounds or
// gmaberr.ErrInvalidHyperparameters error if opts is malformed.
func New(objective arm.Objective, opts Options) (*Optimizer, error) {
	cfg, err := config.Validate(opts)
	if err != nil {
		return nil, err
	}

	return &Optimizer{
		objective: objective,
		cfg:       cfg,
		engine:    genetic.NewEngine(cfg.Lower, cfg.Upper, cfg.PopulationSize, cfg.MutationRate, cfg.CrossoverRate, cfg.MutationSpan, cfg.Seed),
		store:     memory.NewStore(),
		LogOutput: os.Stderr,
	}, nil
}

// Optimize runs the search loop until simulationBudget objective calls
// have been made, then returns the action vector selected by the
// non-dominated-set UCB rule (see the bandit package). ctx is checked
// once per generation as an embedding convenience; it does not interrupt
// an in-flight evaluation (see SPEC_FULL.md §5).
func (o *Optimizer) Optimize(ctx context.Context, simulationBudget int, verbose bool) ([]int32, error) {
	if err := config.ValidateBudget(simulationBudget, o.cfg.PopulationSize); err != nil {
		return nil, err
	}

	logger := telemetry.New(o.LogOutput, verbose)

	initial := o.engine.InitialPopulation()
	for _, candidate := range initial {
		if _, err := o.store.Observe(memory.NewArm, candidate, o.objective); err != nil {
			return nil, err
		}
	}

	generation := 0
	for {
		select {
		case <-ctx.Done():
			return o.bestVector(), ctx.Err()
		default:
		}

		working, currentIndexes := o.currentPopulation()
		working = o.engine.Shuffle(working)
		crossoverPop := o.engine.Crossover(working)
		mutatedPop := o.engine.Mutate(crossoverPop)

		reachedBudget, err := o.observeOffspring(mutatedPop, currentIndexes, simulationBudget)
		if err != nil {
			return nil, err
		}

		if !reachedBudget {
			reachedBudget, err = o.observeSurvivors(working, simulationBudget)
			if err != nil {
				return nil, err
			}
		}

		generation++

		if reachedBudget {
			best := o.bestCandidate()
			logger.Result(o.store.SimulationsUsed(), best)
			return best.ActionVector(), nil
		}

		logger.Generation(generation, o.store.SimulationsUsed(), o.bestCandidate(), o.store.MeanSnapshot())
	}
}

// currentPopulation drains the top PopulationSize entries of the Sorted
// Mean Index into a fresh working population and records which arm
// indices they came from.
func (o *Optimizer) currentPopulation() ([]arm.Candidate, map[int]struct{}) {
	working := make([]arm.Candidate, 0, o.cfg.PopulationSize)
	currentIndexes := make(map[int]struct{}, o.cfg.PopulationSize)

	count := 0
	for idx := range o.store.Ascending {
		if count >= o.cfg.PopulationSize {
			break
		}
		working = append(working, o.store.Candidate(idx))
		currentIndexes[idx] = struct{}{}
		count++
	}

	return working, currentIndexes
}

// observeOffspring evaluates each candidate produced by reproduction,
// skipping any that resolve back to a current-generation survivor (those
// are handled, once each, in observeSurvivors). It reports whether the
// budget was reached mid-batch.
func (o *Optimizer) observeOffspring(offspring []arm.Candidate, currentIndexes map[int]struct{}, simulationBudget int) (bool, error) {
	for _, candidate := range offspring {
		armIndex := memory.NewArm
		if idx, ok := o.store.Lookup(candidate.ActionVector()); ok {
			if _, isSurvivor := currentIndexes[idx]; isSurvivor {
				continue
			}
			armIndex = idx
		}

		if _, err := o.store.Observe(armIndex, candidate, o.objective); err != nil {
			return false, err
		}
		if o.store.SimulationsUsed() >= simulationBudget {
			return true, nil
		}
	}
	return false, nil
}

// observeSurvivors re-evaluates every member of the (shuffled) working
// population snapshot taken at the start of the generation, tightening
// incumbents' mean-reward estimates.
func (o *Optimizer) observeSurvivors(survivors []arm.Candidate, simulationBudget int) (bool, error) {
	for _, candidate := range survivors {
		armIndex, ok := o.store.Lookup(candidate.ActionVector())
		if !ok {
			return false, fmt.Errorf("gmab: survivor %v missing from memory", candidate.ActionVector())
		}
		if _, err := o.store.Observe(armIndex, candidate, o.objective); err != nil {
			return false, err
		}
		if o.store.SimulationsUsed() >= simulationBudget {
			return true, nil
		}
	}
	return false, nil
}

func (o *Optimizer) bestCandidate() arm.Candidate {
	return o.store.Candidate(bandit.SelectBest(o.store))
}

func (o *Optimizer) bestVector() []int32 {
	return o.bestCandidate().ActionVector()
}

// SimulationsUsed returns the number of objective evaluations performed
// so far by this Optimizer.
func (o *Optimizer) SimulationsUsed() int {
	return o.store.SimulationsUsed()
}

// The gmaberr sentinels are re-exported here so callers that only import
// the root package can still errors.Is against them.
var (
	ErrInvalidBounds                = gmaberr.ErrInvalidBounds
	ErrInvalidHyperparameters       = gmaberr.ErrInvalidHyperparameters
	ErrObjectiveFailure             = gmaberr.ErrObjectiveFailure
	ErrBudgetExhaustedNoEvaluations = gmaberr.ErrBudgetExhaustedNoEvaluations
)
