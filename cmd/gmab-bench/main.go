// Command gmab-bench runs the optimizer against a small set of built-in
// synthetic objectives, the way the teacher package's scheduling example
// demonstrated its solver against a concrete toy problem.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/halbux/gogmab"
)

func main() {
	var (
		dimension  = flag.Int("dim", 3, "problem dimension")
		population = flag.Int("pop", 10, "population size, must be even")
		budget     = flag.Int("budget", 500, "simulation budget (objective calls)")
		seed       = flag.Uint64("seed", 0, "RNG seed (0 draws from system entropy)")
		objective  = flag.String("objective", "sphere", "objective to minimize: sphere, sum, step")
		lower      = flag.Int("lower", -10, "inclusive lower bound per dimension")
		upper      = flag.Int("upper", 10, "inclusive upper bound per dimension")
		mutation   = flag.Float64("mutation-rate", 0.2, "per-gene mutation probability")
		crossover  = flag.Float64("crossover-rate", 0.8, "per-pair crossover probability")
		span       = flag.Float64("mutation-span", 0.3, "mutation Gaussian std dev as a fraction of bound width")
		verbose    = flag.Bool("verbose", false, "log generation-by-generation progress to stderr")
	)
	flag.Parse()

	obj, err := builtinObjective(*objective)
	if err != nil {
		log.Fatal(err)
	}

	bounds := make([]gmab.Bound, *dimension)
	for i := range bounds {
		bounds[i] = gmab.Bound{Lower: int32(*lower), Upper: int32(*upper)}
	}

	opts := gmab.Options{
		Bounds:         bounds,
		PopulationSize: *population,
		MutationRate:   *mutation,
		CrossoverRate:  *crossover,
		MutationSpan:   *span,
	}
	if *seed != 0 {
		opts.Seed = seed
	}

	optimizer, err := gmab.New(obj, opts)
	if err != nil {
		log.Fatalf("gmab-bench: %v", err)
	}
	optimizer.LogOutput = os.Stderr

	result, err := optimizer.Optimize(context.Background(), *budget, *verbose)
	if err != nil {
		log.Fatalf("gmab-bench: %v", err)
	}

	fmt.Printf("best vector: %v\n", result)
	fmt.Printf("simulations used: %d\n", optimizer.SimulationsUsed())
}

func builtinObjective(name string) (gmab.Objective, error) {
	switch name {
	case "sphere":
		return gmab.ObjectiveFunc(sphere), nil
	case "sum":
		return gmab.ObjectiveFunc(sum), nil
	case "step":
		return gmab.ObjectiveFunc(step), nil
	default:
		return nil, fmt.Errorf("gmab-bench: unknown objective %q (want sphere, sum, or step)", name)
	}
}

// sphere is the classic sum-of-squares bowl, minimized at the all-zero
// vector.
func sphere(actionVector []int32) float64 {
	total := 0.0
	for _, v := range actionVector {
		total += float64(v) * float64(v)
	}
	return total
}

// sum rewards driving every coordinate as negative as the box allows.
func sum(actionVector []int32) float64 {
	total := 0.0
	for _, v := range actionVector {
		total += float64(v)
	}
	return total
}

// step is a flat-plateau objective: the sphere value rounded down to a
// multiple of 10, exercising the bandit's handling of ties.
func step(actionVector []int32) float64 {
	raw := sphere(actionVector)
	return float64(int64(raw/10) * 10)
}
