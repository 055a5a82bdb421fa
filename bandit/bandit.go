// Package bandit implements the non-dominated-set UCB selection rule: the
// procedure that, given the Sorted Mean Index, picks the arm that is both
// plausibly optimal and least-explored.
package bandit

import (
	"math"

	"github.com/halbux/gogmab/arm"
)

// Store is the read-only view of the Candidate Memory + Sorted Mean Index
// that SelectBest needs. *memory.Store satisfies this interface.
type Store interface {
	Candidate(armIndex int) arm.Candidate
	SimulationsUsed() int
	Ascending(yield func(armIndex int) bool)
}

// SelectBest runs the two-pass non-dominated-set walk described in the
// design and returns the arm index of the best candidate.
//
// Pass one finds N_max, the largest evaluation count across all of
// memory. Pass two walks the Sorted Mean Index in ascending order,
// stopping just after the first arm whose evaluation count equals N_max;
// that prefix is the non-dominated set. Within the prefix, each arm's
// mean is normalized against the smallest and largest means seen during
// the walk and penalized by an exploration bonus that shrinks with more
// pulls; the arm with the lowest penalized score wins, ties going to
// whichever was visited first.
//
// When the prefix's smallest and largest means are equal, the UCB formula
// divides by zero; the legacy behavior this reimplements always overwrites
// the running best with the current arm in that case, so the final member
// of the prefix silently wins instead of the first-visited one. That
// quirk is preserved here rather than fixed — see DESIGN.md.
func SelectBest(store Store) int {
	nMax := 0
	for idx := range store.Ascending {
		if n := store.Candidate(idx).NEvaluations(); n > nMax {
			nMax = n
		}
	}

	var prefix []int
	meanMin, meanMax := 0.0, 0.0
	first := true
	for idx := range store.Ascending {
		mean := store.Candidate(idx).MeanReward()
		if first {
			meanMin, meanMax = mean, mean
			first = false
		} else if mean > meanMax {
			meanMax = mean
		}
		prefix = append(prefix, idx)
		if store.Candidate(idx).NEvaluations() == nMax {
			break
		}
	}

	simulationsUsed := float64(store.SimulationsUsed())
	collapsed := meanMax == meanMin

	bestIndex := prefix[len(prefix)-1]
	bestUCB := math.MaxFloat64

	for _, idx := range prefix {
		if collapsed {
			bestIndex = idx
			continue
		}

		candidate := store.Candidate(idx)
		normalizedMean := (candidate.MeanReward() - meanMin) / (meanMax - meanMin)
		penalty := math.Sqrt(2 * math.Log(simulationsUsed) / float64(candidate.NEvaluations()))
		ucb := normalizedMean + penalty

		if ucb < bestUCB {
			bestUCB = ucb
			bestIndex = idx
		}
	}

	return bestIndex
}
