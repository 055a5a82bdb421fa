// Package memory implements the Candidate Memory and the Sorted Mean
// Index as a single module with one atomic mutator, Observe, matching the
// spec's requirement that the two structures are always updated together.
package memory

import (
	"fmt"

	"github.com/halbux/gogmab/arm"
)

// NewArm is the sentinel arm index passed to Observe to mean "this
// candidate has not been seen before; insert it."
const NewArm = -1

// Store owns every Candidate ever seen during a run, keyed by a stable
// arm index assigned at insertion time, plus a reverse index from action
// vector to arm index and a Sorted Mean Index over evaluated candidates.
type Store struct {
	candidates      []arm.Candidate
	lookup          map[string]int
	sorted          *sortedMeanIndex
	simulationsUsed int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		lookup: make(map[string]int),
		sorted: newSortedMeanIndex(),
	}
}

// Lookup consults the reverse map for actionVector's arm index.
func (s *Store) Lookup(actionVector []int32) (int, bool) {
	idx, ok := s.lookup[arm.Key(actionVector)]
	return idx, ok
}

// Candidate returns a copy of the stored candidate at armIndex.
func (s *Store) Candidate(armIndex int) arm.Candidate {
	return s.candidates[armIndex]
}

// Len returns the number of candidates held in memory, evaluated or not.
func (s *Store) Len() int {
	return len(s.candidates)
}

// SimulationsUsed returns the number of evaluations performed so far.
func (s *Store) SimulationsUsed() int {
	return s.simulationsUsed
}

// Ascending is a range-over-func iterator over arm indices of evaluated
// candidates, in ascending mean-reward order (ties in insertion order).
func (s *Store) Ascending(yield func(armIndex int) bool) {
	s.sorted.ascending(yield)
}

// Observe is the one atomic sample-and-update operation for the pair of
// structures. When armIndex is NewArm, candidate is appended to memory at
// a fresh arm index and indexed; otherwise the existing arm at armIndex
// is re-pulled in place and candidate is ignored (the stored candidate is
// the one re-evaluated, not the newly produced duplicate). Either way,
// the arm's entry in the Sorted Mean Index is removed under its old mean
// (if any) and reinserted under its new one, and simulationsUsed is
// incremented by exactly one.
func (s *Store) Observe(armIndex int, candidate arm.Candidate, objective arm.Objective) (int, error) {
	if armIndex != NewArm {
		return s.observeExisting(armIndex, objective)
	}
	return s.observeNew(candidate, objective)
}

func (s *Store) observeExisting(armIndex int, objective arm.Objective) (int, error) {
	if armIndex < 0 || armIndex >= len(s.candidates) {
		return armIndex, fmt.Errorf("memory: arm index %d out of range [0,%d)", armIndex, len(s.candidates))
	}
	c := &s.candidates[armIndex]
	oldMean := c.MeanReward()
	s.sorted.remove(oldMean, armIndex)

	if _, err := c.Pull(objective); err != nil {
		// Leave the arm out of the index rather than reinsert it under a
		// mean that was never actually reached; the caller surfaces the
		// error and the run aborts.
		return armIndex, err
	}

	s.sorted.insert(c.MeanReward(), armIndex)
	s.simulationsUsed++
	return armIndex, nil
}

func (s *Store) observeNew(candidate arm.Candidate, objective arm.Objective) (int, error) {
	armIndex := len(s.candidates)
	s.candidates = append(s.candidates, candidate)
	c := &s.candidates[armIndex]
	s.lookup[arm.Key(c.ActionVector())] = armIndex

	if _, err := c.Pull(objective); err != nil {
		return armIndex, err
	}

	s.sorted.insert(c.MeanReward(), armIndex)
	s.simulationsUsed++
	return armIndex, nil
}
