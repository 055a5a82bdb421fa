// Package arm implements the Candidate: an integer action vector plus the
// running evaluation statistics the bandit controller needs to score it.
// Identity and equality are defined on the action vector alone; the
// statistics are mutable bookkeeping layered on top.
package arm

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/halbux/gogmab/gmaberr"
)

// Objective is the single capability a Candidate needs from the outside
// world: evaluate an action vector and return a real scalar. It may be
// deterministic or stochastic; Pull records each invocation independently.
type Objective interface {
	Evaluate(actionVector []int32) float64
}

// ObjectiveFunc adapts a plain function to the Objective interface, the
// same way http.HandlerFunc adapts a function to http.Handler.
type ObjectiveFunc func(actionVector []int32) float64

// Evaluate calls f.
func (f ObjectiveFunc) Evaluate(actionVector []int32) float64 {
	return f(actionVector)
}

// Candidate is an immutable action vector with mutable running statistics.
type Candidate struct {
	actionVector []int32
	rewardSum    float64
	nEvaluations int
}

// New constructs a Candidate with zeroed statistics. The action vector is
// copied so the caller's slice can be reused or mutated afterward.
func New(actionVector []int32) Candidate {
	return Candidate{actionVector: slices.Clone(actionVector)}
}

// ActionVector returns a copy of the candidate's decision vector.
func (c Candidate) ActionVector() []int32 {
	return slices.Clone(c.actionVector)
}

// NEvaluations returns the number of recorded evaluations.
func (c Candidate) NEvaluations() int {
	return c.nEvaluations
}

// MeanReward returns reward_sum/n_evaluations, or 0 before any evaluation.
func (c Candidate) MeanReward() float64 {
	if c.nEvaluations == 0 {
		return 0
	}
	return c.rewardSum / float64(c.nEvaluations)
}

// Pull invokes the objective on the candidate's action vector, folds the
// result into the running statistics, and returns the freshly observed
// value. A non-finite result is rejected before it can corrupt the mean.
func (c *Candidate) Pull(objective Objective) (float64, error) {
	value := objective.Evaluate(c.actionVector)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: objective returned %v for %v", gmaberr.ErrObjectiveFailure, value, c.actionVector)
	}
	c.rewardSum += value
	c.nEvaluations++
	return value, nil
}

// Equal reports whether two candidates share the same action vector;
// statistics do not participate.
func (c Candidate) Equal(other Candidate) bool {
	return slices.Equal(c.actionVector, other.actionVector)
}

// Clone returns an independent copy whose action vector does not alias c's.
func (c Candidate) Clone() Candidate {
	return Candidate{
		actionVector: slices.Clone(c.actionVector),
		rewardSum:    c.rewardSum,
		nEvaluations: c.nEvaluations,
	}
}

// Key returns a comparable, collision-free encoding of the action vector
// suitable for use as a map key (the reverse index in the memory package,
// and intra-batch dedup during mutation).
func Key(actionVector []int32) string {
	buf := make([]byte, 4*len(actionVector))
	for i, v := range actionVector {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return string(buf)
}
