package memory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halbux/gogmab/arm"
	"github.com/halbux/gogmab/gmaberr"
	"github.com/halbux/gogmab/memory"
)

func constant(value float64) arm.Objective {
	return arm.ObjectiveFunc(func([]int32) float64 { return value })
}

func ascendingIndexes(s *memory.Store) []int {
	var out []int
	for idx := range s.Ascending {
		out = append(out, idx)
	}
	return out
}

func TestObserveNewInsertsAndIndexes(t *testing.T) {
	s := memory.NewStore()

	idx, err := s.Observe(memory.NewArm, arm.New([]int32{1, 2}), constant(3.0))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.SimulationsUsed())

	found, ok := s.Lookup([]int32{1, 2})
	require.True(t, ok)
	assert.Equal(t, idx, found)

	assert.Equal(t, 3.0, s.Candidate(idx).MeanReward())
}

func TestObserveExistingRePullsInPlace(t *testing.T) {
	s := memory.NewStore()
	idx, err := s.Observe(memory.NewArm, arm.New([]int32{1, 2}), constant(4.0))
	require.NoError(t, err)

	_, err = s.Observe(idx, s.Candidate(idx), constant(6.0))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Candidate(idx).NEvaluations())
	assert.Equal(t, 5.0, s.Candidate(idx).MeanReward())
	assert.Equal(t, 2, s.SimulationsUsed())
}

func TestMemoryUniquenessAcrossRepeatedInserts(t *testing.T) {
	s := memory.NewStore()
	vectors := [][]int32{{0, 0}, {1, 1}, {0, 0}, {2, 2}, {1, 1}}

	for _, v := range vectors {
		idx, ok := s.Lookup(v)
		if !ok {
			_, err := s.Observe(memory.NewArm, arm.New(v), constant(0))
			require.NoError(t, err)
		} else {
			_, err := s.Observe(idx, arm.Candidate{}, constant(0))
			require.NoError(t, err)
		}
	}

	assert.Equal(t, 3, s.Len(), "only distinct vectors occupy an arm index")
}

func TestSortedIndexConsistencyAfterChurn(t *testing.T) {
	s := memory.NewStore()
	idxA, err := s.Observe(memory.NewArm, arm.New([]int32{0}), constant(10.0))
	require.NoError(t, err)
	idxB, err := s.Observe(memory.NewArm, arm.New([]int32{1}), constant(1.0))
	require.NoError(t, err)

	// B has the smaller mean, so it must be visited first in ascending order.
	assert.Equal(t, []int{idxB, idxA}, ascendingIndexes(s))

	// Re-pull B with a very large reward so its mean jumps above A's.
	_, err = s.Observe(idxB, arm.Candidate{}, constant(100.0))
	require.NoError(t, err)

	order := ascendingIndexes(s)
	assert.Equal(t, []int{idxA, idxB}, order)

	prev := math.Inf(-1)
	for _, idx := range order {
		// Every index held by the index must resolve to a stored candidate,
		// and the candidates' current means must be non-decreasing along
		// the ascending walk, which is what invariant A implies here.
		mean := s.Candidate(idx).MeanReward()
		assert.GreaterOrEqual(t, mean, prev)
		prev = mean
	}
}

func TestSortedIndexTiesPreserveInsertionOrder(t *testing.T) {
	s := memory.NewStore()
	idxA, err := s.Observe(memory.NewArm, arm.New([]int32{0}), constant(5.0))
	require.NoError(t, err)
	idxB, err := s.Observe(memory.NewArm, arm.New([]int32{1}), constant(5.0))
	require.NoError(t, err)

	assert.Equal(t, []int{idxA, idxB}, ascendingIndexes(s))
}

func TestObserveSurfacesObjectiveFailureUnchanged(t *testing.T) {
	s := memory.NewStore()
	_, err := s.Observe(memory.NewArm, arm.New([]int32{0}), constant(0))
	require.NoError(t, err)

	failing := arm.ObjectiveFunc(func([]int32) float64 { return math.Inf(-1) })
	_, err = s.Observe(memory.NewArm, arm.New([]int32{1}), failing)
	require.ErrorIs(t, err, gmaberr.ErrObjectiveFailure)
}

func TestMeanSnapshotSummarizesEvaluatedCandidates(t *testing.T) {
	s := memory.NewStore()
	assert.Equal(t, memory.Snapshot{}, s.MeanSnapshot())

	_, err := s.Observe(memory.NewArm, arm.New([]int32{0}), constant(2.0))
	require.NoError(t, err)
	_, err = s.Observe(memory.NewArm, arm.New([]int32{1}), constant(4.0))
	require.NoError(t, err)

	snap := s.MeanSnapshot()
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, 2.0, snap.Min)
	assert.Equal(t, 4.0, snap.Max)
	assert.Equal(t, 3.0, snap.Mean)
}
