package memory

import "gonum.org/v1/gonum/floats"

// Snapshot summarizes the mean rewards currently held in the Sorted Mean
// Index, the numbers a verbose run reports alongside its selected arm.
type Snapshot struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// MeanSnapshot computes Snapshot over every evaluated candidate's mean
// reward. Reported means are few enough per generation (bounded by the
// population size and the number of distinct arms ever observed) that a
// dense floats.Min/Max/Sum pass each call is cheap relative to a single
// objective evaluation.
func (s *Store) MeanSnapshot() Snapshot {
	means := make([]float64, 0, len(s.candidates))
	for idx := range s.Ascending {
		means = append(means, s.Candidate(idx).MeanReward())
	}

	if len(means) == 0 {
		return Snapshot{}
	}

	return Snapshot{
		Count: len(means),
		Min:   floats.Min(means),
		Max:   floats.Max(means),
		Mean:  floats.Sum(means) / float64(len(means)),
	}
}
