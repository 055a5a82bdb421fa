package memory

import (
	"slices"
	"sort"
)

// sortedMeanIndex is an ordered mapping from mean-reward to the arm
// indices sharing that exact mean, supporting ascending iteration and
// precise delete/insert of (mean, armIndex) pairs.
//
// No ordered-map or B-tree library appears anywhere in the pool of
// reference repositories this module was built against, so the index is
// built directly on the standard library: a slice of distinct mean keys
// kept sorted by binary-insertion, paired index-for-index with an
// insertion-ordered slice of arm indices sharing that key. Lookup,
// insert, and delete are all O(log n) to locate the key and O(n) to shift
// the slices, which is the right tradeoff at the population sizes this
// optimizer targets.
type sortedMeanIndex struct {
	keys    []float64
	entries [][]int
}

func newSortedMeanIndex() *sortedMeanIndex {
	return &sortedMeanIndex{}
}

// find returns the position of mean in keys (and whether it is present).
// When absent, pos is where it would be inserted to keep keys sorted.
func (s *sortedMeanIndex) find(mean float64) (pos int, found bool) {
	pos = sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= mean })
	found = pos < len(s.keys) && s.keys[pos] == mean
	return pos, found
}

// insert adds armIndex under key mean, appending to that key's bucket in
// insertion order if the key already exists.
func (s *sortedMeanIndex) insert(mean float64, armIndex int) {
	pos, found := s.find(mean)
	if found {
		s.entries[pos] = append(s.entries[pos], armIndex)
		return
	}
	s.keys = slices.Insert(s.keys, pos, mean)
	s.entries = slices.Insert(s.entries, pos, []int{armIndex})
}

// remove deletes armIndex from key mean's bucket, dropping the key
// entirely once its bucket is empty.
func (s *sortedMeanIndex) remove(mean float64, armIndex int) {
	pos, found := s.find(mean)
	if !found {
		return
	}
	idx := slices.Index(s.entries[pos], armIndex)
	if idx < 0 {
		return
	}
	s.entries[pos] = slices.Delete(s.entries[pos], idx, idx+1)
	if len(s.entries[pos]) == 0 {
		s.keys = slices.Delete(s.keys, pos, pos+1)
		s.entries = slices.Delete(s.entries, pos, pos+1)
	}
}

// ascending is a range-over-func iterator yielding arm indices from
// smallest mean to largest, with ties visited in insertion order.
func (s *sortedMeanIndex) ascending(yield func(armIndex int) bool) {
	for _, bucket := range s.entries {
		for _, armIndex := range bucket {
			if !yield(armIndex) {
				return
			}
		}
	}
}

// len returns the total number of arm-index occurrences held.
func (s *sortedMeanIndex) len() int {
	n := 0
	for _, bucket := range s.entries {
		n += len(bucket)
	}
	return n
}
