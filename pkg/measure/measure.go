// Package measure times candidate sorting algorithms on generated datasets
// and ranks them by wall-clock time.
package measure

import (
	"fmt"
	"sort"
	"time"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
)

// Candidate is a named in-place sort.
type Candidate struct {
	Name string
	Sort func(values []float64)
}

// Timing is the result of running one candidate over one dataset.
type Timing struct {
	Name    string
	Size    int
	Elapsed time.Duration
}

// DefaultCandidates returns the built-in sorts.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "bubble", Sort: BubbleSort},
		{Name: "insertion", Sort: InsertionSort},
		{Name: "stdlib", Sort: sort.Float64s},
	}
}

// Rank runs every candidate over its own copy of data and returns the
// timings fastest first. A candidate that leaves its copy unsorted is an error.
func Rank(data sequence.Sequence, candidates []Candidate) ([]Timing, error) {
	timings := make([]Timing, 0, len(candidates))
	work := make([]float64, len(data))
	for _, candidate := range candidates {
		copy(work, data)

		start := time.Now()
		candidate.Sort(work)
		elapsed := time.Since(start)

		if !sequence.IsSorted(work) {
			return nil, fmt.Errorf("candidate %s did not sort the input", candidate.Name)
		}
		timings = append(timings, Timing{Name: candidate.Name, Size: len(data), Elapsed: elapsed})
	}

	sort.SliceStable(timings, func(i, j int) bool {
		return timings[i].Elapsed < timings[j].Elapsed
	})
	return timings, nil
}

// BubbleSort is the classic O(n²) exchange sort used as the reference
// workload, stopping early once a pass makes no swaps.
func BubbleSort(values []float64) {
	n := len(values)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if values[j] > values[j+1] {
				values[j], values[j+1] = values[j+1], values[j]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// InsertionSort runs in O(n + inversions).
func InsertionSort(values []float64) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}
