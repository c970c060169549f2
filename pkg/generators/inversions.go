package generators

import (
	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
)

// WithInversions builds a permutation of [0..n-1] with exactly k inversions
// in O(n), without any sort-and-count verification.
//
// Positions are filled left to right. While the remaining budget is larger
// than what the suffix after position i can absorb (n-1-i), the largest
// unused value goes to position i, which contributes n-1-i inversions.
// The leftover budget r is then placed in the suffix as one rotated block
// of r+1 values (block maximum first), preceded by the smaller suffix
// values in ascending order. That block contributes exactly r inversions.
//
// At every step the inversions already placed plus the remaining budget
// equal k.
func WithInversions(n, k int) (sequence.Permutation, error) {
	if err := (InversionTarget{N: n, K: k}).Validate(); err != nil {
		return nil, err
	}

	p := make(sequence.Permutation, n)
	remaining := k
	i := 0
	for ; remaining > 0 && remaining > n-1-i; i++ {
		p[i] = n - 1 - i
		remaining -= n - 1 - i
	}

	// Values [0, n-i) are left for positions [i, n).
	if remaining == 0 {
		for j := i; j < n; j++ {
			p[j] = j - i
		}
		return p, nil
	}

	blockStart := n - 1 - remaining
	for j := i; j < blockStart; j++ {
		p[j] = j - i
	}

	// Rotate the block right by one: its maximum leads, the rest ascend.
	p[blockStart] = n - 1 - i
	for j := blockStart + 1; j < n; j++ {
		p[j] = j - 1 - i
	}
	return p, nil
}
