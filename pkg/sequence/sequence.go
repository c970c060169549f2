// Package sequence holds the value types produced by the generators
// along with the disorder metrics used to check them.
package sequence

// Sequence is an ordered, fixed-length list of generated values.
// Generators hand ownership of the slice to the caller.
type Sequence []float64

// Permutation is a bijection over [0..n-1].
type Permutation []int

// Sequence converts the permutation into generator output form.
func (p Permutation) Sequence() Sequence {
	seq := make(Sequence, len(p))
	for i, v := range p {
		seq[i] = float64(v)
	}
	return seq
}

// Identity returns [0, 1, ..., n-1].
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// IsPermutation reports whether every integer in [0..len(p)-1]
// appears exactly once.
func IsPermutation(p Permutation) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Displaced counts the positions i where p[i] != i.
func Displaced(p Permutation) int {
	count := 0
	for i, v := range p {
		if v != i {
			count += 1
		}
	}
	return count
}

// IsStrictlyIncreasing reports whether every value exceeds the one before it.
func IsStrictlyIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return false
		}
	}
	return true
}

// IsStrictlyDecreasing reports whether every value is below the one before it.
func IsStrictlyDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] >= values[i-1] {
			return false
		}
	}
	return true
}

// IsSorted reports whether values are in non-decreasing order.
func IsSorted(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}
