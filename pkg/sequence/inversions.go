package sequence

// CountInversions returns the number of pairs i<j with values[i] > values[j].
// It runs a bottom-up merge sort over a copy of the input, O(n log n).
func CountInversions(values []float64) int64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	src := make([]float64, n)
	copy(src, values)
	dst := make([]float64, n)

	var inversions int64
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			inversions += merge(dst, src, lo, mid, hi)
		}
		src, dst = dst, src
	}
	return inversions
}

// merge merges src[lo:mid] and src[mid:hi] into dst[lo:hi], returning
// how many pairs crossed over.
func merge(dst, src []float64, lo, mid, hi int) int64 {
	var crossed int64
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if src[j] < src[i] {
			// Every remaining element of the left run is greater than src[j].
			crossed += int64(mid - i)
			dst[k] = src[j]
			j += 1
		} else {
			dst[k] = src[i]
			i += 1
		}
		k += 1
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
	return crossed
}

// CountPermutationInversions is CountInversions for integer permutations.
func CountPermutationInversions(p Permutation) int64 {
	return CountInversions(p.Sequence())
}
