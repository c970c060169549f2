package generators

import (
	"testing"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_with_inversions_hits_every_target_exactly(t *testing.T) {
	for n := 0; n <= 12; n += 1 {
		for k := 0; int64(k) <= MaxInversions(n); k += 1 {
			p, err := WithInversions(n, k)
			require.NoError(t, err, "n=%d k=%d", n, k)
			require.Len(t, p, n)
			assert.True(t, sequence.IsPermutation(p), "n=%d k=%d: %v", n, k, p)
			assert.Equal(t, int64(k), sequence.CountPermutationInversions(p), "n=%d k=%d: %v", n, k, p)
		}
	}
}

func Test_with_inversions_on_large_inputs(t *testing.T) {
	n := 5000
	for _, k := range []int{1, n - 1, n, 123456, int(MaxInversions(n)) - 1, int(MaxInversions(n))} {
		p, err := WithInversions(n, k)
		require.NoError(t, err)
		assert.True(t, sequence.IsPermutation(p))
		assert.Equal(t, int64(k), sequence.CountPermutationInversions(p), "k=%d", k)
	}
}

func Test_with_inversions_edge_cases(t *testing.T) {
	p, err := WithInversions(5, 0)
	require.NoError(t, err)
	assert.Equal(t, sequence.Permutation{0, 1, 2, 3, 4}, p)

	p, err = WithInversions(5, 10)
	require.NoError(t, err)
	assert.Equal(t, sequence.Permutation{4, 3, 2, 1, 0}, p)

	p, err = WithInversions(0, 0)
	require.NoError(t, err)
	assert.Empty(t, p)

	p, err = WithInversions(1, 0)
	require.NoError(t, err)
	assert.Equal(t, sequence.Permutation{0}, p)
}

func Test_with_inversions_small_target(t *testing.T) {
	p, err := WithInversions(6, 3)
	require.NoError(t, err)
	assert.True(t, sequence.IsPermutation(p))
	assert.Equal(t, int64(3), sequence.CountPermutationInversions(p))
	assert.Equal(t, sequence.Permutation{0, 1, 5, 2, 3, 4}, p)
}

func Test_with_inversions_rejects_out_of_range_targets(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
	}{
		{"negative k", 5, -1},
		{"k above maximum", 5, 11},
		{"negative n", -1, 0},
		{"k on empty", 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := WithInversions(tc.n, tc.k)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func Test_max_inversions(t *testing.T) {
	assert.Equal(t, int64(0), MaxInversions(0))
	assert.Equal(t, int64(0), MaxInversions(1))
	assert.Equal(t, int64(10), MaxInversions(5))
	assert.Equal(t, int64(4999950000), MaxInversions(100000))
}
