package generators

import (
	"math/rand/v2"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
)

// Skip-one swaps exchange p[i] and p[i+2], so at least three elements are needed.
const minSwapLength = 3

// OutOfPlace returns a permutation of [0..n-1] reached from sorted order by
// swapping p[i] and p[i+2] at pseudo-random i in [0, n-3] until the
// displacement budget c is spent.
//
// c is a budget, not an exact count: the first swap spends 2 and each later
// swap spends 1, on the basis that a later swap may move an element that is
// already out of place. Later swaps are drawn so that at least one of the
// two positions they touch is already displaced, which makes the budget an
// upper bound: the result differs from the identity in at most c positions.
// Use WithInversions when an exact disorder measure is needed.
func OutOfPlace(rng *rand.Rand, n, c int) (sequence.Permutation, error) {
	const method = "OutOfPlace"
	if err := (SwapTarget{N: n, C: c}).Validate(); err != nil {
		return nil, err
	}

	p := sequence.Identity(n)
	if c == 0 {
		return p, nil
	}
	if rng == nil {
		return nil, invalidf(method, "random source is required")
	}

	displaced := newPositionSet(n)
	swap := func(idx int) {
		p[idx], p[idx+2] = p[idx+2], p[idx]
		displaced.sync(p, idx)
		displaced.sync(p, idx+2)
	}

	swap(rng.IntN(n - 2))
	spent := 2
	for spent < c {
		swap(anchoredIndex(rng, displaced, n))
		spent += 1
	}
	return p, nil
}

// anchoredIndex picks a swap index whose pair includes a displaced
// position. When every element is back in place it falls back to a
// uniform index, which displaces two positions for one unit of budget
// and keeps the bound since at least two units were already spent.
func anchoredIndex(rng *rand.Rand, displaced *positionSet, n int) int {
	if displaced.len() == 0 {
		return rng.IntN(n - 2)
	}
	pos := displaced.at(rng.IntN(displaced.len()))

	// Only positions reachable by a swap are ever displaced, so at least
	// one of these is valid.
	asLeft := pos <= n-3
	asRight := pos >= 2
	switch {
	case asLeft && asRight:
		if rng.IntN(2) == 0 {
			return pos
		}
		return pos - 2
	case asLeft:
		return pos
	default:
		return pos - 2
	}
}

// positionSet tracks displaced positions with O(1) insert, delete and
// uniform selection.
type positionSet struct {
	items []int
	index []int
}

func newPositionSet(n int) *positionSet {
	index := make([]int, n)
	for i := range index {
		index[i] = -1
	}
	return &positionSet{index: index}
}

func (s *positionSet) len() int {
	return len(s.items)
}

func (s *positionSet) at(i int) int {
	return s.items[i]
}

// sync records whether pos is displaced in p.
func (s *positionSet) sync(p sequence.Permutation, pos int) {
	present := s.index[pos] >= 0
	out := p[pos] != pos
	switch {
	case out && !present:
		s.index[pos] = len(s.items)
		s.items = append(s.items, pos)
	case !out && present:
		last := s.items[len(s.items)-1]
		s.items[s.index[pos]] = last
		s.index[last] = s.index[pos]
		s.items = s.items[:len(s.items)-1]
		s.index[pos] = -1
	}
}
