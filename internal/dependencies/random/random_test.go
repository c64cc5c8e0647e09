package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntnRange(t *testing.T) {
	r := New()
	for i := 0; i < 1000; i++ {
		v := r.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestStringUsesAlphabet(t *testing.T) {
	s := New().String(6, "AB")
	assert.Len(t, s, 6)
	for _, c := range s {
		assert.Contains(t, "AB", string(c))
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := New()
	items := []int{0, 1, 2, 3, 4}
	Shuffle(r, len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, items)
}

func TestShuffleReachesEveryPermutation(t *testing.T) {
	r := New()
	seen := make(map[[3]int]int)
	for i := 0; i < 3000; i++ {
		items := [3]int{0, 1, 2}
		Shuffle(r, 3, func(i, j int) { items[i], items[j] = items[j], items[i] })
		seen[items]++
	}
	assert.Len(t, seen, 6)
	for perm, n := range seen {
		assert.InDelta(t, 500, n, 150, "permutation %v", perm)
	}
}
