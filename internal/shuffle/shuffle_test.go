package shuffle

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicesIsPermutation(t *testing.T) {
	s := NewSeeded(1, 2)
	for n := 0; n <= 50; n++ {
		got := s.Indices(n)
		require.Len(t, got, n)

		sorted := append([]int(nil), got...)
		sort.Ints(sorted)
		want := make([]int, n)
		for i := range want {
			want[i] = i
		}
		if diff := cmp.Diff(want, sorted); diff != "" {
			t.Fatalf("n=%d not a permutation (-want +got):\n%s", n, diff)
		}
	}
}

func TestShuffleKeepsMultiset(t *testing.T) {
	s := NewSeeded(7, 7)
	xs := []int{3, 3, 1, 9, 0}
	s.Shuffle(xs)
	sort.Ints(xs)
	assert.Equal(t, []int{0, 1, 3, 3, 9}, xs)
}

// TestShuffleUniformity checks that every position is occupied by every index
// roughly 1/n of the time.
func TestShuffleUniformity(t *testing.T) {
	const (
		n      = 4
		trials = 40000
	)
	s := NewSeeded(42, 1337)

	var counts [n][n]int
	for i := 0; i < trials; i++ {
		for pos, idx := range s.Indices(n) {
			counts[pos][idx]++
		}
	}

	expected := float64(trials) / n
	for pos := 0; pos < n; pos++ {
		for idx := 0; idx < n; idx++ {
			got := float64(counts[pos][idx])
			assert.InDelta(t, expected, got, expected*0.05,
				"position %d held index %d %v times", pos, idx, got)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := NewSeeded(9, 9).Indices(10)
	b := NewSeeded(9, 9).Indices(10)
	assert.Equal(t, a, b)
}

func TestIntnRange(t *testing.T) {
	s := New()
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.Intn(4)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 4)
		seen[v] = true
	}
	assert.Len(t, seen, 4)
}
