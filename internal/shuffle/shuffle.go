// Package shuffle produces uniformly random permutations for card rounds.
package shuffle

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Shuffler wraps a random source. The zero value is not usable; use New or NewSeeded.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Shuffler seeded from the clock.
func New() *Shuffler {
	now := uint64(time.Now().UnixNano())
	return NewSeeded(now, now>>32)
}

// NewSeeded returns a deterministic Shuffler, for tests and replays.
func NewSeeded(seed1, seed2 uint64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Shuffle permutes xs in place (Fisher-Yates from the end).
func (s *Shuffler) Shuffle(xs []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(xs) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// Indices returns a fresh random permutation of 0..n-1.
func (s *Shuffler) Indices(n int) []int {
	if n <= 0 {
		return []int{}
	}
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	s.Shuffle(xs)
	return xs
}

// Intn returns a uniform int in [0, n). n must be positive.
func (s *Shuffler) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
