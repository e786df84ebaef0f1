// internal/utils/prng.go
package utils

import (
	"math"
	"math/rand"
	"time"
)

// PRNGService wraps a seeded generator so effect jitter can be reproduced in tests.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService creates a generator with the given seed. A zero seed uses the
// current time.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Intn returns a random int in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a random float in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Range returns a random float in [lo, hi).
func (s *PRNGService) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// Chance returns true with probability p.
func (s *PRNGService) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return s.rng.Float64() < p
}

// UnitVector returns a random direction, uniformly distributed on the upper
// hemisphere when upper is true and on the full sphere otherwise.
func (s *PRNGService) UnitVector(upper bool) (x, y, z float64) {
	theta := s.Range(0, 2*math.Pi)
	lo := -1.0
	if upper {
		lo = 0
	}
	y = s.Range(lo, 1)
	r := math.Sqrt(1 - y*y)
	return r * math.Cos(theta), y, r * math.Sin(theta)
}
