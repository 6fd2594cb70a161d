// Package rng provides the single seeded draw stream every generator shares.
//
// Determinism contract: one Stream is created per run and threaded through
// the generation stages in a fixed order, so the draw sequence (and therefore
// the output corpus) is fully determined by the seed and the call order.
package rng

import (
	"fmt"
	"math/rand"
	"time"
)

const hexDigits = "0123456789abcdef"

// Stream wraps a seeded math/rand source plus the global no-repeat registry
// used for transaction IDs.
type Stream struct {
	r    *rand.Rand
	used map[int]struct{}
}

// New creates a stream seeded once for the whole run.
func New(seed int64) *Stream {
	return &Stream{
		r:    rand.New(rand.NewSource(seed)),
		used: make(map[int]struct{}),
	}
}

// Float64 returns a draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Chance reports true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Intn returns a draw in [0, n).
func (s *Stream) Intn(n int) int {
	return s.r.Intn(n)
}

// IntBetween returns a draw in [min, max], both ends inclusive.
func (s *Stream) IntBetween(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("rng: IntBetween(%d, %d)", min, max))
	}
	return min + s.r.Intn(max-min+1)
}

// Uniform returns a draw in [min, max).
func (s *Stream) Uniform(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

// Normal returns a draw from N(mean, stddev).
func (s *Stream) Normal(mean, stddev float64) float64 {
	return s.r.NormFloat64()*stddev + mean
}

// Hex returns n lowercase hex characters.
func (s *Stream) Hex(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = hexDigits[s.r.Intn(16)]
	}
	return string(b)
}

// UniqueInt returns a draw in [min, max] that has never been returned by
// this stream before. The registry spans all callers, so MoMo and bank
// transaction IDs never collide numerically either.
func (s *Stream) UniqueInt(min, max int) int {
	if max-min+1 <= len(s.used) {
		panic(fmt.Sprintf("rng: UniqueInt range [%d, %d] exhausted", min, max))
	}
	for {
		n := s.IntBetween(min, max)
		if _, taken := s.used[n]; taken {
			continue
		}
		s.used[n] = struct{}{}
		return n
	}
}

// TimeBetween returns a second-granularity timestamp uniform in [start, end].
func (s *Stream) TimeBetween(start, end time.Time) time.Time {
	secs := int64(end.Sub(start) / time.Second)
	if secs <= 0 {
		return start
	}
	return start.Add(time.Duration(s.r.Int63n(secs+1)) * time.Second)
}

// Pick returns one element of items, uniformly.
func Pick[T any](s *Stream, items []T) T {
	return items[s.r.Intn(len(items))]
}

// WeightedIndex returns an index drawn with the given weights. Weights need
// not sum to one; a draw past the accumulated mass lands on the last index,
// matching a categorical draw over normalized weights.
func WeightedIndex(s *Stream, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := s.r.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if x < acc {
			return i
		}
	}
	return len(weights) - 1
}
