package generator

import (
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Source is the random source threaded through a generation call. The
// integer draws, the faker and the uuid reader all consume the same PCG
// stream, so a fixed seed reproduces the whole value tree.
//
// A Source is not safe for concurrent use.
type Source struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewSource returns a Source seeded with seed.
func NewSource(seed uint64) *Source {
	return newSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a Source seeded from the runtime's entropy.
func NewRandomSource() *Source {
	return newSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func newSource(pcg *rand.PCG) *Source {
	return &Source{
		rng:   rand.New(pcg),
		faker: gofakeit.NewFaker(pcg, false),
	}
}

// Faker exposes the faker bound to this source.
func (s *Source) Faker() *gofakeit.Faker {
	return s.faker
}

// IntN returns a uniform int in [0, n). n must be positive.
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

// IntRange returns a uniform int in [lo, hi]. Reversed bounds are swapped.
func (s *Source) IntRange(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// Float64Range returns a uniform float in [lo, hi).
func (s *Source) Float64Range(lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Bool returns a uniform boolean.
func (s *Source) Bool() bool {
	return s.rng.IntN(2) == 1
}

// Read fills p from the random stream. It never fails.
func (s *Source) Read(p []byte) (int, error) {
	for i := 0; i < len(p); {
		v := s.rng.Uint64()
		for j := 0; j < 8 && i < len(p); j++ {
			p[i] = byte(v)
			v >>= 8
			i++
		}
	}
	return len(p), nil
}

// UUID returns a version 4 UUID drawn from the stream.
func (s *Source) UUID() string {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		// Read never fails, so this is unreachable.
		return uuid.Nil.String()
	}
	return id.String()
}
