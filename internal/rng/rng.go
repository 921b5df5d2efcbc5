// Package rng provides the single seeded random stream that every stochastic
// part of the simulation draws from. Runs are reproducible from one seed.
package rng

import (
	"math"
	"math/rand/v2"
)

// Stream is a deterministic pseudo-random source (PCG).
// It is not safe for concurrent use; the simulation is single-threaded.
type Stream struct {
	r *rand.Rand
}

// New creates a stream from the given seed.
func New(seed int64) *Stream {
	s := uint64(seed)
	return &Stream{r: rand.New(rand.NewPCG(s, s^0x9E3779B97F4A7C15))}
}

// Float returns a uniform float64 in [0, 1).
func (s *Stream) Float() float64 {
	return s.r.Float64()
}

// Uniform returns a uniform float64 in [lo, hi).
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// Intn returns a uniform int in [0, n). Returns 0 if n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Uint64 returns a uniform 64-bit value.
func (s *Stream) Uint64() uint64 {
	return s.r.Uint64()
}

// Gaussian returns a normally distributed sample with the given mean and
// standard deviation.
func (s *Stream) Gaussian(mean, stddev float64) float64 {
	return mean + s.r.NormFloat64()*stddev
}

// GaussianInt returns a Gaussian sample rounded to the nearest integer.
func (s *Stream) GaussianInt(mean, stddev float64) int {
	return int(math.Round(s.Gaussian(mean, stddev)))
}

// Shuffle permutes n elements in place using the provided swap function.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}
