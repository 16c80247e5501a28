package flow

import (
	"math"
	"math/rand"
)

// minDuration is the floor for sampled durations: the kernel accepts zero
// delays, but a strictly positive draw keeps event times strictly ordered.
const minDuration = 1e-9

// Sampler draws positive durations in simulated time units.
type Sampler interface {
	// Sample returns a duration > 0.
	Sample(rng *rand.Rand) float64
}

// Fixed always returns the same duration.
type Fixed struct {
	D float64
}

func (s Fixed) Sample(*rand.Rand) float64 {
	if s.D <= 0 {
		return minDuration
	}
	return s.D
}

// Exponential produces exponentially-distributed durations.
type Exponential struct {
	Mean float64
}

func (s Exponential) Sample(rng *rand.Rand) float64 {
	d := rng.ExpFloat64() * s.Mean
	if d <= 0 || math.IsInf(d, 0) || math.IsNaN(d) {
		return minDuration
	}
	return d
}

// Gaussian produces clamped Gaussian durations.
type Gaussian struct {
	Mean, StdDev float64
	Min, Max     float64
}

func (s Gaussian) Sample(rng *rand.Rand) float64 {
	if s.Min == s.Max && s.Min > 0 {
		return s.Min
	}
	d := rng.NormFloat64()*s.StdDev + s.Mean
	d = math.Min(s.Max, math.Max(s.Min, d))
	if d <= 0 {
		return minDuration
	}
	return d
}

// Uniform produces durations uniformly drawn from [Low, High).
type Uniform struct {
	Low, High float64
}

func (s Uniform) Sample(rng *rand.Rand) float64 {
	d := s.Low + rng.Float64()*(s.High-s.Low)
	if d <= 0 {
		return minDuration
	}
	return d
}
