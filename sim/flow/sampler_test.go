package flow

import (
	"math/rand"
	"testing"
)

func TestFixed_ReturnsConstant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := Fixed{D: 2.5}
	for i := 0; i < 3; i++ {
		if got := s.Sample(rng); got != 2.5 {
			t.Errorf("Fixed.Sample: got %g, want 2.5", got)
		}
	}
	if got := (Fixed{D: 0}).Sample(rng); got <= 0 {
		t.Errorf("Fixed with zero duration: got %g, want > 0", got)
	}
}

func TestExponential_PositiveAndDeterministic(t *testing.T) {
	s := Exponential{Mean: 4}
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		d1 := s.Sample(rng1)
		d2 := s.Sample(rng2)
		if d1 <= 0 {
			t.Fatalf("draw %d: got %g, want > 0", i, d1)
		}
		if d1 != d2 {
			t.Fatalf("draw %d: same seed diverged: %g vs %g", i, d1, d2)
		}
	}
}

func TestGaussian_ClampedToBounds(t *testing.T) {
	s := Gaussian{Mean: 1, StdDev: 5, Min: 0.5, Max: 2}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		d := s.Sample(rng)
		if d < 0.5 || d > 2 {
			t.Fatalf("draw %d: got %g, want within [0.5, 2]", i, d)
		}
	}
}

func TestGaussian_DegenerateRange_ReturnsMin(t *testing.T) {
	s := Gaussian{Mean: 3, StdDev: 1, Min: 3, Max: 3}
	rng := rand.New(rand.NewSource(1))
	if got := s.Sample(rng); got != 3 {
		t.Errorf("degenerate Gaussian: got %g, want 3", got)
	}
}

func TestUniform_WithinRange(t *testing.T) {
	s := Uniform{Low: 1, High: 2}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		d := s.Sample(rng)
		if d < 1 || d >= 2 {
			t.Fatalf("draw %d: got %g, want within [1, 2)", i, d)
		}
	}
}
