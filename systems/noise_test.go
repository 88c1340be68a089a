package systems

import (
	"math"
	"testing"
)

func TestPerlinNoise_Deterministic(t *testing.T) {
	a := NewPerlinNoise(42)
	b := NewPerlinNoise(42)

	for i := 0; i < 50; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.91
		if a.Noise2D(x, y) != b.Noise2D(x, y) {
			t.Fatalf("same seed diverged at (%f, %f)", x, y)
		}
	}
}

func TestPerlinNoise_Range(t *testing.T) {
	p := NewPerlinNoise(7)
	for i := 0; i < 40; i++ {
		for j := 0; j < 40; j++ {
			v := p.Noise2D(float64(i)*0.23, float64(j)*0.17)
			if math.IsNaN(v) || v < -1.01 || v > 1.01 {
				t.Fatalf("noise out of range at (%d, %d): %f", i, j, v)
			}
		}
	}
}

func TestPerlinNoise_ZeroAtLattice(t *testing.T) {
	p := NewPerlinNoise(3)
	// Gradient noise vanishes at integer coordinates
	for i := -3; i < 3; i++ {
		if v := p.Noise2D(float64(i), float64(i*2)); math.Abs(v) > 1e-12 {
			t.Errorf("expected 0 at lattice point %d, got %f", i, v)
		}
	}
}

func TestNewNoiseSource(t *testing.T) {
	if _, ok := NewNoiseSource("simplex", 1).(*SimplexNoise); !ok {
		t.Error("expected simplex source")
	}
	if _, ok := NewNoiseSource("perlin", 1).(*PerlinNoise); !ok {
		t.Error("expected perlin source")
	}
	if _, ok := NewNoiseSource("bogus", 1).(*PerlinNoise); !ok {
		t.Error("expected perlin fallback for unknown kind")
	}
}

func TestSimplexNoise_Finite(t *testing.T) {
	s := NewSimplexNoise(9)
	for i := 0; i < 100; i++ {
		v := s.Noise2D(float64(i)*0.13, float64(i)*-0.29)
		if !Finite(v) || v < -1.01 || v > 1.01 {
			t.Fatalf("simplex out of range at %d: %f", i, v)
		}
	}
}
