package systems

import "github.com/ojrac/opensimplex-go"

// SimplexNoise adapts OpenSimplex noise to NoiseSource.
type SimplexNoise struct {
	noise opensimplex.Noise
}

// NewSimplexNoise creates an OpenSimplex generator for the given seed.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{noise: opensimplex.New(seed)}
}

// Noise2D returns a noise value for 2D coordinates.
func (s *SimplexNoise) Noise2D(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}

// NewNoiseSource returns the generator named by kind ("perlin" or "simplex").
// Unknown kinds fall back to Perlin.
func NewNoiseSource(kind string, seed int64) NoiseSource {
	if kind == "simplex" {
		return NewSimplexNoise(seed)
	}
	return NewPerlinNoise(seed)
}
