package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/hexes/pkg/hex"
)

// Generator picks the initial height of a tile.
type Generator interface {
	Height(a hex.Axial) uint8
}

// UniformGenerator draws every height independently from [0, MaxHeight].
// Heights depend on call order, so fill tiles in a fixed order for reproducible maps.
type UniformGenerator struct {
	rng       *rand.Rand
	MaxHeight uint8
}

// NewUniformGenerator creates a uniform generator on top of rng.
func NewUniformGenerator(rng *rand.Rand, maxHeight uint8) *UniformGenerator {
	return &UniformGenerator{rng: rng, MaxHeight: maxHeight}
}

// Height returns a uniformly random height.
func (g *UniformGenerator) Height(hex.Axial) uint8 {
	return uint8(g.rng.Intn(int(g.MaxHeight) + 1))
}

// NoiseConfig holds fractal noise parameters.
type NoiseConfig struct {
	Seed        int64
	Frequency   float64
	Octaves     int
	Persistence float64
}

// DefaultNoiseConfig returns rolling hills at the default floor height.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:        1,
		Frequency:   0.08,
		Octaves:     4,
		Persistence: 0.5,
	}
}

// NoiseGenerator derives heights from layered simplex noise, producing
// smooth hills instead of uniform static. Heights depend only on position.
type NoiseGenerator struct {
	noise     opensimplex.Noise
	cfg       NoiseConfig
	MaxHeight uint8
}

// NewNoiseGenerator creates a noise generator scaled to [0, maxHeight].
func NewNoiseGenerator(cfg NoiseConfig, maxHeight uint8) *NoiseGenerator {
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	if cfg.Frequency <= 0 {
		cfg.Frequency = DefaultNoiseConfig().Frequency
	}
	if cfg.Persistence <= 0 {
		cfg.Persistence = DefaultNoiseConfig().Persistence
	}
	return &NoiseGenerator{
		noise:     opensimplex.NewNormalized(cfg.Seed),
		cfg:       cfg,
		MaxHeight: maxHeight,
	}
}

// Height samples the noise at the tile centre.
func (g *NoiseGenerator) Height(a hex.Axial) uint8 {
	// Sample on a skewed lattice so hex neighbours are equidistant in noise space.
	x := float64(a.Q) + float64(a.R)/2
	y := float64(a.R) * math.Sqrt(3) / 2

	v := octaveNoise(g.noise, x, y, g.cfg.Octaves, g.cfg.Frequency, g.cfg.Persistence)
	h := int(v * float64(int(g.MaxHeight)+1))
	if h < 0 {
		h = 0
	}
	if h > int(g.MaxHeight) {
		h = int(g.MaxHeight)
	}
	return uint8(h)
}

// octaveNoise generates fractal noise in [0, 1) by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
