// Package config handles hexmap configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Faultbox/hexes/internal/world"
	"github.com/Faultbox/hexes/pkg/hex"
)

// Generator names.
const (
	GeneratorUniform = "uniform"
	GeneratorNoise   = "noise"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Map        MapConfig        `yaml:"map" json:"map"`
	Geometry   GeometryConfig   `yaml:"geometry" json:"geometry"`
	Generation GenerationConfig `yaml:"generation" json:"generation"`
	Agents     AgentsConfig     `yaml:"agents" json:"agents"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}

// MapConfig holds the grid span, height limits and goal set.
type MapConfig struct {
	ChunksWide     int         `yaml:"chunks_wide" json:"chunks_wide" jsonschema:"minimum=1"`
	ChunksHigh     int         `yaml:"chunks_high" json:"chunks_high" jsonschema:"minimum=1"`
	Origin         hex.Axial   `yaml:"origin" json:"origin" jsonschema:"description=Chunk coordinate of the first chunk"`
	MaxFloorHeight uint8       `yaml:"max_floor_height" json:"max_floor_height"`
	MaxBrickHeight uint8       `yaml:"max_brick_height" json:"max_brick_height" jsonschema:"description=Tiles at or above this height are never entered"`
	Goals          []hex.Axial `yaml:"goals" json:"goals"`
}

// GeometryConfig holds screen geometry for renderers. Pathfinding ignores it.
type GeometryConfig struct {
	HexWidth       float64 `yaml:"hex_width" json:"hex_width"`
	HexHeight      float64 `yaml:"hex_height" json:"hex_height"`
	HexVertStep    float64 `yaml:"hex_vert_step" json:"hex_vert_step"`
	HexDepthStep   float64 `yaml:"hex_depth_step" json:"hex_depth_step"`
	WallVertOffset float64 `yaml:"wall_vert_offset" json:"wall_vert_offset"`
	WallVertStep   float64 `yaml:"wall_vert_step" json:"wall_vert_step"`
}

// GenerationConfig holds initial terrain settings.
type GenerationConfig struct {
	Generator        string  `yaml:"generator" json:"generator" jsonschema:"enum=uniform,enum=noise"`
	Seed             int64   `yaml:"seed" json:"seed" jsonschema:"description=0 picks a time based seed"`
	NoiseFrequency   float64 `yaml:"noise_frequency" json:"noise_frequency"`
	NoiseOctaves     int     `yaml:"noise_octaves" json:"noise_octaves"`
	NoisePersistence float64 `yaml:"noise_persistence" json:"noise_persistence"`
}

// AgentsConfig holds agent simulation settings.
type AgentsConfig struct {
	Count    int `yaml:"count" json:"count"`
	MaxSteps int `yaml:"max_steps" json:"max_steps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	LogFile string `yaml:"log_file" json:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	noise := world.DefaultNoiseConfig()
	return &Config{
		Map: MapConfig{
			ChunksWide:     40,
			ChunksHigh:     40,
			Origin:         hex.NewAxial(-1, -1),
			MaxFloorHeight: world.DefaultMaxFloorHeight,
			MaxBrickHeight: world.DefaultMaxBrickHeight,
			Goals:          []hex.Axial{{Q: 10, R: 6}, {Q: 11, R: 6}},
		},
		Geometry: GeometryConfig{
			HexWidth:       36,
			HexHeight:      36,
			HexVertStep:    28,
			HexDepthStep:   12,
			WallVertOffset: 12,
			WallVertStep:   12,
		},
		Generation: GenerationConfig{
			Generator:        GeneratorUniform,
			Seed:             0,
			NoiseFrequency:   noise.Frequency,
			NoiseOctaves:     noise.Octaves,
			NoisePersistence: noise.Persistence,
		},
		Agents: AgentsConfig{
			Count:    8,
			MaxSteps: 1000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would otherwise fail deep inside map construction.
func (c *Config) Validate() error {
	if c.Map.ChunksWide <= 0 || c.Map.ChunksHigh <= 0 {
		return fmt.Errorf("%w: chunk span %dx%d", ErrInvalidConfig, c.Map.ChunksWide, c.Map.ChunksHigh)
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Generation.Generator {
	case GeneratorUniform, GeneratorNoise:
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidConfig, c.Generation.Generator)
	}
	if c.Agents.Count < 0 || c.Agents.MaxSteps < 0 {
		return fmt.Errorf("%w: negative agent settings", ErrInvalidConfig)
	}
	return nil
}

// Rules returns the height rules.
func (c *Config) Rules() world.Rules {
	return world.Rules{
		MaxFloorHeight: c.Map.MaxFloorHeight,
		MaxBrickHeight: c.Map.MaxBrickHeight,
	}
}

// Layout returns the hex geometry.
func (c *Config) Layout() hex.Layout {
	return hex.Layout{
		HexWidth:       c.Geometry.HexWidth,
		HexHeight:      c.Geometry.HexHeight,
		HexVertStep:    c.Geometry.HexVertStep,
		HexDepthStep:   c.Geometry.HexDepthStep,
		WallVertOffset: c.Geometry.WallVertOffset,
		WallVertStep:   c.Geometry.WallVertStep,
	}
}

// NoiseConfig returns the noise generator settings for a resolved seed.
func (c *Config) NoiseConfig(seed int64) world.NoiseConfig {
	return world.NoiseConfig{
		Seed:        seed,
		Frequency:   c.Generation.NoiseFrequency,
		Octaves:     c.Generation.NoiseOctaves,
		Persistence: c.Generation.NoisePersistence,
	}
}

// ResolveSeed returns the configured seed, or a time based one when it is 0.
func (c *Config) ResolveSeed() int64 {
	if c.Generation.Seed != 0 {
		return c.Generation.Seed
	}
	return time.Now().UnixNano()
}

// MapOptions builds world options whose generator and randomness derive from seed.
func (c *Config) MapOptions(seed int64) world.Options {
	rng := rand.New(rand.NewSource(seed))

	var gen world.Generator
	switch c.Generation.Generator {
	case GeneratorNoise:
		gen = world.NewNoiseGenerator(c.NoiseConfig(seed), c.Map.MaxFloorHeight)
	default:
		gen = world.NewUniformGenerator(rng, c.Map.MaxFloorHeight)
	}

	return world.Options{
		ChunksWide: c.Map.ChunksWide,
		ChunksHigh: c.Map.ChunksHigh,
		Origin:     c.Map.Origin,
		Rules:      c.Rules(),
		Layout:     c.Layout(),
		Goals:      c.Map.Goals,
		Generator:  gen,
		Rand:       rng,
	}
}
