package world

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/hexes/internal/logger"
	"github.com/Faultbox/hexes/pkg/hex"
)

// ErrInvalidOptions is returned by New for unusable map options.
var ErrInvalidOptions = errors.New("invalid map options")

// Options configures a generated map.
type Options struct {
	ChunksWide int
	ChunksHigh int
	// Origin is the chunk coordinate of the first chunk.
	Origin hex.Axial
	Rules  Rules
	Layout hex.Layout
	Goals  []hex.Axial
	// Generator picks initial heights. Nil means uniform heights drawn from Rand.
	Generator Generator
	// Rand seeds the default generator. Nil means a time-seeded source.
	Rand *rand.Rand
}

// Map owns a terrain grid and the direction field toward its goal set.
//
// Map is not safe for concurrent use. Edits, rebuilds and path queries must
// be serialised by the caller; a rebuild clears the field in place.
type Map struct {
	terrain Terrain
	field   Field
	rules   Rules
	layout  hex.Layout

	goals   []hex.Axial
	goalSet mapset.Set[hex.Axial]

	tallest   uint8
	lastBuild FieldStats
}

// New generates terrain over the configured chunk span and builds the
// direction field for the configured goals.
func New(opts Options) (*Map, error) {
	if opts.ChunksWide <= 0 || opts.ChunksHigh <= 0 {
		return nil, fmt.Errorf("%w: chunk span %dx%d", ErrInvalidOptions, opts.ChunksWide, opts.ChunksHigh)
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	gen := opts.Generator
	if gen == nil {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		gen = NewUniformGenerator(rng, opts.Rules.MaxFloorHeight)
	}

	m := NewWithStorage(hex.NewGrid[Tile](), hex.NewGrid[hex.Direction](), opts.Rules)
	m.layout = opts.Layout

	start := time.Now()
	for q := 0; q < opts.ChunksWide; q++ {
		for r := 0; r < opts.ChunksHigh; r++ {
			chunk := hex.NewChunk[Tile](opts.Origin.Q+q, opts.Origin.R+r)
			chunk.Fill(func(a hex.Axial) Tile {
				h := gen.Height(a)
				if h > m.tallest {
					m.tallest = h
				}
				return NewTile(h)
			})
			m.terrain.InsertChunk(chunk)
		}
	}

	logger.Named("world").Info("terrain generated",
		zap.Int("chunks", opts.ChunksWide*opts.ChunksHigh),
		zap.Int("tiles", m.terrain.Len()),
		zap.Uint8("tallest", m.tallest),
		zap.Duration("took", time.Since(start)))

	m.UpdateField(opts.Goals)
	return m, nil
}

// NewWithStorage creates an empty map on caller-supplied storage.
// Populate it with SetTile, then call UpdateField.
func NewWithStorage(terrain Terrain, field Field, rules Rules) *Map {
	return &Map{
		terrain: terrain,
		field:   field,
		rules:   rules,
		goalSet: mapset.New[hex.Axial](),
	}
}

// SetTile places or replaces a tile. A ground height above the wall is lowered to it.
func (m *Map) SetTile(a hex.Axial, t Tile) {
	if t.GroundHeight > t.WallHeight {
		t.GroundHeight = t.WallHeight
	}
	m.terrain.Set(a, t)
	if t.WallHeight > m.tallest {
		m.tallest = t.WallHeight
	}
}

// Tile returns the terrain profile at a.
func (m *Map) Tile(a hex.Axial) (Tile, bool) {
	return m.terrain.Get(a)
}

// Height returns the traversal height of a.
func (m *Map) Height(a hex.Axial) (uint8, bool) {
	t, ok := m.terrain.Get(a)
	if !ok {
		return 0, false
	}
	return t.Height(), true
}

// IsTraversable reports whether a exists and is below the height ceiling.
func (m *Map) IsTraversable(a hex.Axial) bool {
	h, ok := m.Height(a)
	return ok && m.rules.Walkable(h)
}

// Flatten sets the traversal height of a.
//
// Raising only lifts the wall, leaving the ground untouched. Lowering drops the
// wall and pulls the ground down with it if needed. A missing tile is created
// as a freestanding wall. The direction field is not rebuilt.
func (m *Map) Flatten(a hex.Axial, height uint8) {
	t, ok := m.terrain.Get(a)
	if !ok {
		m.SetTile(a, NewWall(height))
		return
	}

	switch {
	case t.Height() == height:
		return
	case t.Height() < height:
		t.WallHeight = height
	default:
		t.WallHeight = height
		if t.GroundHeight > height {
			t.GroundHeight = height
		}
	}
	m.SetTile(a, t)
}

// UpdateField replaces the goal set and rebuilds the direction field.
func (m *Map) UpdateField(goals []hex.Axial) FieldStats {
	m.goals = slices.Clone(goals)
	m.goalSet = mapset.New[hex.Axial]()
	for _, g := range m.goals {
		m.goalSet.Put(g)
	}
	return m.Rebuild()
}

// Rebuild recomputes the direction field for the current goals.
// Call it after terrain edits that should affect paths.
func (m *Map) Rebuild() FieldStats {
	log := logger.Named("world")

	start := time.Now()
	stats := BuildField(m.terrain, m.field, m.goals, m.rules)
	m.lastBuild = stats

	if stats.Skipped > 0 {
		log.Warn("goals outside terrain skipped", zap.Int("skipped", stats.Skipped))
	}
	log.Debug("direction field rebuilt",
		zap.Int("goals", stats.Goals),
		zap.Int("labelled", stats.Labelled),
		zap.Int("layers", stats.Layers),
		zap.Duration("took", time.Since(start)))

	return stats
}

// AddGoal appends a to the goal set. Returns false if it already was a goal.
// The field is not rebuilt.
func (m *Map) AddGoal(a hex.Axial) bool {
	if m.goalSet.Has(a) {
		return false
	}
	m.goalSet.Put(a)
	m.goals = append(m.goals, a)
	return true
}

// RemoveGoal drops a from the goal set. Returns false if it was not a goal.
// The field is not rebuilt.
func (m *Map) RemoveGoal(a hex.Axial) bool {
	if !m.goalSet.Has(a) {
		return false
	}
	m.goalSet.Remove(a)
	m.goals = slices.DeleteFunc(m.goals, func(g hex.Axial) bool { return g == a })
	return true
}

// IsGoal reports whether a is in the goal set.
func (m *Map) IsGoal(a hex.Axial) bool {
	return m.goalSet.Has(a)
}

// Goals returns a copy of the goal list in fill order.
func (m *Map) Goals() []hex.Axial {
	return slices.Clone(m.goals)
}

// Path returns the tiles from start to its nearest goal, both included.
// See TracePath for the error cases.
func (m *Map) Path(start hex.Axial) ([]hex.Axial, error) {
	return TracePath(m.terrain, m.field, start)
}

// Direction returns the field label at a.
func (m *Map) Direction(a hex.Axial) (hex.Direction, bool) {
	return m.field.Get(a)
}

// IsReachable reports whether a is labelled in the current field.
func (m *Map) IsReachable(a hex.Axial) bool {
	_, ok := m.field.Get(a)
	return ok
}

// EachTile calls fn for every terrain tile.
func (m *Map) EachTile(fn func(a hex.Axial, t Tile)) {
	m.terrain.Each(fn)
}

// TileCount returns the number of terrain tiles.
func (m *Map) TileCount() int {
	return m.terrain.Len()
}

// ReachableCount returns the number of labelled tiles, goals included.
func (m *Map) ReachableCount() int {
	return m.field.Len()
}

// Tallest returns the highest wall ever placed on the map.
func (m *Map) Tallest() uint8 {
	return m.tallest
}

// Rules returns the height rules.
func (m *Map) Rules() Rules {
	return m.rules
}

// Layout returns the screen geometry.
func (m *Map) Layout() hex.Layout {
	return m.layout
}

// LastRebuild returns the statistics of the most recent field rebuild.
func (m *Map) LastRebuild() FieldStats {
	return m.lastBuild
}
