// Package world provides hex terrain, goal direction fields and pathfinding over them.
package world

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hexes/pkg/hex"
)

// Default height limits.
const (
	DefaultMaxFloorHeight uint8 = 2
	DefaultMaxBrickHeight uint8 = 4
)

// Tile is the terrain profile of one hex.
// GroundHeight is the floor under an overhang, WallHeight the top of the column.
// GroundHeight never exceeds WallHeight.
type Tile struct {
	GroundHeight uint8
	WallHeight   uint8
}

// NewTile returns a solid column of the given height.
func NewTile(height uint8) Tile {
	return Tile{GroundHeight: height, WallHeight: height}
}

// NewWall returns a freestanding wall: bare ground with a wall up to height.
func NewWall(height uint8) Tile {
	return Tile{GroundHeight: 0, WallHeight: height}
}

// Height returns the effective traversal height.
func (t Tile) Height() uint8 {
	return t.WallHeight
}

// IsOverhang reports whether the wall is raised above the ground.
func (t Tile) IsOverhang() bool {
	return t.WallHeight > t.GroundHeight
}

// String returns "ground/wall".
func (t Tile) String() string {
	return fmt.Sprintf("%d/%d", t.GroundHeight, t.WallHeight)
}

// Terrain is the storage holding tile heights.
type Terrain = hex.Storage[Tile]

// Field is the storage holding direction labels.
type Field = hex.Storage[hex.Direction]

// ErrInvalidRules is returned for height limits that make no sense.
var ErrInvalidRules = errors.New("invalid height rules")

// Rules holds the height limits that decide traversal.
type Rules struct {
	// MaxFloorHeight bounds randomly generated floor tiles.
	MaxFloorHeight uint8
	// MaxBrickHeight is the ceiling: tiles at or above it are never entered.
	MaxBrickHeight uint8
}

// DefaultRules returns the standard floor and brick limits.
func DefaultRules() Rules {
	return Rules{
		MaxFloorHeight: DefaultMaxFloorHeight,
		MaxBrickHeight: DefaultMaxBrickHeight,
	}
}

// Validate checks that generated floor tiles stay below the ceiling.
func (r Rules) Validate() error {
	if r.MaxBrickHeight == 0 {
		return fmt.Errorf("%w: max brick height must be positive", ErrInvalidRules)
	}
	if r.MaxFloorHeight >= r.MaxBrickHeight {
		return fmt.Errorf("%w: max floor height %d must be below max brick height %d",
			ErrInvalidRules, r.MaxFloorHeight, r.MaxBrickHeight)
	}
	return nil
}

// Feasible reports whether a single step between tiles of heights from and to is allowed.
// The step is symmetric: heights may differ by at most one and both must be below the ceiling.
func (r Rules) Feasible(from, to uint8) bool {
	larger, smaller := from, to
	if to > from {
		larger, smaller = to, from
	}
	return larger-smaller <= 1 && larger < r.MaxBrickHeight
}

// Walkable reports whether a tile of this height can be stood on at all.
func (r Rules) Walkable(height uint8) bool {
	return height < r.MaxBrickHeight
}
