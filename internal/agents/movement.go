// Package agents moves identified agents along direction-field paths.
package agents

import (
	"github.com/Faultbox/hexes/pkg/hex"
)

// Mover walks a position along a path one tile per step.
type Mover struct {
	position hex.Axial

	// Current path, excluding the starting tile
	path      []hex.Axial
	pathIndex int

	IsFollowingPath bool
}

// NewMover creates a mover standing at position.
func NewMover(position hex.Axial) *Mover {
	return &Mover{position: position}
}

// Position returns the current tile.
func (mv *Mover) Position() hex.Axial {
	return mv.position
}

// Teleport moves to a tile directly and drops the current path.
func (mv *Mover) Teleport(position hex.Axial) {
	mv.position = position
	mv.ClearPath()
}

// Follow starts following path. The first tile must be the current position;
// it is skipped. A single-tile path means the mover is already there.
func (mv *Mover) Follow(path []hex.Axial) {
	mv.ClearPath()
	if len(path) == 0 || path[0] != mv.position {
		return
	}
	mv.path = path[1:]
	mv.IsFollowingPath = len(mv.path) > 0
}

// Step advances one tile. Returns false if there was nowhere to go.
func (mv *Mover) Step() bool {
	if !mv.IsFollowingPath || mv.pathIndex >= len(mv.path) {
		mv.IsFollowingPath = false
		return false
	}

	mv.position = mv.path[mv.pathIndex]
	mv.pathIndex++

	if mv.pathIndex >= len(mv.path) {
		mv.IsFollowingPath = false
	}
	return true
}

// ClearPath stops the current path following.
func (mv *Mover) ClearPath() {
	mv.path = nil
	mv.pathIndex = 0
	mv.IsFollowingPath = false
}

// Remaining returns the tiles still ahead.
func (mv *Mover) Remaining() []hex.Axial {
	if mv.pathIndex >= len(mv.path) {
		return nil
	}
	return mv.path[mv.pathIndex:]
}

// GetPath returns the current path.
func (mv *Mover) GetPath() []hex.Axial {
	return mv.path
}

// GetPathIndex returns the current index in the path.
func (mv *Mover) GetPathIndex() int {
	return mv.pathIndex
}
