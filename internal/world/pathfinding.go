package world

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hexes/pkg/hex"
)

// Path errors.
var (
	ErrNoTile      = errors.New("tile not in terrain")
	ErrUnreachable = errors.New("tile not reachable from any goal")
	ErrBrokenField = errors.New("direction field does not lead to a goal")
)

// FieldStats summarises one direction field rebuild.
type FieldStats struct {
	Goals    int // distinct goals seeded
	Skipped  int // goals missing from terrain
	Labelled int // labelled tiles, goals included
	Layers   int // breadth-first layers expanded
}

// BuildField clears field and labels every tile of terrain reachable from goals
// with the direction of the next hop toward the nearest goal.
//
// The fill is breadth-first from all goals at once, so a tile is claimed by
// whichever goal's layer reaches it first; among equally near goals the one
// listed earlier wins. Goals missing from terrain are skipped.
func BuildField(terrain Terrain, field Field, goals []hex.Axial, rules Rules) FieldStats {
	field.Clear()

	var stats FieldStats
	frontier := make([]hex.Axial, 0, len(goals))
	for _, g := range goals {
		if _, ok := terrain.Get(g); !ok {
			stats.Skipped++
			continue
		}
		if _, labelled := field.Get(g); labelled {
			continue
		}
		field.Set(g, hex.Goal)
		frontier = append(frontier, g)
	}
	stats.Goals = len(frontier)
	stats.Labelled = len(frontier)

	for len(frontier) > 0 {
		stats.Layers++
		layer := len(frontier)
		for i := 0; i < layer; i++ {
			current := frontier[i]
			from, _ := terrain.Get(current)

			for _, n := range terrain.Neighbors(current) {
				to, ok := terrain.Get(n)
				if !ok {
					continue
				}
				if _, labelled := field.Get(n); labelled {
					continue
				}
				if !rules.Feasible(from.Height(), to.Height()) {
					continue
				}

				back, _ := hex.DirectionBetween(n, current)
				field.Set(n, back)
				frontier = append(frontier, n)
				stats.Labelled++
			}
		}
		frontier = frontier[layer:]
	}

	return stats
}

// TracePath follows direction labels from start to a goal.
// The result starts with start and ends with the goal tile.
//
// Returns ErrNoTile if start has no terrain and ErrUnreachable if start is not
// labelled. ErrBrokenField means the labels loop or dangle, which a field built
// by BuildField never does.
func TracePath(terrain Terrain, field Field, start hex.Axial) ([]hex.Axial, error) {
	if _, ok := terrain.Get(start); !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoTile, start)
	}

	label, ok := field.Get(start)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, start)
	}

	// A path never visits a tile twice, so it cannot outgrow the field.
	limit := field.Len()

	path := []hex.Axial{start}
	current := start
	for !label.IsGoal() {
		if !label.Valid() {
			return nil, fmt.Errorf("%w: invalid label %v at %v", ErrBrokenField, label, current)
		}

		next := current.Step(label)
		path = append(path, next)
		if len(path) > limit {
			return nil, fmt.Errorf("%w: path from %v exceeds %d labelled tiles", ErrBrokenField, start, limit)
		}

		label, ok = field.Get(next)
		if !ok {
			return nil, fmt.Errorf("%w: %v points at unlabelled %v", ErrBrokenField, current, next)
		}
		current = next
	}

	return path, nil
}
