package hex

import "fmt"

// Direction labels a tile in a direction field with the step that moves one hop
// closer to a goal, or marks the tile as a goal itself.
type Direction uint8

// Direction constants. The six steps are listed clockwise starting at top-left.
const (
	TopLeft Direction = iota
	TopRight
	Right
	BottomRight
	BottomLeft
	Left
	Goal
)

// Directions lists the six steps in neighbor enumeration order. Goal is not a step.
var Directions = [6]Direction{TopLeft, TopRight, Right, BottomRight, BottomLeft, Left}

var directionOffsets = [...]Axial{
	TopLeft:     {Q: 0, R: -1},
	TopRight:    {Q: 1, R: -1},
	Right:       {Q: 1, R: 0},
	BottomRight: {Q: 0, R: 1},
	BottomLeft:  {Q: -1, R: 1},
	Left:        {Q: -1, R: 0},
	Goal:        {Q: 0, R: 0},
}

var directionNames = [...]string{
	TopLeft:     "TopLeft",
	TopRight:    "TopRight",
	Right:       "Right",
	BottomRight: "BottomRight",
	BottomLeft:  "BottomLeft",
	Left:        "Left",
	Goal:        "Goal",
}

// Offset returns the axial delta of the direction. Goal has a zero offset.
func (d Direction) Offset() Axial {
	if !d.Valid() {
		return Axial{}
	}
	return directionOffsets[d]
}

// Valid reports whether d is one of the six steps or Goal.
func (d Direction) Valid() bool {
	return d <= Goal
}

// IsGoal reports whether d is the terminal goal marker.
func (d Direction) IsGoal() bool {
	return d == Goal
}

// Opposite returns the reverse step. Goal is its own opposite.
func (d Direction) Opposite() Direction {
	if d >= Goal {
		return d
	}
	return (d + 3) % 6
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Glyph returns a single character for text dumps of a direction field.
func (d Direction) Glyph() byte {
	switch d {
	case TopLeft:
		return 'q'
	case TopRight:
		return 'e'
	case Right:
		return 'd'
	case BottomRight:
		return 'c'
	case BottomLeft:
		return 'z'
	case Left:
		return 'a'
	case Goal:
		return '*'
	default:
		return '?'
	}
}

// DirectionBetween returns the label that steps from `from` onto `to`.
// Equal coordinates yield Goal. Returns false if the tiles are not adjacent.
func DirectionBetween(from, to Axial) (Direction, bool) {
	delta := to.Sub(from)
	for d, off := range directionOffsets {
		if off == delta {
			return Direction(d), true
		}
	}
	return 0, false
}
