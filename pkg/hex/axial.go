// Package hex provides axial hex coordinates, hex directions and chunked hex grid storage.
package hex

import (
	"fmt"
	"strconv"
	"strings"
)

// Axial is a hex tile position in axial coordinates.
// The third cube coordinate is implicit: s = -q - r.
type Axial struct {
	Q int `yaml:"q" json:"q"`
	R int `yaml:"r" json:"r"`
}

// NewAxial returns the axial coordinate (q, r).
func NewAxial(q, r int) Axial {
	return Axial{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

// Add returns a + other.
func (a Axial) Add(other Axial) Axial {
	return Axial{Q: a.Q + other.Q, R: a.R + other.R}
}

// Sub returns a - other.
func (a Axial) Sub(other Axial) Axial {
	return Axial{Q: a.Q - other.Q, R: a.R - other.R}
}

// Step returns the tile one hop away in direction d.
func (a Axial) Step(d Direction) Axial {
	return a.Add(d.Offset())
}

// Neighbors returns the six adjacent coordinates in Directions order.
// Whether they exist in a grid is up to the caller.
func (a Axial) Neighbors() [6]Axial {
	var result [6]Axial
	for i, d := range Directions {
		result[i] = a.Step(d)
	}
	return result
}

// Distance returns the number of hex steps between a and other.
func (a Axial) Distance(other Axial) int {
	dq := abs(a.Q - other.Q)
	dr := abs(a.R - other.R)
	ds := abs(a.S() - other.S())
	return max(dq, dr, ds)
}

// String returns "(q,r)".
func (a Axial) String() string {
	return fmt.Sprintf("(%d,%d)", a.Q, a.R)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ParseAxial parses "q,r" as written by String, with or without parentheses.
func ParseAxial(s string) (Axial, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	qs, rs, ok := strings.Cut(s, ",")
	if !ok {
		return Axial{}, fmt.Errorf("parsing axial %q: expected q,r", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return Axial{}, fmt.Errorf("parsing axial %q: %w", s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Axial{}, fmt.Errorf("parsing axial %q: %w", s, err)
	}
	return Axial{Q: q, R: r}, nil
}
