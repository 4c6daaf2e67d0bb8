package hex

import "math"

// Layout holds pointy-top hex geometry used to place tiles on screen.
// Pathfinding never reads it.
type Layout struct {
	HexWidth       float64
	HexHeight      float64
	HexVertStep    float64 // vertical distance between rows
	HexDepthStep   float64 // screen offset per unit of ground height
	WallVertOffset float64 // offset from the top face to the first wall segment
	WallVertStep   float64 // height of one wall segment
}

// ToPixel returns the screen position of the top face of tile a raised to height.
func (l Layout) ToPixel(a Axial, height uint8) (x, y float64) {
	x = l.HexWidth * (float64(a.Q) + float64(a.R)/2)
	y = l.HexVertStep*float64(a.R) - l.WallVertStep*float64(height)
	return x, y
}

// PixelToHex returns the tile whose ground-level face contains (x, y).
func (l Layout) PixelToHex(x, y float64) Axial {
	if l.HexWidth == 0 || l.HexVertStep == 0 {
		return Axial{}
	}
	r := y / l.HexVertStep
	q := x/l.HexWidth - r/2
	return axialRound(q, r)
}

// WallSegments returns how many wall segments to draw below a tile's top face.
func (l Layout) WallSegments(ground, wall uint8) int {
	if wall <= ground {
		return 0
	}
	return int(wall - ground)
}

func axialRound(q, r float64) Axial {
	x, z := q, r
	y := -x - z

	rx := math.Round(x)
	ry := math.Round(y)
	rz := math.Round(z)

	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)

	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return Axial{Q: int(rx), R: int(rz)}
}
