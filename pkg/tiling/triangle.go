package tiling

import "math"

// triangleRowHeight is the height of an equilateral triangle with unit side.
var triangleRowHeight = math.Sqrt(3) / 2

var (
	triangleUpAdjacent   = []Offset{{-1, 0}, {1, 0}, {0, -1}}
	triangleDownAdjacent = []Offset{{-1, 0}, {1, 0}, {0, 1}}

	triangleUpDiagonal = []Offset{
		{-2, 0}, {2, 0},
		{-2, -1}, {-1, -1}, {1, -1}, {2, -1},
		{-1, 1}, {0, 1}, {1, 1},
	}
	triangleDownDiagonal = []Offset{
		{-2, 0}, {2, 0},
		{-2, 1}, {-1, 1}, {1, 1}, {2, 1},
		{-1, -1}, {0, -1}, {1, -1},
	}
)

// Triangle tiles the plane with unit equilateral triangles. Triangles in a
// row alternate orientation: (ix+iz) even points up (apex toward +z), odd
// points down. Neighboring columns are half a side apart.
type Triangle struct{}

// Name returns "triangle".
func (Triangle) Name() string { return "triangle" }

func triangleUp(ix, iz int) bool { return !odd(ix + iz) }

// PositionToIndex resolves the triangle containing (x, z).
func (Triangle) PositionToIndex(x, z float64) (int, int) {
	row := z / triangleRowHeight
	iz := floorInt(row)
	v := row - float64(iz)

	u := x * 2
	k := floorInt(u)
	f := u - float64(k)

	// The strip between column centers k and k+1 is split by the shared
	// slanted edge; its direction depends on which side points up.
	if triangleUp(k, iz) {
		if f+v <= 1 {
			return k, iz
		}
		return k + 1, iz
	}
	if f <= v {
		return k, iz
	}
	return k + 1, iz
}

// IndexToPosition returns the centroid of triangle (ix, iz).
func (Triangle) IndexToPosition(ix, iz int) (float64, float64) {
	z := float64(iz) * triangleRowHeight
	if triangleUp(ix, iz) {
		z += triangleRowHeight / 3
	} else {
		z += 2 * triangleRowHeight / 3
	}
	return float64(ix) * 0.5, z
}

// Adjacent returns the three edge-sharing triangles.
func (Triangle) Adjacent(ix, iz int) []Offset {
	if triangleUp(ix, iz) {
		return triangleUpAdjacent
	}
	return triangleDownAdjacent
}

// Diagonal returns the nine triangles touching only a corner.
func (Triangle) Diagonal(ix, iz int) []Offset {
	if triangleUp(ix, iz) {
		return triangleUpDiagonal
	}
	return triangleDownDiagonal
}
