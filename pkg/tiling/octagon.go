package tiling

import "math"

// octagonApothem is the center-to-edge distance of the octagons when the
// octagon/square checkerboard has unit spacing.
var octagonApothem = math.Sqrt2 / 2

var (
	octagonAdjacent = []Offset{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}
	octagonSquareAdjacent = []Offset{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
)

// Octagon is the truncated square tiling laid out on a checkerboard: tiles
// with (ix+iz) even are octagons, odd ones are the small squares between
// them. Octagons share edges with all eight surrounding tiles; squares only
// with their four cardinal octagons.
type Octagon struct{}

// Name returns "octagon".
func (Octagon) Name() string { return "octagon" }

// IsOctagon reports whether tile (ix, iz) is an octagon.
func (Octagon) IsOctagon(ix, iz int) bool { return !odd(ix + iz) }

// PositionToIndex resolves the octagon or square containing (x, z).
func (o Octagon) PositionToIndex(x, z float64) (int, int) {
	rx, rz := roundInt(x), roundInt(z)
	if o.IsOctagon(rx, rz) {
		// The octagon fully covers its checkerboard cell.
		return rx, rz
	}
	dx, dz := x-float64(rx), z-float64(rz)
	half := 1 - octagonApothem
	if math.Abs(dx) <= half && math.Abs(dz) <= half {
		return rx, rz
	}
	if math.Abs(dx) >= math.Abs(dz) {
		if dx > 0 {
			return rx + 1, rz
		}
		return rx - 1, rz
	}
	if dz > 0 {
		return rx, rz + 1
	}
	return rx, rz - 1
}

// IndexToPosition returns the tile center.
func (Octagon) IndexToPosition(ix, iz int) (float64, float64) {
	return float64(ix), float64(iz)
}

// Adjacent returns eight neighbors for octagons and four for squares.
func (o Octagon) Adjacent(ix, iz int) []Offset {
	if o.IsOctagon(ix, iz) {
		return octagonAdjacent
	}
	return octagonSquareAdjacent
}

// Diagonal returns nil: no two tiles of this tiling meet at a single vertex.
func (Octagon) Diagonal(int, int) []Offset { return nil }
