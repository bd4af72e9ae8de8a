package tiling

import "math"

// hexColumnSpacing is the x distance between flat-top hex columns of unit
// row height.
var hexColumnSpacing = math.Sqrt(3) / 2

var (
	hexEvenAdjacent = []Offset{{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {0, 1}}
	hexOddAdjacent  = []Offset{{1, 1}, {1, 0}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}
)

// Hex tiles the plane with flat-top hexagons in offset columns. Odd columns
// are shifted half a row toward +z, so the neighbor pattern depends on
// column parity.
type Hex struct{}

// Name returns "hex".
func (Hex) Name() string { return "hex" }

// PositionToIndex converts to fractional axial coordinates, rounds in cube
// space and converts back to offset columns.
func (Hex) PositionToIndex(x, z float64) (int, int) {
	q := x / hexColumnSpacing
	r := z - q/2
	s := -q - r

	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}

	col := int(rq)
	row := int(rr) + (col-(col&1))/2
	return col, row
}

// IndexToPosition returns the hexagon center.
func (Hex) IndexToPosition(ix, iz int) (float64, float64) {
	z := float64(iz)
	if odd(ix) {
		z += 0.5
	}
	return float64(ix) * hexColumnSpacing, z
}

// Adjacent returns the six edge-sharing hexagons for the column parity.
func (Hex) Adjacent(ix, iz int) []Offset {
	if odd(ix) {
		return hexOddAdjacent
	}
	return hexEvenAdjacent
}

// Diagonal returns nil: every hexagon touching a corner also shares an edge.
func (Hex) Diagonal(int, int) []Offset { return nil }
