package tiling

var (
	squareAdjacent = []Offset{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	squareDiagonal = []Offset{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
)

// Square tiles the plane with unit squares centered on integer coordinates.
type Square struct{}

// Name returns "square".
func (Square) Name() string { return "square" }

// PositionToIndex rounds to the nearest tile center.
func (Square) PositionToIndex(x, z float64) (int, int) {
	return roundInt(x), roundInt(z)
}

// IndexToPosition returns the tile center.
func (Square) IndexToPosition(ix, iz int) (float64, float64) {
	return float64(ix), float64(iz)
}

// Adjacent returns the four cardinal neighbors.
func (Square) Adjacent(int, int) []Offset { return squareAdjacent }

// Diagonal returns the four corner neighbors.
func (Square) Diagonal(int, int) []Offset { return squareDiagonal }
