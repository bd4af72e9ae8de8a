// Package grid keeps a fixed-size rectangular window of tile identities over
// an unbounded logical x/z coordinate space.
//
// Every tile gets a flat id in [0, n) at construction. Ids never change; the
// logical coordinate attached to an id is moved one row or column at a time
// as the window pans.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSize is returned for non-positive or odd window dimensions.
	ErrBadSize = errors.New("grid: width and depth must be positive and even")
	// ErrNotMapped is returned when a coordinate has no tile in the window.
	ErrNotMapped = errors.New("grid: coordinate not mapped")
	// ErrOccupied is returned when a coordinate already holds a tile.
	ErrOccupied = errors.New("grid: coordinate already occupied")
)

// Coord is a logical tile coordinate.
type Coord struct {
	X, Z int
}

// Tile pairs a flat id with its current logical coordinate.
type Tile struct {
	ID int
	Coord
}

// Window maps logical coordinates to flat ids in O(1).
type Window struct {
	w, d   int
	lookup map[Coord]int
	coords []Coord
}

// New allocates a window of width*depth tiles mapped to [0,width) x [0,depth)
// in row-major order.
func New(width, depth int) (*Window, error) {
	if width <= 0 || depth <= 0 || width%2 != 0 || depth%2 != 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadSize, width, depth)
	}
	n := width * depth
	g := &Window{
		w:      width,
		d:      depth,
		lookup: make(map[Coord]int, n),
		coords: make([]Coord, n),
	}
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			id := z*width + x
			c := Coord{X: x, Z: z}
			g.coords[id] = c
			g.lookup[c] = id
		}
	}
	return g, nil
}

// Width returns the window size along x.
func (g *Window) Width() int { return g.w }

// Depth returns the window size along z.
func (g *Window) Depth() int { return g.d }

// Len returns the number of flat ids.
func (g *Window) Len() int { return len(g.coords) }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Window) Wrap(x, z int) (int, int) {
	x = (x%g.w + g.w) % g.w
	z = (z%g.d + g.d) % g.d
	return x, z
}

// XZToIndex returns the flat id at logical (x, z). The boolean is false when
// the coordinate lies outside the current window.
func (g *Window) XZToIndex(x, z int) (int, bool) {
	id, ok := g.lookup[Coord{X: x, Z: z}]
	return id, ok
}

// Coord returns the current logical coordinate of a flat id.
func (g *Window) Coord(id int) Coord { return g.coords[id] }

// UpdateMapping moves the tile at (oldX, oldZ) to (newX, newZ).
func (g *Window) UpdateMapping(oldX, oldZ, newX, newZ int) error {
	from := Coord{X: oldX, Z: oldZ}
	to := Coord{X: newX, Z: newZ}
	id, ok := g.lookup[from]
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrNotMapped, oldX, oldZ)
	}
	if other, taken := g.lookup[to]; taken {
		return fmt.Errorf("%w: (%d,%d) holds tile %d", ErrOccupied, newX, newZ, other)
	}
	delete(g.lookup, from)
	g.lookup[to] = id
	g.coords[id] = to
	return nil
}

// Tiles returns every flat id with its coordinate in stable insertion order,
// which is ascending flat id.
func (g *Window) Tiles() []Tile {
	out := make([]Tile, len(g.coords))
	for id, c := range g.coords {
		out[id] = Tile{ID: id, Coord: c}
	}
	return out
}

// Each calls fn for every tile in ascending flat id order.
func (g *Window) Each(fn func(id int, c Coord)) {
	for id, c := range g.coords {
		fn(id, c)
	}
}

// Coords returns a copy of the coordinate of every flat id.
func (g *Window) Coords() []Coord {
	return append([]Coord(nil), g.coords...)
}

// Restore replaces the whole mapping, e.g. when loading a checkpoint. The
// mapping is left untouched when coords is not a bijection.
func (g *Window) Restore(coords []Coord) error {
	if len(coords) != len(g.coords) {
		return fmt.Errorf("grid: restore with %d coordinates into %d tiles", len(coords), len(g.coords))
	}
	lookup := make(map[Coord]int, len(coords))
	for id, c := range coords {
		if prev, dup := lookup[c]; dup {
			return fmt.Errorf("%w: tiles %d and %d both claim (%d,%d)", ErrOccupied, prev, id, c.X, c.Z)
		}
		lookup[c] = id
	}
	copy(g.coords, coords)
	g.lookup = lookup
	return nil
}

// Origin returns the smallest logical coordinate covered by the window.
// It is only meaningful when the window is rectangular, which holds between
// whole row or column moves.
func (g *Window) Origin() Coord {
	origin := g.coords[0]
	for _, c := range g.coords[1:] {
		origin.X = min(origin.X, c.X)
		origin.Z = min(origin.Z, c.Z)
	}
	return origin
}

// Check verifies that the id/coordinate mapping is a bijection.
func (g *Window) Check() error {
	seen := make(map[Coord]int, len(g.coords))
	for id, c := range g.coords {
		if prev, dup := seen[c]; dup {
			return fmt.Errorf("grid: tiles %d and %d both claim (%d,%d)", prev, id, c.X, c.Z)
		}
		seen[c] = id
		got, ok := g.XZToIndex(c.X, c.Z)
		if !ok || got != id {
			return fmt.Errorf("grid: tile %d at (%d,%d) is orphaned", id, c.X, c.Z)
		}
	}
	if len(g.lookup) != len(g.coords) {
		return fmt.Errorf("grid: %d coordinates mapped for %d tiles", len(g.lookup), len(g.coords))
	}
	return nil
}
