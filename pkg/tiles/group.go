// Package tiles holds per-tile state in parallel arrays indexed by stable
// flat id, and the spring network that drives the water surface.
package tiles

import "image/color"

// Payload is the generated content of a tile at a logical coordinate.
type Payload struct {
	Height float64
	Water  bool
	Color  color.RGBA
}

// Group stores tile attributes indexed by flat id.
type Group struct {
	n int

	x, z   []float64
	water  []bool
	base   []float64
	height []float64
	color  []color.RGBA
}

// NewGroup allocates storage for n tiles.
func NewGroup(n int) *Group {
	if n < 0 {
		n = 0
	}
	return &Group{
		n:      n,
		x:      make([]float64, n),
		z:      make([]float64, n),
		water:  make([]bool, n),
		base:   make([]float64, n),
		height: make([]float64, n),
		color:  make([]color.RGBA, n),
	}
}

// Len returns the number of tiles.
func (g *Group) Len() int { return g.n }

// SetPosition stores the world-space center of a tile.
func (g *Group) SetPosition(id int, x, z float64) {
	g.x[id] = x
	g.z[id] = z
}

// Position returns the world-space center of a tile.
func (g *Group) Position(id int) (float64, float64) { return g.x[id], g.z[id] }

// SetPayload replaces a tile's generated content. The collision height is
// reset to the payload height until the next refresh.
func (g *Group) SetPayload(id int, p Payload) {
	g.water[id] = p.Water
	g.base[id] = p.Height
	g.height[id] = p.Height
	g.color[id] = p.Color
}

// Payload returns a tile's generated content.
func (g *Group) Payload(id int) Payload {
	return Payload{Height: g.base[id], Water: g.water[id], Color: g.color[id]}
}

// IsWater reports whether the tile is water.
func (g *Group) IsWater(id int) bool { return g.water[id] }

// Height returns the current collision/render height of a tile.
func (g *Group) Height(id int) float64 { return g.height[id] }

// SetHeight overrides the current height of a tile.
func (g *Group) SetHeight(id int, h float64) { g.height[id] = h }

// Heights exposes the current height of every tile.
func (g *Group) Heights() []float64 { return g.height }

// Water exposes the water flag of every tile.
func (g *Group) Water() []bool { return g.water }

// Colors exposes the payload color of every tile.
func (g *Group) Colors() []color.RGBA { return g.color }
