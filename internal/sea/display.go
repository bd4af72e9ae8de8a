package sea

import (
	"image/color"

	"sea-block/pkg/grid"
	"sea-block/pkg/spheres"
)

// Display cell values. Water and land each use four shades.
const (
	CellEmpty uint8 = iota
	CellWater0
	CellWater1
	CellWater2
	CellWater3
	CellLand0
	CellLand1
	CellLand2
	CellLand3
	CellSphere
	CellTracked
)

var palette = []color.RGBA{
	CellEmpty:   {0, 0, 0, 255},
	CellWater0:  {18, 40, 92, 255},
	CellWater1:  {30, 70, 140, 255},
	CellWater2:  {52, 110, 185, 255},
	CellWater3:  {150, 200, 235, 255},
	CellLand0:   {205, 185, 125, 255},
	CellLand1:   {90, 150, 70, 255},
	CellLand2:   {60, 115, 50, 255},
	CellLand3:   {135, 130, 125, 255},
	CellSphere:  {240, 90, 60, 255},
	CellTracked: {255, 230, 80, 255},
}

// Palette returns the color of every display cell value.
func (e *Engine) Palette() []color.RGBA { return palette }

// Cells renders the window top-down, one cell per tile in window-relative
// logical coordinates, with spheres drawn over their tile.
func (e *Engine) Cells() []uint8 {
	ox, oz := e.pan.Offset()
	e.window.Each(func(id int, c grid.Coord) {
		e.display.Set(c.X-ox, c.Z-oz, e.shade(id))
	})
	balls := e.balls.Spheres()
	for i := range balls {
		if i != e.tracked {
			e.plot(&balls[i], ox, oz, CellSphere)
		}
	}
	if e.tracked >= 0 && e.tracked < len(balls) {
		e.plot(&balls[e.tracked], ox, oz, CellTracked)
	}
	return e.display.Cells()
}

func (e *Engine) plot(sp *spheres.Sphere, ox, oz int, v uint8) {
	if sp.Removed() || sp.Ghost {
		return
	}
	ix, iz := e.tiling.PositionToIndex(sp.Position.X()/e.cfg.TileSize, sp.Position.Z()/e.cfg.TileSize)
	e.display.Set(ix-ox, iz-oz, v)
}

func (e *Engine) shade(id int) uint8 {
	if e.group.IsWater(id) {
		// Oscillator displacement of ±0.5 spans the four water shades.
		level := int((e.water.Pos(id) + 0.5) * 4)
		return CellWater0 + uint8(clampInt(level, 0, 3))
	}
	top := e.cfg.Land.LandHeight
	if top <= 0 {
		return CellLand0
	}
	level := int(e.group.Height(id) / top * 4)
	return CellLand0 + uint8(clampInt(level, 0, 3))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
