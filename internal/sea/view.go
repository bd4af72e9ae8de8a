package sea

import (
	"fmt"

	"sea-block/internal/core"
	"sea-block/pkg/grid"
)

// Markers projects the live spheres onto the display grid. Positions are
// fractional cells so viewers can draw between tile centers.
func (e *Engine) Markers() []core.Marker {
	ox, oz := e.pan.Offset()
	size := e.cfg.TileSize
	var out []core.Marker
	for i, sp := range e.balls.Spheres() {
		if sp.Removed() || sp.Ghost {
			continue
		}
		x, z := sp.Position.X()/size, sp.Position.Z()/size
		ix, iz := e.tiling.PositionToIndex(x, z)
		cx, cz := e.tiling.IndexToPosition(ix, iz)
		out = append(out, core.Marker{
			X:       float64(ix-ox) + 0.5 + (x - cx),
			Y:       float64(iz-oz) + 0.5 + (z - cz),
			VX:      sp.Velocity.X() / size,
			VY:      sp.Velocity.Z() / size,
			Tracked: i == e.tracked,
		})
	}
	return out
}

// HeightField returns the tile heights laid out like Cells.
func (e *Engine) HeightField() []float64 {
	ox, oz := e.pan.Offset()
	out := make([]float64, e.cfg.Width*e.cfg.Depth)
	e.window.Each(func(id int, c grid.Coord) {
		x, y := c.X-ox, c.Z-oz
		if x < 0 || y < 0 || x >= e.cfg.Width || y >= e.cfg.Depth {
			return
		}
		out[y*e.cfg.Width+x] = e.group.Height(id)
	})
	return out
}

// PerturbCell pushes the water tile drawn at display cell (x, y).
func (e *Engine) PerturbCell(x, y int, amount float64) bool {
	ox, oz := e.pan.Offset()
	id, ok := e.window.XZToIndex(x+ox, y+oz)
	if !ok || !e.group.IsWater(id) {
		return false
	}
	e.water.AccelTile(id, amount)
	return true
}

// PanBy moves the window by whole tiles and stops following.
func (e *Engine) PanBy(dx, dz int) error {
	e.tracked = -1
	for dx != 0 || dz != 0 {
		sx, sz := stepToward(dx), 0
		if sx == 0 {
			sz = stepToward(dz)
		}
		if err := e.pan.Pan(sx, sz); err != nil {
			return fmt.Errorf("sea: pan: %w", err)
		}
		dx -= sx
		dz -= sz
	}
	return nil
}

// Status is a one-line summary for viewers.
func (e *Engine) Status() string {
	ox, oz := e.pan.Offset()
	live := 0
	for _, sp := range e.balls.Spheres() {
		if !sp.Removed() {
			live++
		}
	}
	return fmt.Sprintf("step %d  seed %d  %s/%s  offset (%d,%d)  spheres %d  tracking %d",
		e.steps, e.cfg.Seed, e.cfg.Tiling, e.cfg.Terrain, ox, oz, live, e.tracked)
}

func stepToward(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
