// Package pan keeps the tile window centered on a moving point by relabeling
// one edge row or column at a time.
package pan

import (
	"errors"
	"fmt"

	"sea-block/pkg/grid"
	"sea-block/pkg/tiles"
	"sea-block/pkg/tiling"
)

// ErrBadStep is returned for a pan step that is not a single unit move.
var ErrBadStep = errors.New("pan: step must move exactly one unit along x or z")

// Source produces the payload of the tile at a logical coordinate.
type Source interface {
	TileAt(x, z int) tiles.Payload
}

// SourceFunc adapts a function to Source.
type SourceFunc func(x, z int) tiles.Payload

// TileAt calls f(x, z).
func (f SourceFunc) TileAt(x, z int) tiles.Payload { return f(x, z) }

// Controller moves the window over the logical coordinate space. The spring
// network is never rebuilt: a relabeled edge keeps the toroidal neighbors it
// was built with, which are exactly its new neighbors.
type Controller struct {
	window   *grid.Window
	group    *tiles.Group
	sim      *tiles.Sim
	tiling   tiling.Tiling
	source   Source
	tileSize float64

	ox, oz int
	steps  int
}

// New returns a controller for the window at its current origin.
func New(window *grid.Window, group *tiles.Group, sim *tiles.Sim, t tiling.Tiling, source Source, tileSize float64) *Controller {
	c := &Controller{
		window:   window,
		group:    group,
		sim:      sim,
		tiling:   t,
		source:   source,
		tileSize: tileSize,
	}
	c.Resync()
	return c
}

// Offset returns the logical coordinate of the window's low corner.
func (c *Controller) Offset() (int, int) { return c.ox, c.oz }

// Steps returns the number of unit pans applied so far.
func (c *Controller) Steps() int { return c.steps }

// Resync reads the offset back from the window after its mapping was
// replaced wholesale.
func (c *Controller) Resync() {
	o := c.window.Origin()
	c.ox, c.oz = o.X, o.Z
}

// SetSource swaps the payload source. Existing tiles keep their payload
// until Refresh or until they are panned.
func (c *Controller) SetSource(s Source) { c.source = s }

// Refresh regenerates every tile in the window.
func (c *Controller) Refresh() {
	c.window.Each(func(id int, at grid.Coord) {
		c.regenerate(id, at.X, at.Z)
	})
}

// Center returns the logical coordinate at the middle of the window.
func (c *Controller) Center() (int, int) {
	return c.ox + c.window.Width()/2, c.oz + c.window.Depth()/2
}

// PanToCenter moves the window one unit at a time until the tile containing
// world (x, z) sits at its logical center.
func (c *Controller) PanToCenter(x, z float64) error {
	ix, iz := c.tiling.PositionToIndex(x/c.tileSize, z/c.tileSize)
	tx := ix - c.window.Width()/2
	tz := iz - c.window.Depth()/2
	for c.ox != tx {
		if err := c.Pan(sign(tx-c.ox), 0); err != nil {
			return err
		}
	}
	for c.oz != tz {
		if err := c.Pan(0, sign(tz-c.oz)); err != nil {
			return err
		}
	}
	return nil
}

// Pan shifts the window by one tile. The trailing row or column is moved to
// the leading edge and regenerated; no other tile is touched.
func (c *Controller) Pan(dx, dz int) error {
	if !unitStep(dx, dz) {
		return fmt.Errorf("%w: got (%d,%d)", ErrBadStep, dx, dz)
	}
	w, d := c.window.Width(), c.window.Depth()
	switch {
	case dx == 1:
		if err := c.moveColumn(c.ox, c.ox+w); err != nil {
			return err
		}
	case dx == -1:
		if err := c.moveColumn(c.ox+w-1, c.ox-1); err != nil {
			return err
		}
	case dz == 1:
		if err := c.moveRow(c.oz, c.oz+d); err != nil {
			return err
		}
	case dz == -1:
		if err := c.moveRow(c.oz+d-1, c.oz-1); err != nil {
			return err
		}
	}
	c.ox += dx
	c.oz += dz
	c.steps++
	return nil
}

func (c *Controller) moveColumn(from, to int) error {
	for z := c.oz; z < c.oz+c.window.Depth(); z++ {
		if err := c.move(from, z, to, z); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) moveRow(from, to int) error {
	for x := c.ox; x < c.ox+c.window.Width(); x++ {
		if err := c.move(x, from, x, to); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) move(oldX, oldZ, newX, newZ int) error {
	id, ok := c.window.XZToIndex(oldX, oldZ)
	if !ok {
		return fmt.Errorf("pan: %w: (%d,%d)", grid.ErrNotMapped, oldX, oldZ)
	}
	if err := c.window.UpdateMapping(oldX, oldZ, newX, newZ); err != nil {
		return fmt.Errorf("pan: %w", err)
	}
	c.regenerate(id, newX, newZ)
	return nil
}

func (c *Controller) regenerate(id, x, z int) {
	wx, wz := c.tiling.IndexToPosition(x, z)
	c.group.SetPosition(id, wx*c.tileSize, wz*c.tileSize)
	c.group.SetPayload(id, c.source.TileAt(x, z))
	c.sim.ResetTile(id)
}

func unitStep(dx, dz int) bool {
	return (dx == 0) != (dz == 0) && dx >= -1 && dx <= 1 && dz >= -1 && dz <= 1
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
