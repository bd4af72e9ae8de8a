package spheres

import (
	"sea-block/pkg/grid"
	"sea-block/pkg/tiles"
	"sea-block/pkg/tiling"
)

// Terrain is the view of the tile grid the collision engine works against.
type Terrain interface {
	// TileIndex returns the logical index of the tile under world (x, z).
	TileIndex(x, z float64) (int, int)
	// TileAt resolves a logical index to a flat id inside the window.
	TileAt(ix, iz int) (int, bool)
	// TileCenter returns the world x/z center of a flat id.
	TileCenter(id int) (float64, float64)
	TileHeight(id int) float64
	IsWater(id int) bool
	// AccelTile pushes a water tile's oscillator down.
	AccelTile(id int, amount float64)
}

// GridTerrain adapts the window, tile arrays and oscillator sim to Terrain.
type GridTerrain struct {
	Window   *grid.Window
	Tiling   tiling.Tiling
	Tiles    *tiles.Group
	Sim      *tiles.Sim
	TileSize float64
}

// TileIndex converts world units to tile units and asks the tiling.
func (t GridTerrain) TileIndex(x, z float64) (int, int) {
	return t.Tiling.PositionToIndex(x/t.TileSize, z/t.TileSize)
}

// TileAt looks the index up in the window.
func (t GridTerrain) TileAt(ix, iz int) (int, bool) { return t.Window.XZToIndex(ix, iz) }

// TileCenter returns the stored world position.
func (t GridTerrain) TileCenter(id int) (float64, float64) { return t.Tiles.Position(id) }

// TileHeight returns the current tile height.
func (t GridTerrain) TileHeight(id int) float64 { return t.Tiles.Height(id) }

// IsWater reports whether the tile is water.
func (t GridTerrain) IsWater(id int) bool { return t.Tiles.IsWater(id) }

// AccelTile forwards to the oscillator sim.
func (t GridTerrain) AccelTile(id int, amount float64) { t.Sim.AccelTile(id, amount) }
