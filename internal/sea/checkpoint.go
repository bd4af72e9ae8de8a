package sea

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"sea-block/internal/snapshot"
	"sea-block/internal/terrain"
	"sea-block/pkg/spheres"
)

// Checkpoint captures the full engine state.
func (e *Engine) Checkpoint() snapshot.Checkpoint {
	pos, vel := e.water.State()
	cp := snapshot.Checkpoint{
		Header: snapshot.Header{
			Name:    e.Name(),
			Step:    e.steps,
			Seed:    e.cfg.Seed,
			Tiling:  e.cfg.Tiling,
			Terrain: e.cfg.Terrain,
			Width:   e.cfg.Width,
			Depth:   e.cfg.Depth,
		},
		Config:  e.cfg.Map(),
		Coords:  e.window.Coords(),
		Pos:     pos,
		Vel:     vel,
		Tracked: e.tracked,
	}
	for _, sp := range e.balls.Spheres() {
		cp.Spheres = append(cp.Spheres, snapshot.Sphere{
			Position:      sp.Position,
			Velocity:      sp.Velocity,
			Ghost:         sp.Ghost,
			Fish:          sp.Fish,
			ScalePressure: sp.ScalePressure,
		})
	}
	return cp
}

// Restore loads a checkpoint taken from an engine with the same tiling,
// window size and tile size. Live tunables, terrain and seed are taken
// from the checkpoint.
func (e *Engine) Restore(cp snapshot.Checkpoint) error {
	cfg, err := FromMap(cp.Config)
	if err != nil {
		return fmt.Errorf("sea: checkpoint config: %w", err)
	}
	if cfg.Tiling != e.cfg.Tiling || cfg.Width != e.cfg.Width || cfg.Depth != e.cfg.Depth || cfg.TileSize != e.cfg.TileSize {
		return fmt.Errorf("sea: checkpoint %s %dx%d (tile %g) does not fit engine %s %dx%d (tile %g)",
			cfg.Tiling, cfg.Width, cfg.Depth, cfg.TileSize,
			e.cfg.Tiling, e.cfg.Width, e.cfg.Depth, e.cfg.TileSize)
	}
	if len(cp.Pos) != e.window.Len() || len(cp.Vel) != e.window.Len() {
		return fmt.Errorf("sea: checkpoint holds %d/%d oscillators for %d tiles", len(cp.Pos), len(cp.Vel), e.window.Len())
	}
	land := cfg.Land
	land.Seed = cfg.Seed
	src, err := terrain.New(e.sources, cfg.Terrain, land)
	if err != nil {
		return err
	}
	if err := e.window.Restore(cp.Coords); err != nil {
		return fmt.Errorf("sea: checkpoint mapping: %w", err)
	}

	e.cfg = cfg
	e.pan.Resync()
	e.pan.SetSource(src)
	// Refresh clamps the oscillators, so the stored state goes in after it.
	e.pan.Refresh()
	if err := e.water.Restore(cp.Pos, cp.Vel); err != nil {
		return err
	}
	e.applyLive()
	e.water.RefreshHeights(e.cfg.WaveAmplitude)

	e.balls.Clear()
	for _, s := range cp.Spheres {
		e.balls.Add(spheres.Sphere{
			Position:      mgl64.Vec3(s.Position),
			Velocity:      mgl64.Vec3(s.Velocity),
			Ghost:         s.Ghost,
			Fish:          s.Fish,
			ScalePressure: s.ScalePressure,
		})
	}
	e.follow.Forget()
	e.tracked = -1
	e.Track(cp.Tracked)
	e.steps = cp.Header.Step
	e.log.Printf("restored step=%d spheres=%d", e.steps, e.balls.Len())
	return nil
}

// Save writes a checkpoint file.
func (e *Engine) Save(path string) error {
	if err := snapshot.Write(path, e.Checkpoint()); err != nil {
		return err
	}
	e.log.Printf("saved checkpoint %s at step %d", path, e.steps)
	return nil
}

// Load reads and restores a checkpoint file.
func (e *Engine) Load(path string) error {
	cp, err := snapshot.Read(path)
	if err != nil {
		return err
	}
	return e.Restore(cp)
}
