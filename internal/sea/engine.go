// Package sea drives the water surface, the spheres and the panning window
// of one sea-block world at a fixed step rate.
package sea

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"sea-block/internal/core"
	"sea-block/internal/terrain"
	prng "sea-block/pkg/core"
	"sea-block/pkg/grid"
	"sea-block/pkg/pan"
	"sea-block/pkg/spheres"
	"sea-block/pkg/tiles"
	"sea-block/pkg/tiling"
)

// Engine owns every piece of simulation state. It is not safe for
// concurrent use; run one engine per goroutine.
type Engine struct {
	cfg     Config
	log     *log.Logger
	sources core.Registry[terrain.Factory]

	tiling  tiling.Tiling
	window  *grid.Window
	group   *tiles.Group
	water   *tiles.Sim
	balls   *spheres.Sim
	pan     *pan.Controller
	clock   *core.FixedStep
	follow  *Follower
	display *core.ByteGrid
	rng     *prng.RNG

	tracked int
	steps   uint64
}

// New builds an engine. Tilings and terrain sources are looked up by the
// names in cfg; unknown names are errors.
func New(cfg Config, tilings tiling.Set, sources core.Registry[terrain.Factory]) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	tl, err := tilings.Get(cfg.Tiling)
	if err != nil {
		return nil, err
	}
	if _, err := sources.Get(cfg.Terrain); err != nil {
		return nil, fmt.Errorf("%w: %w", terrain.ErrUnknownSource, err)
	}
	window, err := grid.New(cfg.Width, cfg.Depth)
	if err != nil {
		return nil, err
	}
	group := tiles.NewGroup(window.Len())
	water, err := tiles.NewSim(group, window, tl, cfg.Tiles)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		log:     log.New(io.Discard, "", 0),
		sources: sources,
		tiling:  tl,
		window:  window,
		group:   group,
		water:   water,
		display: core.NewByteGrid(cfg.Width, cfg.Depth),
		tracked: -1,
	}
	e.balls = spheres.New(cfg.sphereParams(), spheres.GridTerrain{
		Window:   window,
		Tiling:   tl,
		Tiles:    group,
		Sim:      water,
		TileSize: cfg.TileSize,
	})
	e.pan = pan.New(window, group, water, tl, pan.SourceFunc(func(int, int) tiles.Payload {
		return tiles.Payload{}
	}), cfg.TileSize)
	e.retime()
	if err := e.reset(cfg.Seed); err != nil {
		return nil, err
	}
	return e, nil
}

// SetLogger routes engine diagnostics. A nil logger silences them.
func (e *Engine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	e.log = l
}

// Name identifies the scene.
func (e *Engine) Name() string { return "sea" }

// Size returns the display grid size, one cell per tile.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Width, H: e.cfg.Depth} }

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// Tiling returns the tessellation in use.
func (e *Engine) Tiling() tiling.Tiling { return e.tiling }

// Reset regenerates every tile, zeroes the water and respawns the spheres.
func (e *Engine) Reset(seed int64) {
	if err := e.reset(seed); err != nil {
		e.log.Printf("reset seed=%d: %v", seed, err)
	}
}

func (e *Engine) reset(seed int64) error {
	e.cfg.Seed = seed
	land := e.cfg.Land
	land.Seed = seed
	src, err := terrain.New(e.sources, e.cfg.Terrain, land)
	if err != nil {
		return err
	}
	e.pan.SetSource(src)
	e.pan.Refresh()
	e.water.Zero()
	e.water.RefreshHeights(e.cfg.WaveAmplitude)

	e.rng = prng.NewRNG(seed)
	e.balls.Clear()
	e.spawn()
	e.tracked = -1
	if e.cfg.Follow && e.balls.Len() > 0 {
		e.tracked = 0
	}
	e.retime()
	e.follow.Forget()
	e.steps = 0
	e.log.Printf("reset seed=%d tiling=%s terrain=%s tiles=%d spheres=%d",
		seed, e.cfg.Tiling, e.cfg.Terrain, e.window.Len(), e.balls.Len())
	return nil
}

// spawn drops SphereCount spheres over the middle half of the window.
func (e *Engine) spawn() {
	cx, cz := e.centerWorld()
	spread := float64(min(e.cfg.Width, e.cfg.Depth)) / 4 * e.cfg.TileSize
	for i := 0; i < e.cfg.SphereCount; i++ {
		e.balls.Add(spheres.Sphere{
			Position: mgl64.Vec3{
				cx + e.rng.Signed(spread),
				e.cfg.SpawnHeight + e.rng.Range(0, e.cfg.SpawnHeight/2),
				cz + e.rng.Signed(spread),
			},
			ScalePressure: 1,
		})
	}
}

// centerWorld returns the world position of the window's center tile.
func (e *Engine) centerWorld() (float64, float64) {
	ix, iz := e.pan.Center()
	x, z := e.tiling.IndexToPosition(ix, iz)
	return x * e.cfg.TileSize, z * e.cfg.TileSize
}

// retime rebuilds the step clock and camera spring after the step duration
// or follow tunables change.
func (e *Engine) retime() {
	e.clock = core.NewFixedStep(e.cfg.StepDuration, e.cfg.MaxSubSteps)
	fps := int(math.Round(float64(time.Second) / float64(e.clock.StepDuration())))
	follow := NewFollower(max(fps, 1), e.cfg.FollowFrequency, e.cfg.FollowDamping)
	if e.follow != nil && e.follow.primed {
		follow.Jump(e.follow.Position())
	}
	e.follow = follow
}

// Update advances the world by the number of whole steps that fit in dt and
// returns how many ran. An error halts the frame; the world must not be
// stepped again without a reset.
func (e *Engine) Update(dt time.Duration) (int, error) {
	n := e.clock.Steps(dt)
	for i := 0; i < n; i++ {
		if err := e.Step(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// Step runs one fixed tick: pan toward the tracked sphere, integrate the
// water, refresh heights, then move the spheres.
func (e *Engine) Step() error {
	if err := e.track(); err != nil {
		return err
	}
	if err := e.water.Step(); err != nil {
		return fmt.Errorf("step %d: %w", e.steps, err)
	}
	e.water.RefreshHeights(e.cfg.WaveAmplitude)
	if err := e.balls.Step(); err != nil {
		return fmt.Errorf("step %d: %w", e.steps, err)
	}
	e.steps++
	return nil
}

// Steps returns the number of ticks run since the last reset.
func (e *Engine) Steps() uint64 { return e.steps }

func (e *Engine) track() error {
	if e.tracked < 0 || e.tracked >= e.balls.Len() {
		return nil
	}
	sp := e.balls.Sphere(e.tracked)
	if sp.Removed() {
		return nil
	}
	x, z := e.follow.Update(sp.Position.X(), sp.Position.Z())
	before := e.pan.Steps()
	if err := e.pan.PanToCenter(x, z); err != nil {
		return err
	}
	if moved := e.pan.Steps() - before; moved > 1 {
		e.log.Printf("panned %d tiles toward (%.1f, %.1f)", moved, x, z)
	}
	return nil
}

// Track makes the window follow sphere i. A negative index stops following.
func (e *Engine) Track(i int) {
	if i >= e.balls.Len() {
		i = -1
	}
	e.tracked = i
}

// Tracked returns the followed sphere or -1.
func (e *Engine) Tracked() int { return e.tracked }

// PanToCenter recenters the window on a world position immediately.
func (e *Engine) PanToCenter(x, z float64) error {
	return e.pan.PanToCenter(x, z)
}

// Offset returns the logical coordinate of the window's low corner.
func (e *Engine) Offset() (int, int) { return e.pan.Offset() }

// Heights exposes the current height of every tile by flat id.
func (e *Engine) Heights() []float64 { return e.group.Heights() }

// Water exposes the water flag of every tile by flat id.
func (e *Engine) Water() []bool { return e.group.Water() }

// TileCoord returns the logical coordinate of a flat id.
func (e *Engine) TileCoord(id int) grid.Coord { return e.window.Coord(id) }

// TileAt returns the flat id under a world position.
func (e *Engine) TileAt(x, z float64) (int, bool) {
	ix, iz := e.tiling.PositionToIndex(x/e.cfg.TileSize, z/e.cfg.TileSize)
	return e.window.XZToIndex(ix, iz)
}

// Spheres exposes the sphere slice.
func (e *Engine) Spheres() []spheres.Sphere { return e.balls.Spheres() }

// AddSphere appends a sphere and returns its index.
func (e *Engine) AddSphere(s spheres.Sphere) int { return e.balls.Add(s) }

// RemoveSphere parks sphere i below the removal sentinel.
func (e *Engine) RemoveSphere(i int) {
	e.balls.Remove(i)
	if i == e.tracked {
		e.tracked = -1
	}
}

// AccelTile pushes a tile's oscillator down.
func (e *Engine) AccelTile(id int, amount float64) { e.water.AccelTile(id, amount) }

// ResetTile clamps a tile's oscillator into the neutral range.
func (e *Engine) ResetTile(id int) { e.water.ResetTile(id) }

// Perturb pushes the water tile under a world position, e.g. for a splash.
// It reports false when there is no water tile there.
func (e *Engine) Perturb(x, z, amount float64) bool {
	id, ok := e.TileAt(x, z)
	if !ok || !e.group.IsWater(id) {
		return false
	}
	e.water.AccelTile(id, amount)
	return true
}
