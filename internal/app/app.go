//go:build ebiten

package app

import (
	"image/color"
	"io"
	"log"
	"time"

	"sea-block/internal/core"
	"sea-block/internal/render"
	"sea-block/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA
	clock   *core.FixedStep
	log     *log.Logger

	scale      int
	hudWidth   int
	paused     bool
	tickOnce   bool
	seed       int64
	checkpoint string
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	size := sim.Size()
	return &Game{
		sim:        sim,
		painter:    render.NewGridPainter(size.W, size.H),
		overlay:    ui.NewOverlay(sim, cfg.Scale),
		hud:        ui.NewHUD(sim, cfg.HUDWidth),
		palette:    render.PaletteOf(sim),
		clock:      core.NewFixedStep(time.Second/time.Duration(max(cfg.TPS, 1)), 1),
		log:        logger,
		scale:      cfg.Scale,
		hudWidth:   cfg.HUDWidth,
		seed:       cfg.Seed,
		checkpoint: cfg.Checkpoint,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation by the wall
// time since the previous frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handleClick()
	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	dt := g.clock.Elapsed()
	switch {
	case g.tickOnce:
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			return g.halt(err)
		}
	case !g.paused:
		if _, err := Advance(g.sim, g.clock, dt); err != nil {
			return g.halt(err)
		}
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		ToggleTracking(g.sim)
	}
	if c, ok := g.sim.(Checkpointer); ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			if err := c.Save(g.checkpoint); err != nil {
				g.log.Printf("save %s: %v", g.checkpoint, err)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
			if err := c.Load(g.checkpoint); err != nil {
				g.log.Printf("load %s: %v", g.checkpoint, err)
			}
		}
	}
	if p, ok := g.sim.(Panner); ok {
		dx, dz := 0, 0
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
			dx = -1
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
			dx = 1
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
			dz = -1
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
			dz = 1
		}
		if dx != 0 || dz != 0 {
			if err := p.PanBy(dx, dz); err != nil {
				g.log.Printf("pan: %v", err)
			}
		}
	}
}

func (g *Game) handleClick() {
	p, ok := g.sim.(CellPerturber)
	if !ok || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx >= g.viewWidth() {
		return
	}
	p.PerturbCell(mx/g.scale, my/g.scale, Splash)
}

// halt pauses on a simulation error so the last state stays on screen.
// Reset or load resumes.
func (g *Game) halt(err error) error {
	g.paused = true
	g.log.Printf("halted: %v", err)
	return nil
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
