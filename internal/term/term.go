// Package term runs a core.Sim in a terminal. Each display cell is drawn as
// two blank columns with the cell's palette color as background.
package term

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"sea-block/internal/app"
	"sea-block/internal/core"
	"sea-block/internal/render"
)

type statusProvider interface {
	Status() string
}

// Viewer draws a sim onto a tcell screen and maps keys to commands.
type Viewer struct {
	screen  tcell.Screen
	sim     core.Sim
	palette []tcell.Color
	clock   *core.FixedStep
	log     *log.Logger

	frame      time.Duration
	seed       int64
	checkpoint string
	paused     bool
	message    string
}

// New builds a viewer. The screen must already be initialized.
func New(screen tcell.Screen, sim core.Sim, cfg *app.Config, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	frame := time.Second / time.Duration(max(cfg.TPS, 1))
	return &Viewer{
		screen:     screen,
		sim:        sim,
		palette:    toTcell(render.PaletteOf(sim)),
		clock:      core.NewFixedStep(frame, 1),
		log:        logger,
		frame:      frame,
		seed:       cfg.Seed,
		checkpoint: cfg.Checkpoint,
	}
}

func toTcell(pal []color.RGBA) []tcell.Color {
	out := make([]tcell.Color, len(pal))
	for i, c := range pal {
		out[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return out
}

// Paused reports whether stepping is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Message returns the last command feedback shown in the status line.
func (v *Viewer) Message() string { return v.message }

// Run polls events and advances the sim until quit or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(v.frame)
	defer ticker.Stop()
	last := time.Now()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case now := <-ticker.C:
			v.Tick(now.Sub(last))
			last = now
			v.Draw()
		}
	}
}

// Tick advances the sim by dt unless paused. Errors pause the viewer.
func (v *Viewer) Tick(dt time.Duration) {
	if v.paused {
		return
	}
	if _, err := app.Advance(v.sim, v.clock, dt); err != nil {
		v.fail("halted", err)
	}
}

func (v *Viewer) fail(what string, err error) {
	v.paused = true
	v.message = fmt.Sprintf("%s: %v", what, err)
	v.log.Print(v.message)
}

// HandleEvent applies one input event and reports whether to quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return false
		}
		if p, ok := v.sim.(app.CellPerturber); ok {
			x, y := ev.Position()
			p.PerturbCell(x/2, y, app.Splash)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.pan(-1, 0)
	case tcell.KeyRight:
		v.pan(1, 0)
	case tcell.KeyUp:
		v.pan(0, -1)
	case tcell.KeyDown:
		v.pan(0, 1)
	case tcell.KeyF5:
		v.save()
	case tcell.KeyF9:
		v.load()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			v.paused = !v.paused
		case 'n':
			if err := v.sim.Step(); err != nil {
				v.fail("step", err)
			}
		case 'r':
			v.reset(v.seed)
		case 's':
			v.reset(time.Now().UnixNano())
		case 't':
			app.ToggleTracking(v.sim)
		}
	}
	return false
}

func (v *Viewer) reset(seed int64) {
	v.seed = seed
	v.sim.Reset(seed)
	v.paused = false
	v.message = fmt.Sprintf("reset seed %d", seed)
}

func (v *Viewer) pan(dx, dz int) {
	p, ok := v.sim.(app.Panner)
	if !ok {
		return
	}
	if err := p.PanBy(dx, dz); err != nil {
		v.fail("pan", err)
	}
}

func (v *Viewer) save() {
	c, ok := v.sim.(app.Checkpointer)
	if !ok {
		return
	}
	if err := c.Save(v.checkpoint); err != nil {
		v.fail("save", err)
		return
	}
	v.message = "saved " + v.checkpoint
}

func (v *Viewer) load() {
	c, ok := v.sim.(app.Checkpointer)
	if !ok {
		return
	}
	if err := c.Load(v.checkpoint); err != nil {
		v.fail("load", err)
		return
	}
	v.paused = false
	v.message = "loaded " + v.checkpoint
}

// Draw paints the cells and the status line, then shows the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	size := v.sim.Size()
	cells := v.sim.Cells()
	last := len(v.palette) - 1
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			c := min(int(cells[y*size.W+x]), last)
			style := tcell.StyleDefault.Background(v.palette[c])
			v.screen.SetContent(2*x, y, ' ', nil, style)
			v.screen.SetContent(2*x+1, y, ' ', nil, style)
		}
	}
	status := v.sim.Name()
	if s, ok := v.sim.(statusProvider); ok {
		status = s.Status()
	}
	if v.paused {
		status += "  [paused]"
	}
	v.text(0, size.H, status)
	v.text(0, size.H+1, v.message)
	v.screen.Show()
}

func (v *Viewer) text(x, y int, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}
