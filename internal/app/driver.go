// Package app runs a core.Sim in a window or terminal: wall-clock stepping,
// keyboard commands and checkpoint keys shared by both viewers.
package app

import (
	"strconv"
	"time"

	"sea-block/internal/core"
)

// Updater is implemented by sims that convert elapsed time into fixed steps
// themselves.
type Updater interface {
	Update(dt time.Duration) (int, error)
}

// Checkpointer saves and loads full state.
type Checkpointer interface {
	Save(path string) error
	Load(path string) error
}

// Panner moves the view by whole cells.
type Panner interface {
	PanBy(dx, dz int) error
}

// Tracker selects which object the view follows.
type Tracker interface {
	Track(i int)
	Tracked() int
}

// CellPerturber reacts to a poke at a display cell.
type CellPerturber interface {
	PerturbCell(x, y int, amount float64) bool
}

// Advance runs the steps that fit in dt. Sims implementing Updater own
// their clock; the rest are stepped by clock.
func Advance(sim core.Sim, clock *core.FixedStep, dt time.Duration) (int, error) {
	if u, ok := sim.(Updater); ok {
		return u.Update(dt)
	}
	n := clock.Steps(dt)
	for i := 0; i < n; i++ {
		if err := sim.Step(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// ToggleTracking stops following, or resumes following object 0.
func ToggleTracking(sim core.Sim) bool {
	t, ok := sim.(Tracker)
	if !ok {
		return false
	}
	if t.Tracked() >= 0 {
		t.Track(-1)
	} else {
		t.Track(0)
	}
	return true
}

// Splash is the oscillator push applied when a cell is poked.
const Splash = 0.5

func formatSeed(seed int64) string { return strconv.FormatInt(seed, 10) }
