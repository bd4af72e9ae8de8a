package tiles

import (
	"errors"
	"fmt"
	"math"

	"sea-block/pkg/grid"
	"sea-block/pkg/tiling"
)

// ErrDiverged is returned when an integration step produces NaN or Inf.
var ErrDiverged = errors.New("tiles: oscillator state diverged")

// Params holds the spring network tunables.
type Params struct {
	// Spring scales the force along every spring.
	Spring float64
	// Damping scales the relative velocity term along every spring.
	Damping float64
	// Centering pulls every tile back toward rest.
	Centering float64
	// Friction is the fraction of velocity lost per step.
	Friction float64
	// ResetRange bounds position and velocity of regenerated tiles.
	ResetRange float64
}

// DefaultParams returns the standard water surface tunables.
func DefaultParams() Params {
	return Params{
		Spring:     0.05,
		Damping:    0.01,
		Centering:  0.001,
		Friction:   0.01,
		ResetRange: 0.01,
	}
}

// Spring connects flat ids A < B.
type Spring struct {
	A, B   int
	Weight float64
}

// Sim integrates the oscillator position and velocity of every tile.
type Sim struct {
	group   *Group
	params  Params
	springs []Spring
	pos     []float64
	vel     []float64
}

// NewSim builds the spring network once from the tiling's neighbor offsets,
// wrapping around the window edges.
func NewSim(group *Group, window *grid.Window, t tiling.Tiling, params Params) (*Sim, error) {
	if group.Len() != window.Len() {
		return nil, fmt.Errorf("tiles: group has %d tiles, window has %d", group.Len(), window.Len())
	}
	s := &Sim{
		group:  group,
		params: params,
		pos:    make([]float64, group.Len()),
		vel:    make([]float64, group.Len()),
	}
	s.springs = buildSprings(window, t)
	return s, nil
}

func buildSprings(window *grid.Window, t tiling.Tiling) []Spring {
	origin := window.Origin()
	w, d := window.Width(), window.Depth()
	wrapped := func(x, z int) (int, bool) {
		wx := origin.X + ((x-origin.X)%w+w)%w
		wz := origin.Z + ((z-origin.Z)%d+d)%d
		return window.XZToIndex(wx, wz)
	}

	seen := make(map[[2]int]struct{})
	var springs []Spring
	add := func(a, b int, weight float64) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		key := [2]int{a, b}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		springs = append(springs, Spring{A: a, B: b, Weight: weight})
	}

	for _, tile := range window.Tiles() {
		for _, o := range t.Adjacent(tile.X, tile.Z) {
			if other, ok := wrapped(tile.X+o.X, tile.Z+o.Z); ok {
				add(tile.ID, other, 1)
			}
		}
	}
	// Diagonals go second so that in tiny windows where a tile is reachable
	// both ways the edge keeps the adjacent weight.
	for _, tile := range window.Tiles() {
		for _, o := range t.Diagonal(tile.X, tile.Z) {
			if other, ok := wrapped(tile.X+o.X, tile.Z+o.Z); ok {
				add(tile.ID, other, tiling.DiagonalWeight)
			}
		}
	}
	return springs
}

// Springs exposes the spring list. It must not be modified.
func (s *Sim) Springs() []Spring { return s.springs }

// Params returns the current tunables.
func (s *Sim) Params() Params { return s.params }

// SetParams replaces the tunables; the spring topology is unaffected.
func (s *Sim) SetParams(p Params) { s.params = p }

// Pos returns the oscillator position of a tile.
func (s *Sim) Pos(id int) float64 { return s.pos[id] }

// Vel returns the oscillator velocity of a tile.
func (s *Sim) Vel(id int) float64 { return s.vel[id] }

// Step advances every oscillator by one fixed step. Springs only act
// between two water tiles.
func (s *Sim) Step() error {
	p := s.params
	water := s.group.water
	pos, vel := s.pos, s.vel

	for _, sp := range s.springs {
		if !water[sp.A] || !water[sp.B] {
			continue
		}
		d := pos[sp.B] - pos[sp.A]
		relVel := vel[sp.B] - vel[sp.A]
		acc := d*sp.Weight*p.Spring + relVel*p.Damping
		vel[sp.A] += acc
		vel[sp.B] -= acc
	}

	keep := 1 - p.Friction
	for i := range pos {
		vel[i] -= pos[i] * p.Centering
		pos[i] += vel[i]
		vel[i] *= keep
		if !finite(pos[i]) || !finite(vel[i]) {
			return fmt.Errorf("%w: tile %d pos=%v vel=%v", ErrDiverged, i, pos[i], vel[i])
		}
	}
	return nil
}

// AccelTile pushes a tile's oscillator down by amount.
func (s *Sim) AccelTile(id int, amount float64) {
	s.vel[id] -= amount
}

// ResetTile clamps a freshly regenerated tile into the neutral range so
// amplitude from its previous location does not carry over.
func (s *Sim) ResetTile(id int) {
	r := s.params.ResetRange
	s.pos[id] = clamp(s.pos[id], -r, r)
	s.vel[id] = clamp(s.vel[id], -r, r)
}

// RefreshHeights recomputes tile heights from the payload height, adding
// the oscillator offset scaled by amplitude on water tiles.
func (s *Sim) RefreshHeights(amplitude float64) {
	g := s.group
	for i := range s.pos {
		h := g.base[i]
		if g.water[i] {
			h += s.pos[i] * amplitude
		}
		g.height[i] = h
	}
}

// State returns copies of the oscillator arrays.
func (s *Sim) State() (pos, vel []float64) {
	return append([]float64(nil), s.pos...), append([]float64(nil), s.vel...)
}

// Restore replaces the oscillator arrays.
func (s *Sim) Restore(pos, vel []float64) error {
	if len(pos) != len(s.pos) || len(vel) != len(s.vel) {
		return fmt.Errorf("tiles: restore %d/%d values into %d tiles", len(pos), len(vel), len(s.pos))
	}
	copy(s.pos, pos)
	copy(s.vel, vel)
	return nil
}

// Zero clears every oscillator.
func (s *Sim) Zero() {
	clear(s.pos)
	clear(s.vel)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
