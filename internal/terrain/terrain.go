// Package terrain provides tile payload sources for the sea engine. The
// sources are deliberately simple analytic fields; they only have to feed
// heights and water flags to the simulation.
package terrain

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"sea-block/internal/core"
	"sea-block/pkg/pan"
	"sea-block/pkg/tiles"
)

// ErrUnknownSource is returned for a terrain name missing from the registry.
var ErrUnknownSource = errors.New("terrain: unknown source")

// Params shapes every source.
type Params struct {
	Seed int64
	// SeaLevel is the payload height of water tiles.
	SeaLevel float64
	// LandHeight is the peak height of solid tiles.
	LandHeight float64
	// Scale is the island spacing in tiles.
	Scale float64
}

// DefaultParams returns the standard terrain shape.
func DefaultParams() Params {
	return Params{Seed: 1, SeaLevel: 1, LandHeight: 6, Scale: 12}
}

// Factory builds a source for the given parameters.
type Factory func(p Params) pan.Source

var (
	waterColor = color.RGBA{R: 40, G: 90, B: 170, A: 255}
	sandColor  = color.RGBA{R: 210, G: 190, B: 130, A: 255}
	grassColor = color.RGBA{R: 70, G: 140, B: 60, A: 255}
	rockColor  = color.RGBA{R: 120, G: 115, B: 110, A: 255}
)

// Builtin returns a fresh registry with the flat, ocean, shore and islands
// sources.
func Builtin() core.Registry[Factory] {
	r, err := core.NewRegistry("terrain",
		core.Entry[Factory]{Name: "flat", Value: Flat},
		core.Entry[Factory]{Name: "ocean", Value: Ocean},
		core.Entry[Factory]{Name: "shore", Value: Shore},
		core.Entry[Factory]{Name: "islands", Value: Islands},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// New looks a source up by name and builds it.
func New(reg core.Registry[Factory], name string, p Params) (pan.Source, error) {
	f, err := reg.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownSource, err)
	}
	return f(p), nil
}

// Flat is solid ground at LandHeight everywhere.
func Flat(p Params) pan.Source {
	return pan.SourceFunc(func(x, z int) tiles.Payload {
		return tiles.Payload{Height: p.LandHeight, Color: grassColor}
	})
}

// Ocean is open water at SeaLevel everywhere.
func Ocean(p Params) pan.Source {
	return pan.SourceFunc(func(x, z int) tiles.Payload {
		return water(p)
	})
}

// Shore is water for negative x and a beach rising to LandHeight beyond.
func Shore(p Params) pan.Source {
	return pan.SourceFunc(func(x, z int) tiles.Payload {
		if x < 0 {
			return water(p)
		}
		ramp := math.Min(1, float64(x+1)/math.Max(p.Scale, 1))
		return land(p, p.SeaLevel+ramp*(p.LandHeight-p.SeaLevel))
	})
}

// Islands scatters round islands on a jittered lattice of Scale tiles.
func Islands(p Params) pan.Source {
	scale := math.Max(p.Scale, 2)
	return pan.SourceFunc(func(x, z int) tiles.Payload {
		cx := int(math.Floor(float64(x) / scale))
		cz := int(math.Floor(float64(z) / scale))
		best := 0.0
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				best = math.Max(best, islandBump(p.Seed, cx+dx, cz+dz, scale, x, z))
			}
		}
		h := best * p.LandHeight
		if h <= p.SeaLevel {
			return water(p)
		}
		return land(p, h)
	})
}

// islandBump evaluates the island owned by lattice cell (cx, cz) at tile
// (x, z). It returns 0 outside the island and 1 at its peak.
func islandBump(seed int64, cx, cz int, scale float64, x, z int) float64 {
	h := hash(seed, cx, cz)
	if h&3 == 0 {
		// No island in this cell.
		return 0
	}
	jx := float64(h>>8&0xff) / 255
	jz := float64(h>>16&0xff) / 255
	radius := scale * (0.25 + 0.2*float64(h>>24&0xff)/255)
	px := (float64(cx) + jx) * scale
	pz := (float64(cz) + jz) * scale
	d := math.Hypot(float64(x)-px, float64(z)-pz) / radius
	if d >= 1 {
		return 0
	}
	return 1 - d*d
}

// hash mixes a lattice cell with the seed (splitmix64 finalizer).
func hash(seed int64, x, z int) uint64 {
	v := uint64(seed) ^ uint64(int64(x))*0x9e3779b97f4a7c15 ^ uint64(int64(z))*0xc2b2ae3d27d4eb4f
	v ^= v >> 30
	v *= 0xbf58476d1ce4e5b9
	v ^= v >> 27
	v *= 0x94d049bb133111eb
	v ^= v >> 31
	return v
}

func water(p Params) tiles.Payload {
	return tiles.Payload{Height: p.SeaLevel, Water: true, Color: waterColor}
}

func land(p Params, h float64) tiles.Payload {
	c := grassColor
	switch {
	case h < p.SeaLevel+0.5:
		c = sandColor
	case h > 0.8*p.LandHeight:
		c = rockColor
	}
	return tiles.Payload{Height: h, Color: c}
}
