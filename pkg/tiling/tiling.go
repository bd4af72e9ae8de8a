// Package tiling maps continuous x/z positions onto the integer tile indices
// of a regular tessellation and describes which tiles touch each other.
//
// Positions are expressed in tile units: callers scale them to world units.
package tiling

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownTiling is returned when a tiling name was never added to a Set.
	ErrUnknownTiling = errors.New("tiling: unknown tiling")
	// ErrDuplicateTiling is returned when a Set is built with a repeated name.
	ErrDuplicateTiling = errors.New("tiling: duplicate tiling")
)

// DiagonalWeight is the spring weight used for vertex-only neighbors.
var DiagonalWeight = 1 / math.Sqrt2

// Offset is a relative tile index.
type Offset struct {
	X, Z int
}

// Tiling is a regular tessellation of the x/z plane.
type Tiling interface {
	Name() string
	// PositionToIndex returns the index of the tile enclosing (x, z).
	PositionToIndex(x, z float64) (int, int)
	// IndexToPosition returns the center of tile (ix, iz).
	IndexToPosition(ix, iz int) (float64, float64)
	// Adjacent lists offsets to tiles sharing an edge with (ix, iz).
	Adjacent(ix, iz int) []Offset
	// Diagonal lists offsets to tiles sharing only a vertex with (ix, iz).
	Diagonal(ix, iz int) []Offset
}

// Set is an explicit collection of tilings keyed by name.
type Set struct {
	byName map[string]Tiling
}

// NewSet builds a Set, rejecting empty and repeated names.
func NewSet(tilings ...Tiling) (Set, error) {
	s := Set{byName: make(map[string]Tiling, len(tilings))}
	for _, t := range tilings {
		if t == nil || t.Name() == "" {
			return Set{}, fmt.Errorf("tiling: unnamed tiling")
		}
		if _, ok := s.byName[t.Name()]; ok {
			return Set{}, fmt.Errorf("%w: %q", ErrDuplicateTiling, t.Name())
		}
		s.byName[t.Name()] = t
	}
	return s, nil
}

// Builtin returns a fresh Set holding the square, triangle, hex and octagon
// tilings.
func Builtin() Set {
	s, err := NewSet(Square{}, Triangle{}, Hex{}, Octagon{})
	if err != nil {
		panic(err)
	}
	return s
}

// Get looks up a tiling by name.
func (s Set) Get(name string) (Tiling, error) {
	t, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTiling, name)
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func floorInt(v float64) int { return int(math.Floor(v)) }

func roundInt(v float64) int { return int(math.Floor(v + 0.5)) }

func odd(v int) bool { return v&1 == 1 }
