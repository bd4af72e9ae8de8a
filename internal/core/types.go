package core

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownName is returned when a registry has no entry for a name.
	ErrUnknownName = errors.New("core: unknown name")
	// ErrDuplicateName is returned when a registry is built with a repeated name.
	ErrDuplicateName = errors.New("core: duplicate name")
)

// Size describes the dimensions of a displayed grid.
type Size struct {
	W int
	H int
}

// Sim is the contract viewers drive: a named, resettable simulation that
// renders into a byte-per-cell display buffer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() error
	Cells() []uint8
}

// Factory constructs a Sim from a flat key/value configuration.
type Factory func(cfg map[string]string) (Sim, error)

// Entry names a value for a Registry.
type Entry[T any] struct {
	Name  string
	Value T
}

// Registry is an immutable name lookup passed to whoever needs it. There is
// no process-wide instance.
type Registry[T any] struct {
	kind   string
	byName map[string]T
}

// NewRegistry builds a registry of the given kind ("scene", "terrain", ...),
// rejecting empty and repeated names.
func NewRegistry[T any](kind string, entries ...Entry[T]) (Registry[T], error) {
	r := Registry[T]{kind: kind, byName: make(map[string]T, len(entries))}
	for _, e := range entries {
		if e.Name == "" {
			return Registry[T]{}, fmt.Errorf("core: empty %s name", kind)
		}
		if _, ok := r.byName[e.Name]; ok {
			return Registry[T]{}, fmt.Errorf("%w: %s %q", ErrDuplicateName, kind, e.Name)
		}
		r.byName[e.Name] = e.Value
	}
	return r, nil
}

// Get returns the value registered under name.
func (r Registry[T]) Get(name string) (T, error) {
	v, ok := r.byName[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %q", ErrUnknownName, r.kind, name)
	}
	return v, nil
}

// Names lists the registered names in sorted order.
func (r Registry[T]) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (r Registry[T]) Len() int { return len(r.byName) }

// Marker is a point of interest in display-grid cell units, with its
// velocity in cells per step.
type Marker struct {
	X, Y    float64
	VX, VY  float64
	Tracked bool
}
