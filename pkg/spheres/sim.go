package spheres

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"sea-block/pkg/tiles"
	"sea-block/pkg/tiling"
)

// Sim advances a set of spheres against a Terrain.
type Sim struct {
	params  Params
	terrain Terrain
	kernel  []tiling.Offset
	spheres []Sphere
}

// New creates an empty sphere sim.
func New(params Params, terrain Terrain) *Sim {
	return &Sim{
		params:  params,
		terrain: terrain,
		kernel:  SpiralKernel(params.KernelRadius),
	}
}

// Params returns the current tunables.
func (s *Sim) Params() Params { return s.params }

// SetParams replaces the tunables, rebuilding the search kernel when its
// radius changes.
func (s *Sim) SetParams(p Params) {
	if p.KernelRadius != s.params.KernelRadius {
		s.kernel = SpiralKernel(p.KernelRadius)
	}
	s.params = p
}

// Kernel returns the collision search offsets in scan order.
func (s *Sim) Kernel() []tiling.Offset { return s.kernel }

// Add appends a sphere and returns its index.
func (s *Sim) Add(sp Sphere) int {
	s.spheres = append(s.spheres, sp)
	return len(s.spheres) - 1
}

// Remove parks a sphere below the removal sentinel. Indices stay valid.
func (s *Sim) Remove(i int) {
	s.spheres[i].Position = mgl64.Vec3{0, RemovedY, 0}
	s.spheres[i].Velocity = mgl64.Vec3{}
}

// Clear drops every sphere.
func (s *Sim) Clear() { s.spheres = s.spheres[:0] }

// Len returns the number of spheres, removed ones included.
func (s *Sim) Len() int { return len(s.spheres) }

// Spheres exposes the sphere slice. Callers may edit entries between steps.
func (s *Sim) Spheres() []Sphere { return s.spheres }

// Sphere returns a pointer to sphere i.
func (s *Sim) Sphere(i int) *Sphere { return &s.spheres[i] }

// Step advances every sphere by one fixed tick, then couples overlapping
// pairs.
func (s *Sim) Step() error {
	p := s.params
	for i := range s.spheres {
		sp := &s.spheres[i]
		if sp.Removed() {
			continue
		}
		sp.Velocity[1] -= p.Gravity
		drag := p.AirResistance
		if sp.Ghost {
			drag *= ghostDragFactor
		}
		sp.Velocity = sp.Velocity.Mul(1 - drag)
		delta := sp.Velocity.Mul(p.TimeStep)
		future := sp.Position.Add(delta)

		if sp.Ghost {
			if h, ok := s.heightAt(future.X(), future.Z()); ok {
				future[1] = h
			}
			sp.Velocity[1] = 0
			sp.Position = future
			continue
		}

		s.collideTerrain(sp, future)
		sp.Position = sp.Position.Add(delta)
	}

	s.collideSpheres()

	for i := range s.spheres {
		sp := &s.spheres[i]
		if !finiteVec(sp.Position) || !finiteVec(sp.Velocity) {
			return fmt.Errorf("%w: sphere %d pos=%v vel=%v", tiles.ErrDiverged, i, sp.Position, sp.Velocity)
		}
	}
	return nil
}

func (s *Sim) heightAt(x, z float64) (float64, bool) {
	ix, iz := s.terrain.TileIndex(x, z)
	id, ok := s.terrain.TileAt(ix, iz)
	if !ok {
		return 0, false
	}
	return s.terrain.TileHeight(id), true
}

// collideTerrain scans the kernel around the tile under future. Water
// contacts add buoyancy and push the tile down; solid contacts move the
// sphere out along the surface normal and reflect its velocity.
func (s *Sim) collideTerrain(sp *Sphere, future mgl64.Vec3) {
	p := s.params
	he := p.TileHalfExtent
	ix, iz := s.terrain.TileIndex(future.X(), future.Z())
	for _, o := range s.kernel {
		tx, tz := ix+o.X, iz+o.Z
		id, ok := s.terrain.TileAt(tx, tz)
		if !ok {
			continue
		}
		h := s.terrain.TileHeight(id)
		if h <= 0 {
			continue
		}
		cx, cz := s.terrain.TileCenter(id)
		b := box{
			Min: mgl64.Vec3{cx - he, -h, cz - he},
			Max: mgl64.Vec3{cx + he, h, cz + he},
		}
		c, hit := b.intersect(future, p.SphereRadius)
		if !hit {
			continue
		}

		if s.terrain.IsWater(id) {
			sp.Velocity[1] += p.Buoyancy
			s.terrain.AccelTile(id, p.PressureForce*sp.ScalePressure)
			continue
		}
		if sp.Fish {
			continue
		}

		n := c.Normal
		if c.Top {
			n = s.surfaceNormal(tx, tz, h)
		}
		sp.Position = future.Add(n.Mul(c.Depth))
		if vn := sp.Velocity.Dot(n); vn < 0 {
			sp.Velocity = sp.Velocity.Sub(n.Mul((1 + p.Restitution) * vn))
		}
	}
}

// surfaceNormal estimates the terrain normal at a tile by central
// differences over its x and z neighbors. Missing neighbors count as level.
func (s *Sim) surfaceNormal(ix, iz int, h float64) mgl64.Vec3 {
	at := func(x, z int) float64 {
		if id, ok := s.terrain.TileAt(x, z); ok {
			return s.terrain.TileHeight(id)
		}
		return h
	}
	spacing := 2 * s.params.TileHalfExtent
	n := mgl64.Vec3{
		at(ix-1, iz) - at(ix+1, iz),
		2 * spacing,
		at(ix, iz-1) - at(ix, iz+1),
	}
	return n.Normalize()
}

func (s *Sim) collideSpheres() {
	p := s.params
	rest := 2 * p.SphereRadius * (1 - p.Cohesion)
	restSq := rest * rest
	for i := range s.spheres {
		a := &s.spheres[i]
		if a.Ghost || a.Removed() {
			continue
		}
		for j := i + 1; j < len(s.spheres); j++ {
			b := &s.spheres[j]
			if b.Ghost || b.Removed() {
				continue
			}
			diff := b.Position.Sub(a.Position)
			distSq := diff.Dot(diff)
			if distSq == 0 || distSq >= restSq {
				continue
			}
			dist := math.Sqrt(distSq)
			n := diff.Mul(1 / dist)
			relVel := b.Velocity.Sub(a.Velocity).Dot(n)
			f := p.Stiffness*(rest-dist) - p.Damping*relVel
			a.Velocity = a.Velocity.Sub(n.Mul(f))
			b.Velocity = b.Velocity.Add(n.Mul(f))
		}
	}
}

func finiteVec(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
