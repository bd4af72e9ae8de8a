// Package spheres integrates sphere dynamics against the tile terrain:
// gravity and drag, box-sphere collision through a spiral search kernel,
// buoyancy on water, reflection on solid ground and a soft coupling between
// overlapping spheres.
package spheres

import "github.com/go-gl/mathgl/mgl64"

const (
	// RemovedY is where Remove parks a sphere.
	RemovedY = -10000
	// removedBelow marks spheres that take no part in the simulation.
	removedBelow = -1000
	// ghostDragFactor multiplies air resistance for ghost spheres.
	ghostDragFactor = 5
)

// Sphere is a simulated ball.
type Sphere struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	// Ghost spheres follow the terrain height and never collide; the
	// camera uses them as anchors.
	Ghost bool
	// Fish spheres feel water but pass through solid tiles.
	Fish bool
	// ScalePressure multiplies the downward push applied to water tiles.
	ScalePressure float64
}

// Removed reports whether the sphere is parked below the removal sentinel.
func (s *Sphere) Removed() bool { return s.Position.Y() < removedBelow }

// Params holds the sphere tunables. Units are world units and fixed steps.
type Params struct {
	Gravity       float64
	AirResistance float64
	Restitution   float64
	// Buoyancy is the upward velocity gained per submerged water tile.
	Buoyancy float64
	// PressureForce is the oscillator push applied to water tiles on contact.
	PressureForce float64
	SphereRadius  float64
	// Cohesion shrinks the sphere-sphere rest length below two radii.
	Cohesion  float64
	Stiffness float64
	Damping   float64
	TimeStep  float64
	// TileHalfExtent is the x/z half size of a tile's collision box.
	TileHalfExtent float64
	// KernelRadius is the Chebyshev radius of the collision search.
	KernelRadius int
}

// DefaultParams returns the standard sphere tunables.
func DefaultParams() Params {
	return Params{
		Gravity:        0.01,
		AirResistance:  0.002,
		Restitution:    0.5,
		Buoyancy:       0.02,
		PressureForce:  0.002,
		SphereRadius:   1,
		Cohesion:       0.1,
		Stiffness:      0.01,
		Damping:        0.01,
		TimeStep:       1,
		TileHalfExtent: 2,
		KernelRadius:   2,
	}
}
