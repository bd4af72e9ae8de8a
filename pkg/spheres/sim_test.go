package spheres

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"sea-block/pkg/grid"
	"sea-block/pkg/tiles"
	"sea-block/pkg/tiling"
)

const testTileSize = 4

func newTerrain(t *testing.T, w, d int, payload tiles.Payload) GridTerrain {
	t.Helper()
	window, err := grid.New(w, d)
	if err != nil {
		t.Fatal(err)
	}
	group := tiles.NewGroup(window.Len())
	tl := tiling.Square{}
	sim, err := tiles.NewSim(group, window, tl, tiles.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	window.Each(func(id int, c grid.Coord) {
		x, z := tl.IndexToPosition(c.X, c.Z)
		group.SetPosition(id, x*testTileSize, z*testTileSize)
		group.SetPayload(id, payload)
	})
	return GridTerrain{Window: window, Tiling: tl, Tiles: group, Sim: sim, TileSize: testTileSize}
}

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestBuoyancyLiftsSubmergedSphere(t *testing.T) {
	terrain := newTerrain(t, 10, 10, tiles.Payload{Height: 2, Water: true})
	sim := New(DefaultParams(), terrain)
	i := sim.Add(Sphere{Position: mgl64.Vec3{20, 0, 20}, ScalePressure: 1})

	p := sim.Params()
	prevVY := 0.0
	for step := 0; step < 10; step++ {
		before := sim.Sphere(i).Position
		wantDelta := (sim.Sphere(i).Velocity.Y() - p.Gravity) * (1 - p.AirResistance) * p.TimeStep
		if err := sim.Step(); err != nil {
			t.Fatal(err)
		}
		sp := sim.Sphere(i)
		if sp.Velocity.Y() <= prevVY {
			t.Fatalf("step %d: vertical velocity did not increase: %g -> %g", step, prevVY, sp.Velocity.Y())
		}
		prevVY = sp.Velocity.Y()
		if !near(sp.Position.Y(), before.Y()+wantDelta, 1e-12) {
			t.Fatalf("step %d: water moved the sphere: y=%g want %g", step, sp.Position.Y(), before.Y()+wantDelta)
		}
		if sp.Position.X() != 20 || sp.Position.Z() != 20 {
			t.Fatalf("step %d: sphere drifted sideways to %v", step, sp.Position)
		}
	}

	id, _ := terrain.Window.XZToIndex(5, 5)
	want := -10 * p.PressureForce
	if got := terrain.Sim.Vel(id); !near(got, want, 1e-12) {
		t.Fatalf("expected tile velocity %g after 10 contacts, got %g", want, got)
	}
}

func TestEveryWaterContactPushes(t *testing.T) {
	terrain := newTerrain(t, 10, 10, tiles.Payload{Height: 2, Water: true})
	params := DefaultParams()
	params.Gravity = 0
	params.AirResistance = 0
	sim := New(params, terrain)
	// On the corner shared by four tiles.
	sim.Add(Sphere{Position: mgl64.Vec3{22, 1, 22}, ScalePressure: 2})
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	if got := sim.Sphere(0).Velocity.Y(); !near(got, 4*params.Buoyancy, 1e-12) {
		t.Fatalf("expected four buoyancy impulses, got vy=%g", got)
	}
	for _, c := range []grid.Coord{{X: 5, Z: 5}, {X: 6, Z: 5}, {X: 5, Z: 6}, {X: 6, Z: 6}} {
		id, _ := terrain.Window.XZToIndex(c.X, c.Z)
		if got := terrain.Sim.Vel(id); !near(got, -2*params.PressureForce, 1e-12) {
			t.Fatalf("tile %v: expected push %g, got %g", c, -2*params.PressureForce, got)
		}
	}
}

func TestSolidReflectionUsesRestitution(t *testing.T) {
	terrain := newTerrain(t, 10, 10, tiles.Payload{Height: 2})
	params := DefaultParams()
	params.Gravity = 0
	params.AirResistance = 0
	sim := New(params, terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{20, 3.5, 20}, Velocity: mgl64.Vec3{0, -1, 0}})

	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	sp := sim.Sphere(0)
	if want := params.Restitution * 1; !near(sp.Velocity.Y(), want, 1e-12) {
		t.Fatalf("expected rebound speed %g, got %g", want, sp.Velocity.Y())
	}
	if !near(sp.Velocity.X(), 0, 1e-12) || !near(sp.Velocity.Z(), 0, 1e-12) {
		t.Fatalf("flat floor must reflect vertically, got %v", sp.Velocity)
	}
	// The original displacement is re-added after the push out.
	if !near(sp.Position.Y(), 2, 1e-12) {
		t.Fatalf("expected committed y=2, got %g", sp.Position.Y())
	}

	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	if !near(sp.Velocity.Y(), 0.5, 1e-12) {
		t.Fatalf("separating sphere must not be reflected again, got vy=%g", sp.Velocity.Y())
	}
	if !near(sp.Position.Y(), 3.5, 1e-12) {
		t.Fatalf("expected y=3.5 after rebound, got %g", sp.Position.Y())
	}
}

func TestSlopeNormalTiltsReflection(t *testing.T) {
	terrain := newTerrain(t, 10, 10, tiles.Payload{Height: 2})
	// Raise the column at x=4 so the surface at x=5 slopes down toward +x.
	for z := 0; z < 10; z++ {
		id, _ := terrain.Window.XZToIndex(4, z)
		terrain.Tiles.SetHeight(id, 4)
	}
	params := DefaultParams()
	params.Gravity = 0
	params.AirResistance = 0
	sim := New(params, terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{20.5, 3.5, 20}, Velocity: mgl64.Vec3{0, -1, 0}})
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	v := sim.Sphere(0).Velocity
	if v.X() <= 0 {
		t.Fatalf("expected the slope to deflect toward +x, got %v", v)
	}
	if !near(v.Z(), 0, 1e-12) {
		t.Fatalf("slope has no z component, got %v", v)
	}
}

func TestFishPassesThroughSolid(t *testing.T) {
	terrain := newTerrain(t, 10, 10, tiles.Payload{Height: 2})
	params := DefaultParams()
	params.Gravity = 0
	params.AirResistance = 0
	sim := New(params, terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{20, 2.5, 20}, Velocity: mgl64.Vec3{0, -1, 0}, Fish: true})
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	sp := sim.Sphere(0)
	if sp.Velocity.Y() != -1 || !near(sp.Position.Y(), 1.5, 1e-12) {
		t.Fatalf("fish should pass through, got pos=%v vel=%v", sp.Position, sp.Velocity)
	}
}

func TestGhostSnapsToTerrain(t *testing.T) {
	terrain := newTerrain(t, 10, 10, tiles.Payload{Height: 2})
	params := DefaultParams()
	sim := New(params, terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{20, 10, 20}, Velocity: mgl64.Vec3{1, 0, 0}, Ghost: true})
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	sp := sim.Sphere(0)
	if sp.Position.Y() != 2 || sp.Velocity.Y() != 0 {
		t.Fatalf("ghost should sit on the tile, got pos=%v vel=%v", sp.Position, sp.Velocity)
	}
	want := 1 - ghostDragFactor*params.AirResistance
	if !near(sp.Velocity.X(), want, 1e-12) {
		t.Fatalf("expected ghost drag to leave vx=%g, got %g", want, sp.Velocity.X())
	}
}

func TestRemovedSpheresAreSkipped(t *testing.T) {
	terrain := newTerrain(t, 4, 4, tiles.Payload{Height: 2})
	sim := New(DefaultParams(), terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{4, 10, 4}})
	sim.Add(Sphere{Position: mgl64.Vec3{4, 10, 4}})
	sim.Remove(0)
	for i := 0; i < 5; i++ {
		if err := sim.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := sim.Sphere(0).Position; got != (mgl64.Vec3{0, RemovedY, 0}) {
		t.Fatalf("removed sphere moved to %v", got)
	}
	if sim.Sphere(1).Position.Y() >= 10 {
		t.Fatal("the remaining sphere should fall")
	}
}

func TestSphereCouplingIsSymmetric(t *testing.T) {
	terrain := newTerrain(t, 4, 4, tiles.Payload{})
	params := DefaultParams()
	params.Gravity = 0
	params.AirResistance = 0
	sim := New(params, terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{0, 10, 0}})
	sim.Add(Sphere{Position: mgl64.Vec3{1.5, 10, 0}})
	// Out of reach of the others.
	sim.Add(Sphere{Position: mgl64.Vec3{10, 10, 0}})

	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	rest := 2 * params.SphereRadius * (1 - params.Cohesion)
	want := params.Stiffness * (rest - 1.5)
	a, b := sim.Sphere(0).Velocity, sim.Sphere(1).Velocity
	if !near(a.X(), -want, 1e-12) || !near(b.X(), want, 1e-12) {
		t.Fatalf("expected ±%g along x, got %v and %v", want, a, b)
	}
	if !near(a.Add(b).Len(), 0, 1e-12) {
		t.Fatalf("pair impulse must cancel, got %v + %v", a, b)
	}
	if sim.Sphere(2).Velocity != (mgl64.Vec3{}) {
		t.Fatalf("distant sphere should be untouched, got %v", sim.Sphere(2).Velocity)
	}
}

func TestCoincidentAndGhostPairsIgnored(t *testing.T) {
	terrain := newTerrain(t, 4, 4, tiles.Payload{})
	params := DefaultParams()
	params.Gravity = 0
	params.AirResistance = 0
	sim := New(params, terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{0, 10, 0}})
	sim.Add(Sphere{Position: mgl64.Vec3{0, 10, 0}})
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if v := sim.Sphere(i).Velocity; v != (mgl64.Vec3{}) {
			t.Fatalf("coincident sphere %d got velocity %v", i, v)
		}
	}

	sim.Clear()
	sim.Add(Sphere{Position: mgl64.Vec3{0, 10, 0}})
	sim.Add(Sphere{Position: mgl64.Vec3{1, 10, 0}, Ghost: true})
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	if v := sim.Sphere(0).Velocity; v != (mgl64.Vec3{}) {
		t.Fatalf("ghost should not push, got %v", v)
	}
}

func TestKernelOutsideWindowIsSkipped(t *testing.T) {
	terrain := newTerrain(t, 4, 4, tiles.Payload{Height: 2})
	params := DefaultParams()
	params.Gravity = 0
	params.AirResistance = 0
	sim := New(params, terrain)
	// Corner tile: most of the kernel falls outside the window.
	sim.Add(Sphere{Position: mgl64.Vec3{0, 3.5, 0}, Velocity: mgl64.Vec3{0, -1, 0}})
	// Far away from any tile.
	sim.Add(Sphere{Position: mgl64.Vec3{-100, 1, -100}, Velocity: mgl64.Vec3{0, -1, 0}})
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}
	if !near(sim.Sphere(0).Velocity.Y(), params.Restitution, 1e-12) {
		t.Fatalf("corner tile should still reflect, got %v", sim.Sphere(0).Velocity)
	}
	if got := sim.Sphere(1).Position.Y(); got != 0 {
		t.Fatalf("sphere outside the window should fall freely, got y=%g", got)
	}
}

func TestDropSettlesWithoutTunnelling(t *testing.T) {
	terrain := newTerrain(t, 10, 10, tiles.Payload{Height: 2})
	params := DefaultParams()
	sim := New(params, terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{20, 50, 20}})

	var peaks []float64
	prevY, rising := 50.0, false
	for step := 0; step < 3000; step++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		y := sim.Sphere(0).Position.Y()
		if y < 1 {
			t.Fatalf("step %d: sphere tunnelled to y=%g", step, y)
		}
		if rising && y < prevY && prevY > 3.5 {
			peaks = append(peaks, prevY)
		}
		rising = y > prevY
		prevY = y
	}
	if len(peaks) < 2 {
		t.Fatalf("expected several bounces, got peaks %v", peaks)
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i] >= peaks[i-1] {
			t.Fatalf("bounce %d rose from %g to %g", i, peaks[i-1], peaks[i])
		}
	}
	sp := sim.Sphere(0)
	if !near(sp.Position.Y(), 2+params.SphereRadius, 0.1) {
		t.Fatalf("expected the sphere to rest on the floor, got y=%g", sp.Position.Y())
	}
	if math.Abs(sp.Velocity.Y()) > 0.01 {
		t.Fatalf("expected the sphere to settle, got vy=%g", sp.Velocity.Y())
	}
}

func TestDivergenceIsReported(t *testing.T) {
	terrain := newTerrain(t, 4, 4, tiles.Payload{})
	sim := New(DefaultParams(), terrain)
	sim.Add(Sphere{Position: mgl64.Vec3{0, 10, 0}, Velocity: mgl64.Vec3{math.NaN(), 0, 0}})
	if err := sim.Step(); err == nil {
		t.Fatal("expected a divergence error")
	}
}
