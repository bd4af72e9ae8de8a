package sea

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"sea-block/internal/terrain"
	"sea-block/pkg/spheres"
	"sea-block/pkg/tiling"
)

// settleSpeed is the vertical speed below which a dropped sphere counts as
// resting.
const settleSpeed = 0.01

// DropStats summarises a single sphere dropped onto flat ground.
type DropStats struct {
	// Steps is the number of ticks simulated.
	Steps int
	// Peaks holds the apex height of every rebound, in order.
	Peaks []float64
	// Bounces counts downward-to-upward velocity reversals.
	Bounces int
	// SettleStep is the first tick after which the vertical speed stayed
	// below settleSpeed, or -1 if it never did.
	SettleStep int
	MinY       float64
	FinalY     float64
	FinalVY    float64
	// Tunnelled is set when the sphere center ever dropped below the ground
	// surface.
	Tunnelled bool
}

// Floor returns the resting height of the sphere center.
func (s DropStats) Floor(cfg Config) float64 {
	return cfg.Land.LandHeight + cfg.Spheres.SphereRadius
}

// dropConfig turns cfg into a flat world with no spawned spheres.
func dropConfig(cfg Config) Config {
	cfg.Terrain = "flat"
	cfg.SphereCount = 0
	cfg.Follow = false
	return cfg
}

// drop places one sphere above the window center and returns its index.
func (e *Engine) drop() int {
	cx, cz := e.centerWorld()
	return e.AddSphere(spheres.Sphere{
		Position:      mgl64.Vec3{cx, e.cfg.Land.LandHeight + e.cfg.SpawnHeight, cz},
		ScalePressure: 1,
	})
}

// DropResult runs a deterministic drop test with the provided configuration
// and returns the bounce telemetry.
//
// The helper forces flat terrain, drops a single sphere from SpawnHeight
// above the ground at the window center and steps the engine directly,
// ignoring the wall clock.
func DropResult(cfg Config, steps int) (DropStats, error) {
	stats := DropStats{SettleStep: -1, MinY: math.Inf(1)}
	if steps <= 0 {
		return stats, nil
	}
	e, err := New(dropConfig(cfg), tiling.Builtin(), terrain.Builtin())
	if err != nil {
		return stats, err
	}
	i := e.drop()
	floor := e.cfg.Land.LandHeight

	sp := e.balls.Sphere(i)
	prevY, prevVY, rising := sp.Position.Y(), sp.Velocity.Y(), false
	for step := 0; step < steps; step++ {
		if err := e.Step(); err != nil {
			return stats, err
		}
		sp = e.balls.Sphere(i)
		y, vy := sp.Position.Y(), sp.Velocity.Y()
		stats.Steps++
		stats.MinY = min(stats.MinY, y)
		if y < floor {
			stats.Tunnelled = true
		}
		if rising && y < prevY && prevY > floor+e.cfg.Spheres.SphereRadius+0.5 {
			stats.Peaks = append(stats.Peaks, prevY)
		}
		if prevVY < 0 && vy > 0 {
			stats.Bounces++
		}
		if math.Abs(vy) >= settleSpeed {
			stats.SettleStep = -1
		} else if stats.SettleStep < 0 {
			stats.SettleStep = step
		}
		rising = y > prevY
		prevY, prevVY = y, vy
	}
	stats.FinalY = prevY
	stats.FinalVY = prevVY
	return stats, nil
}
