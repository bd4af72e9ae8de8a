package sea

import "github.com/charmbracelet/harmonica"

// Follower smooths a tracked x/z point with a damped spring so the window
// pans in a steady glide instead of jumping with every bounce.
type Follower struct {
	spring harmonica.Spring
	x, z   float64
	vx, vz float64
	primed bool
}

// NewFollower returns a follower updated fps times per second.
func NewFollower(fps int, frequency, damping float64) *Follower {
	return &Follower{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update moves the smoothed point toward the target and returns it. The
// first call snaps to the target.
func (f *Follower) Update(targetX, targetZ float64) (float64, float64) {
	if !f.primed {
		f.Jump(targetX, targetZ)
		return f.x, f.z
	}
	f.x, f.vx = f.spring.Update(f.x, f.vx, targetX)
	f.z, f.vz = f.spring.Update(f.z, f.vz, targetZ)
	return f.x, f.z
}

// Jump places the smoothed point on the target with no velocity.
func (f *Follower) Jump(x, z float64) {
	f.x, f.z = x, z
	f.vx, f.vz = 0, 0
	f.primed = true
}

// Forget drops the smoothed point; the next Update snaps again.
func (f *Follower) Forget() { f.primed = false }

// Position returns the smoothed point.
func (f *Follower) Position() (float64, float64) { return f.x, f.z }
