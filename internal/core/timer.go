package core

import (
	"math"
	"time"
)

// FixedStep converts elapsed wall-clock time into a whole number of fixed
// simulation steps.
type FixedStep struct {
	step     time.Duration
	maxSteps int
	last     time.Time
	now      func() time.Time
}

// NewFixedStep constructs a FixedStep for the given step duration. maxSteps
// caps the steps returned for one frame; zero or less means uncapped.
func NewFixedStep(step time.Duration, maxSteps int) *FixedStep {
	fs := &FixedStep{maxSteps: maxSteps, now: time.Now}
	fs.SetStep(step)
	return fs
}

// SetStep changes the step duration. Non-positive values select 60 steps
// per second.
func (f *FixedStep) SetStep(step time.Duration) {
	if step <= 0 {
		step = time.Second / 60
	}
	f.step = step
}

// StepDuration returns the current step duration.
func (f *FixedStep) StepDuration() time.Duration { return f.step }

// Steps returns round(dt/step), capped at the configured maximum.
func (f *FixedStep) Steps(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	n := int(math.Round(float64(dt) / float64(f.step)))
	if f.maxSteps > 0 && n > f.maxSteps {
		n = f.maxSteps
	}
	return n
}

// Elapsed returns the time since the previous call. The first call returns
// one step so a freshly started loop advances immediately.
func (f *FixedStep) Elapsed() time.Duration {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
		return f.step
	}
	dt := now.Sub(f.last)
	f.last = now
	return dt
}
