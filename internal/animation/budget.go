package animation

import "time"

// Clock abstracts wall-clock time so pacing can be tested.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// FrameBudget paces frames to a fixed period. Render time is measured from
// Begin and only the remainder of the budget is slept in Wait.
type FrameBudget struct {
	clock  Clock
	budget time.Duration
	start  time.Time
}

// NewFrameBudget returns a FrameBudget of the given period.
func NewFrameBudget(clock Clock, budget time.Duration) *FrameBudget {
	return &FrameBudget{clock: clock, budget: budget}
}

// Budget returns the frame period.
func (b *FrameBudget) Budget() time.Duration {
	return b.budget
}

// Begin marks the start of a frame.
func (b *FrameBudget) Begin() {
	b.start = b.clock.Now()
}

// Wait sleeps for whatever is left of the frame and returns the time spent
// rendering. Frames that overrun do not sleep.
func (b *FrameBudget) Wait() time.Duration {
	elapsed := b.clock.Now().Sub(b.start)
	if remaining := b.budget - elapsed; remaining > 0 {
		b.clock.Sleep(remaining)
	}
	return elapsed
}
