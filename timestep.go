package engine

import "time"

const (
	// minFrameRate and maxFrameRate bound both the variable and the fixed
	// frame rate. Rates outside this range are clamped, not rejected.
	minFrameRate = 1
	maxFrameRate = 60

	// maxAccumulatedSteps caps how much wall-clock time the accumulator may
	// hold, expressed in fixed steps. Time beyond the cap is discarded so a
	// slow frame cannot trigger a spiral of catch-up steps.
	maxAccumulatedSteps = 5

	// suspendThresholdMs is the delta above which a tick is treated as a
	// resume from suspend rather than a slow frame.
	suspendThresholdMs = 1000

	// stepEpsilonMs absorbs float64 rounding when comparing the accumulator
	// against the step size, so a delta of exactly k steps runs k steps.
	stepEpsilonMs = 1e-9
)

// FixedTimeStep converts irregular wall-clock frame deltas into zero or more
// equal-size simulation steps plus one variable-rate step per tick.
//
// Each call to Tick reads the elapsed time since the previous tick, adds it to
// an internal accumulator, and runs the fixed callback once per whole step
// held by the accumulator (at most maxAccumulatedSteps times). The variable
// callback then runs exactly once with an interpolation alpha in [0, 1) that
// callers use to blend rendered state between the last two fixed steps.
type FixedTimeStep struct {
	framesPerSecond      int
	fixedFramesPerSecond int
	fixedStepMs          float64
	accumulatorMs        float64
	previous             time.Time
	now                  func() time.Time
	running              bool
}

// NewFixedTimeStep creates a scheduler targeting fps variable-rate frames and
// fixedFps fixed-rate simulation steps per second. Both rates are clamped to
// [1, 60].
func NewFixedTimeStep(fps, fixedFps int) *FixedTimeStep {
	f := &FixedTimeStep{now: time.Now}
	f.SetFps(fps, fixedFps)
	return f
}

// SetFps retargets both rates, clamping each to [1, 60]. The fixed step size
// becomes 1000/fixedFps milliseconds.
func (f *FixedTimeStep) SetFps(fps, fixedFps int) {
	f.framesPerSecond = clampRate(fps)
	f.fixedFramesPerSecond = clampRate(fixedFps)
	f.fixedStepMs = 1000 / float64(f.fixedFramesPerSecond)
}

// Fps returns the clamped variable frame rate target.
func (f *FixedTimeStep) Fps() int {
	return f.framesPerSecond
}

// FixedFps returns the clamped fixed frame rate target.
func (f *FixedTimeStep) FixedFps() int {
	return f.fixedFramesPerSecond
}

// FixedStepMs returns the fixed step size in milliseconds.
func (f *FixedTimeStep) FixedStepMs() float64 {
	return f.fixedStepMs
}

// SetClock replaces the wall-clock source used to measure tick deltas.
// Editors, replays and tests use this to drive the scheduler deterministically.
func (f *FixedTimeStep) SetClock(now func() time.Time) {
	f.now = now
}

// Start begins accepting ticks, resetting the accumulator and the reference
// timestamp so the first tick observes a fresh delta.
func (f *FixedTimeStep) Start() {
	f.accumulatorMs = 0
	f.previous = f.now()
	f.running = true
}

// Stop ends accepting ticks. Subsequent calls to Tick are no-ops.
func (f *FixedTimeStep) Stop() {
	f.running = false
}

// Running reports whether the scheduler is accepting ticks.
func (f *FixedTimeStep) Running() bool {
	return f.running
}

// Tick consumes the elapsed time since the previous tick and dispatches it.
// The fixed callback receives the fixed step size in milliseconds once per
// whole step drained from the accumulator; the variable callback then receives
// the interpolation alpha and the (clamped) raw delta in milliseconds.
//
// A delta above one second is treated as a resume from suspend and clamped to
// a single step size. The accumulator itself is capped at five step sizes and
// at most five fixed steps run per tick; excess time is discarded, never
// deferred to the next tick.
//
// Tick returns the number of fixed steps that ran.
func (f *FixedTimeStep) Tick(fixed func(dtMs float64), variable func(alpha, dtMs float64)) int {
	if !f.running {
		return 0
	}

	current := f.now()
	deltaMs := float64(current.Sub(f.previous).Nanoseconds()) / 1e6
	f.previous = current

	if deltaMs > suspendThresholdMs {
		deltaMs = f.fixedStepMs
	}

	f.accumulatorMs += deltaMs
	if maxMs := maxAccumulatedSteps * f.fixedStepMs; f.accumulatorMs > maxMs {
		f.accumulatorMs = maxMs
	}

	steps := 0
	for f.accumulatorMs+stepEpsilonMs >= f.fixedStepMs && steps < maxAccumulatedSteps {
		if fixed != nil {
			fixed(f.fixedStepMs)
		}
		f.accumulatorMs -= f.fixedStepMs
		steps++
	}
	if f.accumulatorMs < 0 {
		f.accumulatorMs = 0
	}
	if f.accumulatorMs+stepEpsilonMs >= f.fixedStepMs {
		// Step budget exhausted: drop the remainder instead of carrying it.
		f.accumulatorMs = 0
	}

	if variable != nil {
		variable(f.accumulatorMs/f.fixedStepMs, deltaMs)
	}
	return steps
}

// clampRate bounds a frame rate to the supported [1, 60] range.
func clampRate(rate int) int {
	if rate < minFrameRate {
		return minFrameRate
	}
	if rate > maxFrameRate {
		return maxFrameRate
	}
	return rate
}
