package engine_test

import (
	"math"
	"testing"
	"time"

	"github.com/JollyPixel/engine"
)

// manualClock drives a FixedTimeStep deterministically.
type manualClock struct {
	current time.Time
}

func (c *manualClock) now() time.Time {
	return c.current
}

func (c *manualClock) advanceMs(ms float64) {
	c.current = c.current.Add(time.Duration(ms * float64(time.Millisecond)))
}

func newSteppedTimeStep(fps, fixedFps int) (*engine.FixedTimeStep, *manualClock) {
	clock := &manualClock{current: time.Unix(0, 0)}
	ts := engine.NewFixedTimeStep(fps, fixedFps)
	ts.SetClock(clock.now)
	ts.Start()
	return ts, clock
}

// tickOnce advances the clock by deltaMs and runs one tick, returning the
// number of fixed steps and the final alpha.
func tickOnce(ts *engine.FixedTimeStep, clock *manualClock, deltaMs float64) (int, float64) {
	clock.advanceMs(deltaMs)
	alpha := math.NaN()
	steps := ts.Tick(nil, func(a, _ float64) { alpha = a })
	return steps, alpha
}

// go test -run ^TestTimeStepClampsRates$ . -count 1
func TestTimeStepClampsRates(t *testing.T) {
	ts := engine.NewFixedTimeStep(0, 1000)
	if ts.Fps() != 1 {
		t.Errorf("Expected fps clamped to 1, got %d", ts.Fps())
	}
	if ts.FixedFps() != 60 {
		t.Errorf("Expected fixed fps clamped to 60, got %d", ts.FixedFps())
	}

	ts.SetFps(-5, 30)
	if ts.Fps() != 1 || ts.FixedFps() != 30 {
		t.Errorf("Expected 1/30 after SetFps, got %d/%d", ts.Fps(), ts.FixedFps())
	}
	if got, want := ts.FixedStepMs(), 1000.0/30; got != want {
		t.Errorf("Expected step size %f, got %f", want, got)
	}
}

// go test -run ^TestTimeStepFiftyMillisecondFrame$ . -count 1
func TestTimeStepFiftyMillisecondFrame(t *testing.T) {
	ts, clock := newSteppedTimeStep(60, 60)

	clock.advanceMs(50)
	fixedCalls := 0
	var fixedDt, alpha float64
	steps := ts.Tick(
		func(dt float64) { fixedCalls++; fixedDt = dt },
		func(a, _ float64) { alpha = a },
	)

	if steps != 3 || fixedCalls != 3 {
		t.Fatalf("Expected 3 fixed steps for a 50ms frame at 60fps, got steps=%d calls=%d", steps, fixedCalls)
	}
	if want := 1000.0 / 60; math.Abs(fixedDt-want) > 1e-9 {
		t.Errorf("Expected fixed dt %f, got %f", want, fixedDt)
	}
	if math.Abs(alpha) > 1e-6 {
		t.Errorf("Expected interpolation alpha ~0, got %f", alpha)
	}
}

// go test -run ^TestTimeStepAccumulatesAcrossTicks$ . -count 1
func TestTimeStepAccumulatesAcrossTicks(t *testing.T) {
	// Step size 20ms. Deltas sum to 42ms: 2 whole steps plus a 2ms remainder.
	ts, clock := newSteppedTimeStep(60, 50)

	totalSteps := 0
	var alpha float64
	for _, deltaMs := range []float64{15, 15, 12} {
		steps, a := tickOnce(ts, clock, deltaMs)
		totalSteps += steps
		alpha = a
	}

	if totalSteps != 2 {
		t.Errorf("Expected 2 fixed steps across ticks, got %d", totalSteps)
	}
	if want := 2.0 / 20; math.Abs(alpha-want) > 1e-9 {
		t.Errorf("Expected final alpha %f, got %f", want, alpha)
	}
}

// go test -run ^TestTimeStepCapsAccumulator$ . -count 1
func TestTimeStepCapsAccumulator(t *testing.T) {
	// Step size 100ms. A 600ms frame holds 6 steps but the accumulator is
	// capped at 5; the excess is discarded, not deferred.
	ts, clock := newSteppedTimeStep(60, 10)

	steps, alpha := tickOnce(ts, clock, 600)
	if steps != 5 {
		t.Fatalf("Expected 5 fixed steps under the cap, got %d", steps)
	}
	if alpha != 0 {
		t.Errorf("Expected alpha 0 after a fully drained cap, got %f", alpha)
	}

	// Nothing carried over: a following 50ms frame yields no fixed step.
	steps, alpha = tickOnce(ts, clock, 50)
	if steps != 0 {
		t.Errorf("Expected no carried-over steps, got %d", steps)
	}
	if want := 50.0 / 100; math.Abs(alpha-want) > 1e-9 {
		t.Errorf("Expected alpha %f, got %f", want, alpha)
	}
}

// go test -run ^TestTimeStepSuspendClamp$ . -count 1
func TestTimeStepSuspendClamp(t *testing.T) {
	// A delta above one second is a resume from suspend: it is clamped to a
	// single step, not burned down as catch-up steps.
	ts, clock := newSteppedTimeStep(60, 60)

	steps, alpha := tickOnce(ts, clock, 5000)
	if steps != 1 {
		t.Errorf("Expected exactly 1 fixed step after suspend, got %d", steps)
	}
	if math.Abs(alpha) > 1e-6 {
		t.Errorf("Expected alpha ~0 after suspend, got %f", alpha)
	}
}

// go test -run ^TestTimeStepStopAndRestart$ . -count 1
func TestTimeStepStopAndRestart(t *testing.T) {
	ts, clock := newSteppedTimeStep(60, 50)

	t.Run("StoppedTickIsNoOp", func(t *testing.T) {
		ts.Stop()
		clock.advanceMs(100)
		called := false
		steps := ts.Tick(func(float64) { called = true }, func(_, _ float64) { called = true })
		if steps != 0 || called {
			t.Errorf("Expected stopped tick to do nothing, got steps=%d called=%v", steps, called)
		}
	})

	t.Run("StartResetsAccumulator", func(t *testing.T) {
		ts.Start()
		steps, alpha := tickOnce(ts, clock, 10)
		if steps != 0 {
			t.Errorf("Expected no fixed step from a 10ms frame, got %d", steps)
		}
		if want := 10.0 / 20; math.Abs(alpha-want) > 1e-9 {
			t.Errorf("Expected alpha %f after restart, got %f", want, alpha)
		}
	})
}

// go test -run ^TestTimeStepRawDelta$ . -count 1
func TestTimeStepRawDelta(t *testing.T) {
	ts, clock := newSteppedTimeStep(60, 50)

	clock.advanceMs(33)
	var rawDelta float64
	ts.Tick(nil, func(_, dt float64) { rawDelta = dt })
	if math.Abs(rawDelta-33) > 1e-9 {
		t.Errorf("Expected raw delta 33ms, got %f", rawDelta)
	}
}
