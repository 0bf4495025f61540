// Package timer holds the elapsed-seconds counter behind the meditation
// timer. It does no I/O and owns no goroutines; callers schedule ticks.
package timer

import (
	"fmt"
	"time"
)

// Interval is the wall-clock distance between two ticks.
const Interval = time.Second

// Timer counts whole seconds while running.
//
// Each call to Start opens a new run generation. Ticks carry the generation
// they were scheduled for, so a tick that was in flight when the timer was
// paused or reset is dropped instead of restarting the chain.
type Timer struct {
	elapsed int
	running bool
	gen     int
}

// Start begins counting. It reports whether a tick must be scheduled, which
// is false when the timer was already running.
func (t *Timer) Start() bool {
	if t.running {
		return false
	}
	t.running = true
	t.gen++
	return true
}

// Pause stops counting and keeps the counter. It reports whether the timer
// was running.
func (t *Timer) Pause() bool {
	if !t.running {
		return false
	}
	t.running = false
	t.gen++
	return true
}

// Reset stops counting and zeroes the counter. It returns the value the
// counter held before.
func (t *Timer) Reset() int {
	prev := t.elapsed
	if t.running {
		t.gen++
	}
	t.running = false
	t.elapsed = 0
	return prev
}

// Stop cancels any outstanding tick without touching the counter. Used on
// teardown.
func (t *Timer) Stop() {
	t.Pause()
}

// Tick applies one interval for generation id. It reports whether the next
// tick should be scheduled.
func (t *Timer) Tick(id int) bool {
	if !t.running || id != t.gen {
		return false
	}
	t.elapsed++
	return true
}

// ID is the current run generation.
func (t *Timer) ID() int { return t.gen }

func (t *Timer) Elapsed() int  { return t.elapsed }
func (t *Timer) Running() bool { return t.running }

func (t *Timer) String() string { return Format(t.elapsed) }

// Format renders seconds as mm:ss. Minutes do not wrap.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
