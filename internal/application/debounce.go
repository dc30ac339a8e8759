package application

import (
	"sync"
	"time"

	"calcnote/internal/ports"
)

// DefaultDebounceDelay coalesces a burst of keystrokes into one cycle
const DefaultDebounceDelay = 100 * time.Millisecond

// Debouncer runs the most recently triggered function once the input has
// been quiet for the delay. Triggering again cancels a run that has not
// started yet.
type Debouncer struct {
	mu         sync.Mutex
	clock      ports.Clock
	delay      time.Duration
	timer      ports.Timer
	generation uint64
}

// NewDebouncer creates a debouncer on the given clock
func NewDebouncer(clock ports.Clock, delay time.Duration) *Debouncer {
	return &Debouncer{clock: clock, delay: delay}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger (re)arms the debouncer with fn
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	gen := d.generation

	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.generation {
			// Superseded after the timer had already fired
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel drops a pending run. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.generation++
	return true
}

// Pending reports whether a run is armed and has not started
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
