package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"calcnote/internal/adapters/clock"
	"calcnote/internal/ports"
)

func TestDebouncer_RunsAfterQuietPeriod(t *testing.T) {
	c := clock.NewManual()
	d := NewDebouncer(c, DefaultDebounceDelay)
	runs := 0

	d.Trigger(func() { runs++ })
	assert.True(t, d.Pending())

	c.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, runs)

	c.Advance(time.Millisecond)
	assert.Equal(t, 1, runs)
	assert.False(t, d.Pending())
}

func TestDebouncer_RetriggerCoalesces(t *testing.T) {
	c := clock.NewManual()
	d := NewDebouncer(c, 100*time.Millisecond)
	var got []string

	d.Trigger(func() { got = append(got, "first") })
	c.Advance(60 * time.Millisecond)
	d.Trigger(func() { got = append(got, "second") })
	c.Advance(60 * time.Millisecond)
	assert.Empty(t, got)

	c.Advance(40 * time.Millisecond)
	assert.Equal(t, []string{"second"}, got)
}

func TestDebouncer_Cancel(t *testing.T) {
	c := clock.NewManual()
	d := NewDebouncer(c, 100*time.Millisecond)
	runs := 0

	assert.False(t, d.Cancel())

	d.Trigger(func() { runs++ })
	assert.True(t, d.Cancel())
	c.Advance(time.Second)
	assert.Equal(t, 0, runs)
}

// staleClock fires every callback it was given, including stopped ones,
// the way a timer that already fired races with Stop
type staleClock struct {
	callbacks []func()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

func (s *staleClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	s.callbacks = append(s.callbacks, f)
	return noopTimer{}
}

func TestDebouncer_IgnoresSupersededFire(t *testing.T) {
	s := &staleClock{}
	d := NewDebouncer(s, 100*time.Millisecond)
	var got []string

	d.Trigger(func() { got = append(got, "old") })
	d.Trigger(func() { got = append(got, "new") })
	for _, fn := range s.callbacks {
		fn()
	}

	assert.Equal(t, []string{"new"}, got)
}
