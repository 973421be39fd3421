package chunkrt

import (
	"time"
)

// Time is the frame clock: the wall time of the last tick and the delta to
// the tick before it.
type Time struct {
	Time time.Time
	Dt   time.Duration

	now func() time.Time
}

func NewTime() *Time {
	return NewTimeWith(time.Now)
}

// NewTimeWith uses now as the clock source.
func NewTimeWith(now func() time.Time) *Time {
	return &Time{Time: now(), now: now}
}

// Tick advances the clock and returns the elapsed frame time. A clock that
// goes backwards yields a zero delta.
func (t *Time) Tick() time.Duration {
	current := t.now()
	t.Dt = current.Sub(t.Time)
	if t.Dt < 0 {
		t.Dt = 0
	}
	t.Time = current
	return t.Dt
}
