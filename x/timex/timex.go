package timex

import "time"

// Seconds converts a configured whole-second count to a Duration.
func Seconds(s uint16) time.Duration { return time.Duration(s) * time.Second }

// Millis converts a configured millisecond count to a Duration.
func Millis(ms uint16) time.Duration { return time.Duration(ms) * time.Millisecond }

// ResetTimer stops, drains and re-arms t. Negative durations fire immediately.
func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		DrainTimer(t)
	}
	t.Reset(d)
}

// DrainTimer empties t.C without blocking.
func DrainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}
