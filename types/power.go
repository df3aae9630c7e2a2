package types

// PowerState is the scheduler's two-state machine.
type PowerState uint8

const (
	PowerAwake PowerState = iota
	PowerAsleep
)

func (s PowerState) String() string {
	if s == PowerAsleep {
		return "asleep"
	}
	return "awake"
}

// Edge selects the wake trigger of an interrupt line.
type Edge uint8

const (
	EdgeLow Edge = iota
	EdgeChange
	EdgeFalling
	EdgeRising
)

func (e Edge) String() string {
	switch e {
	case EdgeLow:
		return "low"
	case EdgeChange:
		return "change"
	case EdgeFalling:
		return "falling"
	default:
		return "rising"
	}
}

// WakeCause reports what ended a sleep.
type WakeCause int8

const (
	WakeTimer WakeCause = -1
	WakeInt0  WakeCause = 0
	WakeInt1  WakeCause = 1
)

func (c WakeCause) String() string {
	switch c {
	case WakeInt0:
		return "int0"
	case WakeInt1:
		return "int1"
	default:
		return "timer"
	}
}

// Interrupt reports whether the wake came from an external line.
func (c WakeCause) Interrupt() bool { return c >= 0 }
