//go:build rp2040 || rp2350

package power

import (
	"machine"

	"sensornode-go/types"
)

// Pin adapts a GPIO to IRQPin. Level-low lines trigger on the falling edge
// and are checked for an already-low level when armed.
type Pin struct{ p machine.Pin }

// NewPin configures n as a pulled-up input.
func NewPin(n uint8) *Pin {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Pin{p: p}
}

func (r *Pin) Get() bool { return r.p.Get() }

func (r *Pin) SetIRQ(edge types.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e types.Edge) machine.PinChange {
	switch e {
	case types.EdgeRising:
		return machine.PinRising
	case types.EdgeChange:
		return machine.PinToggle
	default:
		return machine.PinFalling
	}
}

// LED drives the status indicator.
type LED struct{ p machine.Pin }

func NewLED(p machine.Pin) *LED {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &LED{p: p}
}

func (l *LED) Set(on bool) { l.p.Set(on) }
