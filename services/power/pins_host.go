//go:build !(rp2040 || rp2350)

package power

import (
	"sync"

	"sensornode-go/types"
)

// SimPin is a wake line driven from software. It idles high, as a pulled-up
// input would.
type SimPin struct {
	mu    sync.Mutex
	level bool
	edge  types.Edge
	h     func()
}

func NewSimPin() *SimPin { return &SimPin{level: true} }

func (p *SimPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *SimPin) SetIRQ(edge types.Edge, handler func()) error {
	p.mu.Lock()
	p.edge, p.h = edge, handler
	p.mu.Unlock()
	return nil
}

func (p *SimPin) ClearIRQ() error {
	p.mu.Lock()
	p.h = nil
	p.mu.Unlock()
	return nil
}

// Drive sets the line level and runs the armed handler when the transition
// matches its edge.
func (p *SimPin) Drive(high bool) {
	p.mu.Lock()
	prev := p.level
	p.level = high
	h, edge := p.h, p.edge
	p.mu.Unlock()
	if h == nil {
		return
	}
	fire := false
	switch edge {
	case types.EdgeLow:
		fire = !high
	case types.EdgeChange:
		fire = prev != high
	case types.EdgeFalling:
		fire = prev && !high
	case types.EdgeRising:
		fire = !prev && high
	}
	if fire {
		h()
	}
}

// Pulse drives the line low and back high, producing both edges.
func (p *SimPin) Pulse() {
	p.Drive(false)
	p.Drive(true)
}
