// Package serialio moves inbound bytes from a blocking port into a bounded
// queue that a cooperative main loop can drain without blocking.
package serialio

import (
	"context"
	"sync/atomic"
	"time"

	"sensornode-go/x/mathx"
)

// Port is the receive side of a UART-like stream.
type Port interface {
	RecvSomeContext(ctx context.Context, p []byte) (int, error)
}

// recvSlice bounds each blocking read so cancellation is observed promptly.
const recvSlice = 250 * time.Millisecond

// Pump runs one reader goroutine per started port and queues the chunks it
// reads. Chunks are dropped, not queued, when the consumer falls behind.
type Pump struct {
	q     chan []byte
	drops uint32
}

func New(queue int) *Pump {
	if queue <= 0 {
		queue = 16
	}
	return &Pump{q: make(chan []byte, queue)}
}

// Start reads from port until ctx is cancelled or the returned cancel is
// called. maxChunk is clamped to 16..256 bytes.
func (p *Pump) Start(ctx context.Context, port Port, maxChunk int) func() {
	buf := make([]byte, mathx.Clamp(maxChunk, 16, 256))
	cctx, cancel := context.WithCancel(ctx)
	go func() {
		for cctx.Err() == nil {
			rctx, rcancel := context.WithTimeout(cctx, recvSlice)
			n, err := port.RecvSomeContext(rctx, buf)
			rcancel()
			if n > 0 {
				p.push(append([]byte(nil), buf[:n]...))
			}
			if err != nil && rctx.Err() == nil {
				// Back off after a port error.
				select {
				case <-cctx.Done():
				case <-time.After(recvSlice):
				}
			}
		}
	}()
	return cancel
}

// Inject queues b as if it had been read from a port.
func (p *Pump) Inject(b []byte) { p.push(append([]byte(nil), b...)) }

func (p *Pump) push(b []byte) {
	select {
	case p.q <- b:
	default:
		atomic.AddUint32(&p.drops, 1)
	}
}

// Drain hands every queued chunk to fn and returns the byte count. It never
// blocks.
func (p *Pump) Drain(fn func(b []byte)) int {
	n := 0
	for {
		select {
		case b := <-p.q:
			n += len(b)
			fn(b)
		default:
			return n
		}
	}
}

// Dropped counts chunks discarded because the queue was full.
func (p *Pump) Dropped() uint32 { return atomic.LoadUint32(&p.drops) }
