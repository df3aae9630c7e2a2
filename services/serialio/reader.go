package serialio

import (
	"context"
	"io"
	"sync"
)

// ReaderPort adapts a blocking io.Reader (stdin, a host serial port, a
// console) to Port. One goroutine owns the reader; RecvSomeContext expects a
// single receiver.
type ReaderPort struct {
	ch      chan []byte
	once    sync.Once
	mu      sync.Mutex
	err     error
	r       io.Reader
	done    chan struct{}
	pending []byte // unread tail of the last chunk
}

func FromReader(r io.Reader) *ReaderPort {
	return &ReaderPort{r: r, ch: make(chan []byte, 1), done: make(chan struct{})}
}

func (rp *ReaderPort) loop() {
	buf := make([]byte, 256)
	for {
		n, err := rp.r.Read(buf)
		if n > 0 {
			rp.ch <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			rp.mu.Lock()
			rp.err = err
			rp.mu.Unlock()
			close(rp.done)
			return
		}
	}
}

// RecvSomeContext returns the next bytes read, or the reader's terminal
// error once it is exhausted. A chunk larger than p is served across calls.
func (rp *ReaderPort) RecvSomeContext(ctx context.Context, p []byte) (int, error) {
	rp.once.Do(func() { go rp.loop() })
	if len(rp.pending) > 0 {
		return rp.serve(p, rp.pending), nil
	}
	select {
	case b := <-rp.ch:
		return rp.serve(p, b), nil
	case <-rp.done:
		select {
		case b := <-rp.ch:
			return rp.serve(p, b), nil
		default:
		}
		rp.mu.Lock()
		defer rp.mu.Unlock()
		return 0, rp.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (rp *ReaderPort) serve(p, b []byte) int {
	n := copy(p, b)
	rp.pending = b[n:]
	return n
}

// Err returns the terminal read error, nil while the reader is live.
func (rp *ReaderPort) Err() error {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.err
}

var _ Port = (*ReaderPort)(nil)
