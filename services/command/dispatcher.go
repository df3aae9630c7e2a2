// Package command maps short text keys to handlers. The table has a fixed
// capacity and is scanned linearly; the first registration of a key wins.
package command

import (
	"sensornode-go/errcode"
	"sensornode-go/x/fmtx"
)

const (
	// Capacity is the number of handlers the table holds.
	Capacity = 16
	// MaxKeyLen bounds a command key in bytes.
	MaxKeyLen = 15
)

// Handler receives the argument text following the key.
type Handler func(args string) error

type entry struct {
	key string
	h   Handler
}

type Dispatcher struct {
	entries [Capacity]entry
	n       int
}

func New() *Dispatcher { return &Dispatcher{} }

// Register appends a handler. Duplicate keys are accepted but only the first
// one is ever invoked.
func (d *Dispatcher) Register(key string, h Handler) error {
	if key == "" || len(key) > MaxKeyLen || h == nil {
		return errcode.New(errcode.InvalidKey, "command.register", key)
	}
	if d.n == Capacity {
		return errcode.New(errcode.TableFull, "command.register", key)
	}
	d.entries[d.n] = entry{key: key, h: h}
	d.n++
	return nil
}

// MustRegister panics if the handler cannot be added. Use at startup.
func (d *Dispatcher) MustRegister(key string, h Handler) {
	if err := d.Register(key, h); err != nil {
		panic(fmtx.Sprintf("command table: %v", err))
	}
}

// Handle invokes the first handler registered under key. An unknown key
// returns handled=false and has no side effects.
func (d *Dispatcher) Handle(key, args string) (handled bool, err error) {
	for i := 0; i < d.n; i++ {
		if d.entries[i].key == key {
			return true, d.entries[i].h(args)
		}
	}
	return false, nil
}

// Len reports the number of registered handlers.
func (d *Dispatcher) Len() int { return d.n }

// Keys lists registered keys in registration order.
func (d *Dispatcher) Keys() []string {
	out := make([]string, d.n)
	for i := 0; i < d.n; i++ {
		out[i] = d.entries[i].key
	}
	return out
}
