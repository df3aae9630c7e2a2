package core

import (
	"sync"

	"sensornode-go/x/fmtx"
	"sensornode-go/x/strconvx"
)

var (
	regMu    sync.RWMutex
	builders = map[Type]Builder{}
	names    = map[Type]string{}
)

// RegisterBuilder binds a module type to its builder. Device packages call
// it from init; a duplicate registration is a programming error.
func RegisterBuilder(typ Type, name string, b Builder) {
	regMu.Lock()
	defer regMu.Unlock()
	if typ == TypeNone {
		panic("module builder for type 0")
	}
	if _, exists := builders[typ]; exists {
		panic(fmtx.Sprintf("duplicate module builder: %d", typ))
	}
	builders[typ] = b
	names[typ] = name
}

func LookupBuilder(typ Type) (Builder, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	b, ok := builders[typ]
	return b, ok
}

// String returns the registered name of t.
func (t Type) String() string {
	regMu.RLock()
	defer regMu.RUnlock()
	if n, ok := names[t]; ok {
		return n
	}
	if t == TypeNone {
		return "none"
	}
	return "type" + strconvx.Itoa(int(t))
}
