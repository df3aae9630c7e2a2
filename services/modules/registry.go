// Package modules turns module descriptor strings into constructed sensor
// modules, presents their logical sensors and drives their periodic reads.
package modules

import (
	"context"

	"sensornode-go/errcode"
	"sensornode-go/services/modules/core"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

// Capacity is the number of module slots.
const Capacity = 8

// Reporter announces sensors and forwards values. slot and idx are combined
// into the node-wide sensor index by the implementation.
type Reporter interface {
	Present(slot, idx int, kind types.SensorKind) error
	Submit(slot, idx int, vt types.ValueType, v types.Value) error
}

type slot struct {
	typ  core.Type
	mod  core.Module
	desc string
}

// SlotInfo describes an occupied slot.
type SlotInfo struct {
	Slot       int
	Type       core.Type
	Descriptor string
	Sensors    []core.Sensor
}

type Registry struct {
	slots [Capacity]slot
	n     int
	plat  core.Platform
	rep   Reporter
	log   *logx.Logger
}

func New(plat core.Platform, rep Reporter, log *logx.Logger) *Registry {
	return &Registry{plat: plat, rep: rep, log: log.With("mod")}
}

// Register constructs the module described by desc in the next free slot.
// Type 0 and unknown types are ignored (registered=false, nil error). Any
// construction failure leaves the slot unoccupied and nothing presented.
func (r *Registry) Register(ctx context.Context, desc string) (registered bool, err error) {
	typ, params := core.ParseDescriptor(desc)
	if typ == core.TypeNone {
		return false, nil
	}
	b, ok := core.LookupBuilder(typ)
	if !ok {
		r.log.Debugf("%s: %q", errcode.UnknownType, desc)
		return false, nil
	}
	if r.n == Capacity {
		err := errcode.New(errcode.RegistryFull, "modules.register", desc)
		r.log.Errorf("%v", err)
		return false, err
	}

	idx := r.n
	mod, err := b.Build(ctx, core.BuilderInput{
		Slot:     idx,
		Params:   params,
		Platform: r.plat,
		Log:      r.log.With(typ.String()),
	})
	if err != nil {
		r.log.Errorf("slot=%d %s %q: %v", idx, typ, desc, err)
		return false, err
	}
	for _, s := range mod.Sensors() {
		if err := r.rep.Present(idx, int(s.Index), s.Kind); err != nil {
			r.log.Errorf("present slot=%d idx=%d: %v", idx, s.Index, err)
		}
	}
	r.slots[idx] = slot{typ: typ, mod: mod, desc: desc}
	r.n++
	r.log.Debugf("slot=%d, type=%s, configuration=%s", idx, typ, desc)
	return true, nil
}

// Update reads every occupied slot and submits its values. A failing module
// is logged and skipped. It returns the number of values submitted.
func (r *Registry) Update(ctx context.Context) int {
	sent := 0
	for i := 0; i < Capacity; i++ {
		s := &r.slots[i]
		if s.typ == core.TypeNone {
			continue
		}
		if ctx.Err() != nil {
			return sent
		}
		presented := s.mod.Sensors()
		emit := func(idx uint8, vt types.ValueType, v types.Value) {
			if !hasIndex(presented, idx) {
				r.log.Errorf("slot=%d emitted unpresented index %d", i, idx)
				return
			}
			if err := r.rep.Submit(i, int(idx), vt, v); err != nil {
				r.log.Errorf("submit slot=%d idx=%d: %v", i, idx, err)
				return
			}
			sent++
		}
		if err := s.mod.Read(ctx, emit); err != nil {
			r.log.Errorf("slot=%d %s read: %v", i, s.typ, err)
		}
	}
	return sent
}

func hasIndex(ss []core.Sensor, idx uint8) bool {
	for _, s := range ss {
		if s.Index == idx {
			return true
		}
	}
	return false
}

// Len returns the number of occupied slots.
func (r *Registry) Len() int { return r.n }

// Slots lists occupied slots in order.
func (r *Registry) Slots() []SlotInfo {
	out := make([]SlotInfo, 0, r.n)
	for i := 0; i < r.n; i++ {
		s := r.slots[i]
		out = append(out, SlotInfo{Slot: i, Type: s.typ, Descriptor: s.desc, Sensors: s.mod.Sensors()})
	}
	return out
}
