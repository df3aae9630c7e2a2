package gateway

import (
	"time"

	"sensornode-go/types"
)

// Pace is the pause after every present or submit, giving the radio time
// to deliver and collect the ack.
const Pace = 500 * time.Millisecond

// Reporter maps module slots onto gateway child ids (slot*5 + sensor).
type Reporter struct {
	gw   Gateway
	Ack  bool
	Pace time.Duration
}

func NewReporter(gw Gateway) *Reporter {
	return &Reporter{gw: gw, Ack: true, Pace: Pace}
}

func (r *Reporter) Present(slot, idx int, kind types.SensorKind) error {
	err := r.gw.Present(types.SensorIndex(slot, idx), kind, r.Ack)
	r.gw.Wait(r.Pace)
	return err
}

func (r *Reporter) Submit(slot, idx int, vt types.ValueType, v types.Value) error {
	return r.SubmitChild(types.SensorIndex(slot, idx), vt, v)
}

// SubmitChild sends a value for an explicit child id, e.g. node level data
// on ChildNode.
func (r *Reporter) SubmitChild(child uint8, vt types.ValueType, v types.Value) error {
	err := r.gw.Send(child, vt, v, r.Ack)
	r.gw.Wait(r.Pace)
	return err
}
