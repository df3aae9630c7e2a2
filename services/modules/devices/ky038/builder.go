// services/modules/devices/ky038/builder.go
package ky038dev

import (
	"context"

	"sensornode-go/services/modules/core"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

func init() { core.RegisterBuilder(core.TypeKY038, "ky038", builder{}) }

// Descriptor: "3,<pin>". Reports the raw microphone level.
type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Module, error) {
	pin, err := in.Params.Pin(0)
	if err != nil {
		return nil, err
	}
	a, err := in.Platform.Analog(pin)
	if err != nil {
		return nil, err
	}
	return &Module{a: a, log: in.Log}, nil
}

var sensors = []core.Sensor{{Index: 0, Kind: types.KindCustom}}

type Module struct {
	a   core.AnalogInput
	log *logx.Logger
}

func (m *Module) Type() core.Type        { return core.TypeKY038 }
func (m *Module) Sensors() []core.Sensor { return sensors }

func (m *Module) Read(ctx context.Context, emit core.Emit) error {
	lvl := m.a.Level()
	m.log.Debugf("sound=%d", lvl)
	emit(0, types.ValueVar1, types.IntValue(int32(lvl)))
	return nil
}
