// services/modules/devices/light/builder.go
package lightdev

import (
	"context"

	"sensornode-go/services/modules/core"
	"sensornode-go/types"
	"sensornode-go/x/logx"
	"sensornode-go/x/mathx"
)

func init() { core.RegisterBuilder(core.TypeLight, "light", builder{}) }

// Descriptor: "4,<pin>". The photoresistor divider reads high in the dark,
// so the reported level is inverted.
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

var sensors = []core.Sensor{{Index: 0, Kind: types.KindLightLevel}}

const fullScale = 1023

type Module struct {
	a   core.AnalogInput
	log *logx.Logger
}

func (m *Module) Type() core.Type        { return core.TypeLight }
func (m *Module) Sensors() []core.Sensor { return sensors }

func (m *Module) Read(ctx context.Context, emit core.Emit) error {
	lvl := fullScale - mathx.Min(m.a.Level(), fullScale)
	m.log.Debugf("light=%d", lvl)
	emit(0, types.ValueLightLevel, types.IntValue(int32(lvl)))
	return nil
}
