// services/modules/devices/dht11/builder.go
package dht11dev

import (
	"context"

	"sensornode-go/services/modules/core"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

func init() { core.RegisterBuilder(core.TypeDHT11, "dht11", builder{}) }

// Descriptor: "1,<pin>".
type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Module, error) {
	pin, err := in.Params.Pin(0)
	if err != nil {
		return nil, err
	}
	ht, err := in.Platform.HumidityTemperature(pin)
	if err != nil {
		return nil, err
	}
	return &Module{pin: pin, ht: ht, log: in.Log}, nil
}

var sensors = []core.Sensor{
	{Index: 0, Kind: types.KindHumidity},
	{Index: 1, Kind: types.KindTemperature},
}

type Module struct {
	pin core.Pin
	ht  core.HumidityTemperature
	log *logx.Logger
}

func (m *Module) Type() core.Type        { return core.TypeDHT11 }
func (m *Module) Sensors() []core.Sensor { return sensors }

func (m *Module) Read(ctx context.Context, emit core.Emit) error {
	deciC, deciRH, err := m.ht.Measure()
	if err != nil {
		return err
	}
	m.log.Debugf("humidity=%d temperature=%d (tenths)", deciRH, deciC)
	emit(0, types.ValueHumidity, types.FloatValue(float32(deciRH)/10, 1))
	emit(1, types.ValueTemperature, types.FloatValue(float32(deciC)/10, 1))
	return nil
}
