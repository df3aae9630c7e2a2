// services/modules/devices/voltage/builder.go
package voltagedev

import (
	"context"
	"time"

	"sensornode-go/services/modules/core"
	"sensornode-go/types"
	"sensornode-go/x/logx"
	"sensornode-go/x/mathx"
)

func init() { core.RegisterBuilder(core.TypeVoltage, "voltage", builder{}) }

// Descriptor: "6,<pin>[,<samples>[,<coeff_x100>]]". coeff_x100 is the
// divider ratio times 100 (100 = direct connection).
type builder struct{}

// SampleGap separates consecutive ADC samples.
var SampleGap = 20 * time.Millisecond

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Module, error) {
	pin, err := in.Params.Pin(0)
	if err != nil {
		return nil, err
	}
	samples, err := in.Params.OptUint8(1, 1)
	if err != nil {
		return nil, err
	}
	coeff, err := in.Params.OptUint8(2, 100)
	if err != nil {
		return nil, err
	}
	a, err := in.Platform.Analog(pin)
	if err != nil {
		return nil, err
	}
	return &Module{
		a:       a,
		samples: mathx.Max(samples, 1),
		coeff:   mathx.Max(coeff, 1),
		log:     in.Log,
	}, nil
}

var sensors = []core.Sensor{{Index: 0, Kind: types.KindMultimeter}}

type Module struct {
	a       core.AnalogInput
	samples uint8
	coeff   uint8
	log     *logx.Logger
}

func (m *Module) Type() core.Type        { return core.TypeVoltage }
func (m *Module) Sensors() []core.Sensor { return sensors }

// Read averages the configured number of samples and reports millivolts.
func (m *Module) Read(ctx context.Context, emit core.Emit) error {
	var sum uint64
	for i := uint8(0); i < m.samples; i++ {
		if i > 0 && SampleGap > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(SampleGap):
			}
		}
		sum += uint64(m.a.Level())
	}
	num := sum * uint64(m.a.RefMilliVolts()) * 100
	den := uint64(m.samples) * 1024 * uint64(m.coeff)
	mv := mathx.RoundDiv(num, den)
	m.log.Debugf("voltage=%dmV samples=%d", mv, m.samples)
	emit(0, types.ValueVoltage, types.IntValue(int32(mv)))
	return nil
}
