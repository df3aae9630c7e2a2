// services/modules/devices/hcsr04/builder.go
package hcsr04dev

import (
	"context"

	"sensornode-go/services/modules/core"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

func init() { core.RegisterBuilder(core.TypeHCSR04, "hcsr04", builder{}) }

// Descriptor: "2,<trig>,<echo>".
type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Module, error) {
	trig, err := in.Params.Pin(0)
	if err != nil {
		return nil, err
	}
	echo, err := in.Params.Pin(1)
	if err != nil {
		return nil, err
	}
	r, err := in.Platform.Ranger(trig, echo)
	if err != nil {
		return nil, err
	}
	return &Module{r: r, log: in.Log}, nil
}

var sensors = []core.Sensor{{Index: 0, Kind: types.KindDistance}}

type Module struct {
	r   core.Ranger
	log *logx.Logger
}

func (m *Module) Type() core.Type        { return core.TypeHCSR04 }
func (m *Module) Sensors() []core.Sensor { return sensors }

// Read reports whole centimetres.
func (m *Module) Read(ctx context.Context, emit core.Emit) error {
	mm, err := m.r.DistanceMM()
	if err != nil {
		return err
	}
	cm := (mm + 5) / 10
	m.log.Debugf("distance=%dcm", cm)
	emit(0, types.ValueDistance, types.IntValue(cm))
	return nil
}
