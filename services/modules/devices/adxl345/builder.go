// services/modules/devices/adxl345/builder.go
package adxl345dev

import (
	"context"

	"sensornode-go/drivers/adxl345"
	"sensornode-go/errcode"
	"sensornode-go/services/modules/core"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

func init() { core.RegisterBuilder(core.TypeADXL345, "adxl345", builder{}) }

// Descriptor: "5,<act>,<inact>,<inact_time>[,<power_mode>[,<int_line>[,<range_g>]]]".
// Thresholds of zero disable the detector; with both disabled no motion
// sensor is presented. power_mode non-zero selects low power.
type builder struct{}

const (
	defaultInactivityTime = 5
	// Bound on INT_SOURCE re-reads while both detectors are latched.
	maxActivityPolls = 4
)

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Module, error) {
	var cfg core.AccelConfig
	var err error
	if cfg.ActivityThreshold, err = in.Params.Uint8(0); err != nil {
		return nil, err
	}
	if cfg.InactivityThreshold, err = in.Params.Uint8(1); err != nil {
		return nil, err
	}
	if cfg.InactivityTime, err = in.Params.Uint8(2); err != nil {
		return nil, err
	}
	if cfg.InactivityTime == 0 {
		cfg.InactivityTime = defaultInactivityTime
	}
	mode, err := in.Params.OptUint8(3, 0)
	if err != nil {
		return nil, err
	}
	cfg.LowPower = mode != 0
	if cfg.InterruptPin, err = in.Params.OptUint8(4, 1); err != nil {
		return nil, err
	}
	if cfg.RangeG, err = in.Params.OptUint8(5, 2); err != nil {
		return nil, err
	}

	acc, err := in.Platform.Accelerometer()
	if err != nil {
		return nil, err
	}
	if err := acc.Configure(cfg); err != nil {
		return nil, errcode.Wrap(errcode.PeripheralInit, "adxl345.build", err)
	}

	m := &Module{acc: acc, cfg: cfg, log: in.Log}
	m.sensors = append(m.sensors, core.Sensor{Index: 0, Kind: types.KindAccelerometer})
	if m.detects() {
		m.sensors = append(m.sensors, core.Sensor{Index: 1, Kind: types.KindMotion})
	}
	return m, nil
}

type Module struct {
	acc     core.Accelerometer
	cfg     core.AccelConfig
	sensors []core.Sensor
	log     *logx.Logger
}

func (m *Module) Type() core.Type        { return core.TypeADXL345 }
func (m *Module) Sensors() []core.Sensor { return m.sensors }

func (m *Module) detects() bool {
	return m.cfg.ActivityThreshold > 0 || m.cfg.InactivityThreshold > 0
}

// Read reports acceleration in m/s^2 and, with detection enabled, whether
// the node is moving: activity seen, or inactivity not yet reached.
func (m *Module) Read(ctx context.Context, emit core.Emit) error {
	x, y, z, err := m.acc.Acceleration()
	if err != nil {
		return err
	}
	m.log.Debugf("acceleration mg x=%d y=%d z=%d", x, y, z)
	emit(0, types.ValueAccelerationX, types.FloatValue(adxl345.MilliGToMS2(x), 2))
	emit(0, types.ValueAccelerationY, types.FloatValue(adxl345.MilliGToMS2(y), 2))
	emit(0, types.ValueAccelerationZ, types.FloatValue(adxl345.MilliGToMS2(z), 2))

	if !m.detects() {
		return nil
	}
	act, inact, err := m.acc.Activity()
	for i := 0; err == nil && act && inact && i < maxActivityPolls; i++ {
		act, inact, err = m.acc.Activity()
	}
	if err != nil {
		return err
	}
	moving := act || !inact
	m.log.Debugf("activity=%t", moving)
	emit(1, types.ValueTripped, types.BoolValue(moving))
	return nil
}
