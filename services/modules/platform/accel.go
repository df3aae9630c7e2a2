// Package platform binds the module capability interfaces to hardware.
// Host builds get a simulated board; RP2 builds use machine pins, the ADC
// and tinygo drivers. The accelerometer adapter is shared and runs the
// in-repo ADXL345 driver over whichever I2C bus the platform provides.
package platform

import (
	"tinygo.org/x/drivers"

	"sensornode-go/drivers/adxl345"
	"sensornode-go/errcode"
	"sensornode-go/services/modules/core"
)

type accel struct {
	d adxl345.Device
}

func newAccel(bus drivers.I2C) *accel { return &accel{d: adxl345.New(bus)} }

func (a *accel) Configure(c core.AccelConfig) error {
	rng, ok := adxl345.RangeFromG(c.RangeG)
	if !ok {
		return errcode.New(errcode.InvalidParams, "adxl345.configure", "unsupported range")
	}
	err := a.d.Configure(adxl345.Config{
		ActivityThreshold:   c.ActivityThreshold,
		InactivityThreshold: c.InactivityThreshold,
		InactivityTime:      c.InactivityTime,
		Range:               rng,
		LowPower:            c.LowPower,
		InterruptPin:        c.InterruptPin,
	})
	if err != nil {
		return errcode.Wrap(errcode.PeripheralInit, "adxl345.configure", err)
	}
	return nil
}

func (a *accel) Acceleration() (x, y, z int32, err error) { return a.d.ReadAcceleration() }

func (a *accel) Activity() (activity, inactivity bool, err error) {
	src, err := a.d.InterruptSource()
	if err != nil {
		return false, false, err
	}
	return src&adxl345.IntActivity != 0, src&adxl345.IntInactivity != 0, nil
}
