// Package adxl345 provides a driver for the ADXL345 3-axis accelerometer
// with activity/inactivity detection routed to an interrupt pin.
//
//	d := adxl345.New(bus)
//	err := d.Configure(adxl345.Config{ActivityThreshold: 10, InactivityThreshold: 20})
//	x, y, z, err := d.ReadAcceleration() // milli-g
//	src, err := d.InterruptSource()     // clears latched activity/inactivity
//
// Measurements are returned in full resolution (3.9 mg/LSB at every range)
// as fixed-point milli-g to keep floats off the hot path.
package adxl345

import (
	"errors"

	"tinygo.org/x/drivers"
)

// I2C addresses (ALT ADDRESS pin low / high).
const (
	Address    = 0x53
	AddressAlt = 0x1D
)

// DeviceID is the fixed content of the DEVID register.
const DeviceID = 0xE5

const (
	regDevID       = 0x00
	regThreshAct   = 0x24
	regThreshInact = 0x25
	regTimeInact   = 0x26
	regActInactCtl = 0x27
	regBWRate      = 0x2C
	regPowerCtl    = 0x2D
	regIntEnable   = 0x2E
	regIntMap      = 0x2F
	regIntSource   = 0x30
	regDataFormat  = 0x31
	regDataX0      = 0x32

	powerMeasure = 0x08
	bwLowPower   = 0x10
	formatFull   = 0x08

	// ACT_INACT_CTL: dc-coupled, all axes participate.
	actXYZ   = 0x70
	inactXYZ = 0x07
)

// Interrupt bits as found in INT_ENABLE, INT_MAP and INT_SOURCE.
const (
	IntOverrun    uint8 = 0x01
	IntWatermark  uint8 = 0x02
	IntFreeFall   uint8 = 0x04
	IntInactivity uint8 = 0x08
	IntActivity   uint8 = 0x10
	IntDoubleTap  uint8 = 0x20
	IntSingleTap  uint8 = 0x40
	IntDataReady  uint8 = 0x80
)

// Range selects the measurement span.
type Range uint8

const (
	Range2G Range = iota
	Range4G
	Range8G
	Range16G
)

// RangeFromG maps a span in g (2, 4, 8, 16) to a Range. Zero selects 2 g.
func RangeFromG(g uint8) (Range, bool) {
	switch g {
	case 0, 2:
		return Range2G, true
	case 4:
		return Range4G, true
	case 8:
		return Range8G, true
	case 16:
		return Range16G, true
	}
	return 0, false
}

// Rate codes for BW_RATE (output data rate).
const (
	Rate12_5Hz uint8 = 0x07
	Rate25Hz   uint8 = 0x08
	Rate50Hz   uint8 = 0x09
	Rate100Hz  uint8 = 0x0A
)

var (
	ErrNotFound = errors.New("adxl345: device id mismatch")
	ErrPin      = errors.New("adxl345: interrupt pin must be 1 or 2")
)

// Config controls activity detection and data format. Thresholds are in
// 62.5 mg/LSB; zero disables the corresponding detector.
type Config struct {
	Address             uint16
	ActivityThreshold   uint8
	InactivityThreshold uint8
	// InactivityTime in seconds before inactivity is flagged.
	InactivityTime uint8
	Range          Range
	// Rate defaults to Rate100Hz.
	Rate     uint8
	LowPower bool
	// InterruptPin selects INT1 (default) or INT2.
	InterruptPin uint8
}

// Device wraps an I2C connection to an ADXL345.
type Device struct {
	bus     drivers.I2C
	Address uint16

	cfg Config
	buf [6]byte
	w   [2]byte
}

// New creates a Device. The I2C bus must already be configured. No bus
// traffic happens until Configure.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Connected reports whether DEVID reads back as expected.
func (d *Device) Connected() bool {
	id, err := d.readReg(regDevID)
	return err == nil && id == DeviceID
}

// Configure checks the device id and programs detection, interrupts and
// data format, then enters measurement mode.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	if cfg.Rate == 0 {
		cfg.Rate = Rate100Hz
	}
	switch cfg.InterruptPin {
	case 0:
		cfg.InterruptPin = 1
	case 1, 2:
	default:
		return ErrPin
	}
	if !d.Connected() {
		return ErrNotFound
	}
	d.cfg = cfg

	rate := cfg.Rate & 0x0F
	if cfg.LowPower {
		rate |= bwLowPower
	}
	var ctl, ints uint8
	if cfg.ActivityThreshold > 0 {
		ctl |= actXYZ
		ints |= IntActivity
	}
	if cfg.InactivityThreshold > 0 {
		ctl |= inactXYZ
		ints |= IntInactivity
	}
	// All enabled sources go to the chosen pin; INT_MAP bit set = INT2.
	var mapping uint8
	if cfg.InterruptPin == 2 {
		mapping = 0xFF
	}

	seq := [...][2]byte{
		{regPowerCtl, 0},
		{regBWRate, rate},
		{regDataFormat, formatFull | uint8(cfg.Range&0x03)},
		{regThreshAct, cfg.ActivityThreshold},
		{regThreshInact, cfg.InactivityThreshold},
		{regTimeInact, cfg.InactivityTime},
		{regActInactCtl, ctl},
		{regIntMap, mapping},
		{regIntEnable, ints},
		{regPowerCtl, powerMeasure},
	}
	for _, s := range seq {
		if err := d.writeReg(s[0], s[1]); err != nil {
			return err
		}
	}
	// Drop anything latched before configuration.
	_, err := d.readReg(regIntSource)
	return err
}

// Config returns the applied configuration.
func (d *Device) Config() Config { return d.cfg }

// DetectionEnabled reports whether activity or inactivity detection is on.
func (d *Device) DetectionEnabled() bool {
	return d.cfg.ActivityThreshold > 0 || d.cfg.InactivityThreshold > 0
}

// ReadRaw returns the signed axis counts.
func (d *Device) ReadRaw() (x, y, z int16, err error) {
	if err = d.bus.Tx(d.Address, []byte{regDataX0}, d.buf[:]); err != nil {
		return
	}
	x = int16(uint16(d.buf[0]) | uint16(d.buf[1])<<8)
	y = int16(uint16(d.buf[2]) | uint16(d.buf[3])<<8)
	z = int16(uint16(d.buf[4]) | uint16(d.buf[5])<<8)
	return
}

// ReadAcceleration returns acceleration in milli-g.
func (d *Device) ReadAcceleration() (x, y, z int32, err error) {
	rx, ry, rz, err := d.ReadRaw()
	if err != nil {
		return 0, 0, 0, err
	}
	return milliG(rx), milliG(ry), milliG(rz), nil
}

// InterruptSource reads INT_SOURCE, which clears the latched
// activity/inactivity bits.
func (d *Device) InterruptSource() (uint8, error) { return d.readReg(regIntSource) }

// milliG converts a full-resolution count (3.9 mg/LSB).
func milliG(v int16) int32 { return (int32(v)*39 + sign(v)*5) / 10 }

func sign(v int16) int32 {
	if v < 0 {
		return -1
	}
	return 1
}

// MilliGToMS2 converts milli-g to m/s^2.
func MilliGToMS2(mg int32) float32 { return float32(mg) * 9.80665 / 1000 }

func (d *Device) readReg(reg uint8) (uint8, error) {
	r := d.buf[:1]
	if err := d.bus.Tx(d.Address, []byte{reg}, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (d *Device) writeReg(reg, v uint8) error {
	d.w[0], d.w[1] = reg, v
	return d.bus.Tx(d.Address, d.w[:], nil)
}
