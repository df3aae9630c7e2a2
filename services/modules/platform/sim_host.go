//go:build !(rp2040 || rp2350)

package platform

import (
	"errors"
	"sync"

	"sensornode-go/drivers/adxl345"
	"sensornode-go/errcode"
	"sensornode-go/services/modules/core"
)

// Sim is a host board with adjustable readings. It is safe to change
// readings from another goroutine while modules read.
type Sim struct {
	mu     sync.Mutex
	deciC  int16
	deciRH uint16
	htErr  error
	distMM int32
	levels map[core.Pin]uint16
	refMV  uint16

	// Accel models the accelerometer register file behind the I2C bus.
	Accel *SimADXL345
}

func NewSim() *Sim {
	return &Sim{
		deciC:  215,
		deciRH: 450,
		distMM: 1234,
		levels: map[core.Pin]uint16{},
		refMV:  3300,
		Accel:  NewSimADXL345(),
	}
}

func (s *Sim) SetHumidityTemperature(deciC int16, deciRH uint16, err error) {
	s.mu.Lock()
	s.deciC, s.deciRH, s.htErr = deciC, deciRH, err
	s.mu.Unlock()
}

// SetDistanceMM sets the echo distance; 0 simulates a missing echo.
func (s *Sim) SetDistanceMM(mm int32) {
	s.mu.Lock()
	s.distMM = mm
	s.mu.Unlock()
}

// SetLevel sets the 10-bit level read on pin. Unset pins read mid-scale.
func (s *Sim) SetLevel(pin core.Pin, v uint16) {
	s.mu.Lock()
	s.levels[pin] = v
	s.mu.Unlock()
}

func (s *Sim) HumidityTemperature(pin core.Pin) (core.HumidityTemperature, error) {
	return simHT{s}, nil
}

func (s *Sim) Ranger(trig, echo core.Pin) (core.Ranger, error) {
	if trig == echo {
		return nil, errcode.New(errcode.InvalidParams, "sim.ranger", "trig and echo share a pin")
	}
	return simRanger{s}, nil
}

func (s *Sim) Analog(pin core.Pin) (core.AnalogInput, error) { return simAnalog{s, pin}, nil }

func (s *Sim) Accelerometer() (core.Accelerometer, error) { return newAccel(s.Accel), nil }

type simHT struct{ s *Sim }

func (h simHT) Measure() (int16, uint16, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if h.s.htErr != nil {
		return 0, 0, h.s.htErr
	}
	return h.s.deciC, h.s.deciRH, nil
}

type simRanger struct{ s *Sim }

func (r simRanger) DistanceMM() (int32, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.distMM <= 0 {
		return 0, errcode.New(errcode.Timeout, "sim.ranger", "no echo")
	}
	return r.s.distMM, nil
}

type simAnalog struct {
	s   *Sim
	pin core.Pin
}

func (a simAnalog) Level() uint16 {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if v, ok := a.s.levels[a.pin]; ok {
		return v
	}
	return 512
}

func (a simAnalog) RefMilliVolts() uint16 {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return a.s.refMV
}

// SimADXL345 is an I2C register model of the accelerometer. Reading
// INT_SOURCE clears the latched activity and inactivity bits.
type SimADXL345 struct {
	mu   sync.Mutex
	regs [64]byte
}

const (
	simRegIntSource = 0x30
	simRegDataX0    = 0x32
)

func NewSimADXL345() *SimADXL345 {
	a := &SimADXL345{}
	a.regs[0] = adxl345.DeviceID
	a.SetAxes(0, 0, 256)
	return a
}

// Detach makes the device stop answering its id, like an unplugged board.
func (a *SimADXL345) Detach() {
	a.mu.Lock()
	a.regs[0] = 0
	a.mu.Unlock()
}

func (a *SimADXL345) SetAxes(x, y, z int16) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, v := range []int16{x, y, z} {
		a.regs[simRegDataX0+2*i] = byte(uint16(v))
		a.regs[simRegDataX0+2*i+1] = byte(uint16(v) >> 8)
	}
}

// Latch sets interrupt source bits as the detectors would.
func (a *SimADXL345) Latch(bits uint8) {
	a.mu.Lock()
	a.regs[simRegIntSource] |= bits
	a.mu.Unlock()
}

// Reg returns the current value of a register.
func (a *SimADXL345) Reg(r uint8) uint8 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.regs[r&0x3F]
}

var errNack = errors.New("sim i2c: nack")

func (a *SimADXL345) Tx(addr uint16, w, r []byte) error {
	if addr != adxl345.Address || len(w) == 0 {
		return errNack
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	reg := int(w[0])
	for i, v := range w[1:] {
		if reg+i < len(a.regs) {
			a.regs[reg+i] = v
		}
	}
	for i := range r {
		if reg+i < len(a.regs) {
			r[i] = a.regs[reg+i]
		}
	}
	if reg == simRegIntSource && len(r) > 0 {
		a.regs[simRegIntSource] &^= adxl345.IntActivity | adxl345.IntInactivity
	}
	return nil
}

func (a *SimADXL345) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return a.Tx(uint16(addr), []byte{r}, buf)
}

func (a *SimADXL345) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return a.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}
