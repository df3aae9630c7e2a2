//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"tinygo.org/x/drivers/dht"
	"tinygo.org/x/drivers/hcsr04"

	"sensornode-go/errcode"
	"sensornode-go/services/modules/core"
	"sensornode-go/x/mathx"
)

// RP2 creates peripherals on a Pico / Pico 2. Pins are GP numbers; the
// accelerometer sits on I2C0 at the default pins.
type RP2 struct {
	i2c     *machine.I2C
	adcInit bool
}

func NewRP2() *RP2 { return &RP2{} }

func (p *RP2) HumidityTemperature(pin core.Pin) (core.HumidityTemperature, error) {
	if pin > 28 {
		return nil, errcode.New(errcode.InvalidParams, "rp2.dht", "no such pin")
	}
	return rp2DHT{dht.New(machine.Pin(pin), dht.DHT11)}, nil
}

func (p *RP2) Ranger(trig, echo core.Pin) (core.Ranger, error) {
	if trig > 28 || echo > 28 || trig == echo {
		return nil, errcode.New(errcode.InvalidParams, "rp2.hcsr04", "bad pins")
	}
	d := hcsr04.New(machine.Pin(trig), machine.Pin(echo))
	d.Configure()
	return &rp2Ranger{d: d}, nil
}

// Analog accepts the ADC-capable pins GP26..GP29.
func (p *RP2) Analog(pin core.Pin) (core.AnalogInput, error) {
	if pin < 26 || pin > 29 {
		return nil, errcode.New(errcode.InvalidParams, "rp2.adc", "not an ADC pin")
	}
	if !p.adcInit {
		machine.InitADC()
		p.adcInit = true
	}
	a := machine.ADC{Pin: machine.Pin(pin)}
	a.Configure(machine.ADCConfig{})
	return rp2Analog{a}, nil
}

func (p *RP2) Accelerometer() (core.Accelerometer, error) {
	if p.i2c == nil {
		b := machine.I2C0
		err := b.Configure(machine.I2CConfig{
			Frequency: 400 * machine.KHz,
			SDA:       machine.I2C0_SDA_PIN,
			SCL:       machine.I2C0_SCL_PIN,
		})
		if err != nil {
			return nil, errcode.Wrap(errcode.PeripheralInit, "rp2.i2c0", err)
		}
		p.i2c = b
	}
	return newAccel(p.i2c), nil
}

type rp2DHT struct{ d dht.Device }

func (h rp2DHT) Measure() (int16, uint16, error) {
	if err := h.d.ReadMeasurements(); err != nil {
		return 0, 0, errcode.Wrap(errcode.Checksum, "dht11.read", err)
	}
	return h.d.Measurements()
}

type rp2Ranger struct{ d hcsr04.Device }

func (r *rp2Ranger) DistanceMM() (int32, error) {
	mm := r.d.ReadDistance()
	if mm <= 0 {
		return 0, errcode.New(errcode.Timeout, "hcsr04.read", "no echo")
	}
	return mm, nil
}

type rp2Analog struct{ a machine.ADC }

// Level scales the 16-bit ADC reading to 10 bits.
func (a rp2Analog) Level() uint16 { return mathx.MapU16(a.a.Get(), 0, 0xFFFF, 0, 1023) }

func (rp2Analog) RefMilliVolts() uint16 { return 3300 }
