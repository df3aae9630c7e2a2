package core

// Pin is a board GPIO number.
type Pin uint8

// HumidityTemperature is a single-wire humidity/temperature sensor.
type HumidityTemperature interface {
	// Measure returns tenths of a degree Celsius and tenths of %RH.
	Measure() (deciC int16, deciRH uint16, err error)
}

// Ranger is an ultrasonic distance sensor.
type Ranger interface {
	// DistanceMM returns the echo distance in millimetres.
	DistanceMM() (int32, error)
}

// AnalogInput samples a pin at 10-bit resolution.
type AnalogInput interface {
	Level() uint16
	// RefMilliVolts is the voltage corresponding to full scale.
	RefMilliVolts() uint16
}

// Accelerometer is a 3-axis accelerometer with motion detection.
type Accelerometer interface {
	Configure(cfg AccelConfig) error
	// Acceleration returns milli-g per axis.
	Acceleration() (x, y, z int32, err error)
	// Activity reads and clears the latched activity/inactivity flags.
	Activity() (activity, inactivity bool, err error)
}

// AccelConfig mirrors the descriptor parameters of an accelerometer slot.
type AccelConfig struct {
	ActivityThreshold   uint8
	InactivityThreshold uint8
	InactivityTime      uint8
	LowPower            bool
	InterruptPin        uint8
	RangeG              uint8
}

// Platform creates peripherals for builders. Host builds supply simulated
// hardware; RP2 builds bind machine pins and tinygo drivers.
type Platform interface {
	HumidityTemperature(pin Pin) (HumidityTemperature, error)
	Ranger(trig, echo Pin) (Ranger, error)
	Analog(pin Pin) (AnalogInput, error)
	Accelerometer() (Accelerometer, error)
}
