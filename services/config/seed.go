//go:build !(rp2040 || rp2350)

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"sensornode-go/errcode"
)

// Seed is a host provisioning file. Absent fields keep their defaults.
//
//	debug: true
//	loop_delay: 50
//	modules:
//	  - "1,4"
//	  - "5,10,20,7,3,0,8"
type Seed struct {
	Debug                 *bool    `yaml:"debug"`
	LoopDelay             *uint16  `yaml:"loop_delay"`
	SerialBaudRate        *uint16  `yaml:"serial_baud_rate"`
	SerialInputBufferSize *uint16  `yaml:"serial_input_buffer_size"`
	SensorUpdateInterval  *uint16  `yaml:"sensor_update_interval"`
	PowerWakeDuration     *uint16  `yaml:"power_wake_duration"`
	PowerSleepDuration    *uint16  `yaml:"power_sleep_duration"`
	PowerInterruptOptions *uint16  `yaml:"power_interrupt_options"`
	NodeAddress           *uint16  `yaml:"node_address"`
	Modules               []string `yaml:"modules"`
}

func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, errcode.Wrap(errcode.InvalidParams, "config.seed", err)
	}
	if len(s.Modules) > NumStrings {
		return Seed{}, errcode.New(errcode.InvalidParams, "config.seed", "too many modules")
	}
	return s, nil
}

func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, errcode.Wrap(errcode.Storage, "config.seed", err)
	}
	return ParseSeed(data)
}

// Apply overlays the seed on r. Module strings longer than MaxStringLen are
// truncated like any other string write.
func (s Seed) Apply(r *Record) {
	if s.Debug != nil {
		r.Booleans[KeyDebug-BooleanBase] = *s.Debug
	}
	ints := []struct {
		k Key
		v *uint16
	}{
		{KeyLoopDelay, s.LoopDelay},
		{KeySerialBaudRate, s.SerialBaudRate},
		{KeySerialInputBufferSize, s.SerialInputBufferSize},
		{KeySensorUpdateInterval, s.SensorUpdateInterval},
		{KeyPowerWakeDuration, s.PowerWakeDuration},
		{KeyPowerSleepDuration, s.PowerSleepDuration},
		{KeyPowerInterruptOptions, s.PowerInterruptOptions},
		{KeyNodeAddress, s.NodeAddress},
	}
	for _, e := range ints {
		if e.v != nil {
			r.Integers[e.k-IntegerBase] = *e.v
		}
	}
	for i, m := range s.Modules {
		r.setString(ModuleKey(i), m)
	}
}
