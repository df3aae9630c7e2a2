package config

import (
	"sensornode-go/errcode"
	"sensornode-go/x/strconvx"
)

// Key addresses one slot of the record. Keys are grouped into typed regions:
// booleans 0..7, integers 8..23 and strings 24..31.
type Key uint8

const (
	BooleanBase Key = 0
	IntegerBase Key = 8
	StringBase  Key = 24
	KeyCount    Key = 32
)

const (
	KeyDebug Key = BooleanBase + 0

	KeyLoopDelay             Key = IntegerBase + 0 // ms between main cycles
	KeySerialBaudRate        Key = IntegerBase + 1
	KeySerialInputBufferSize Key = IntegerBase + 2
	KeySensorUpdateInterval  Key = IntegerBase + 3 // ms, 0 disables periodic updates
	KeyPowerWakeDuration     Key = IntegerBase + 4 // s
	KeyPowerSleepDuration    Key = IntegerBase + 5 // s
	KeyPowerInterruptOptions Key = IntegerBase + 6 // bit flags
	KeyNodeAddress           Key = IntegerBase + 7

	KeyModule1 Key = StringBase + 0
	KeyModule8 Key = StringBase + 7
)

// Region is the typed area a key belongs to.
type Region uint8

const (
	RegionNone Region = iota
	RegionBoolean
	RegionInteger
	RegionString
)

func (r Region) String() string {
	switch r {
	case RegionBoolean:
		return "boolean"
	case RegionInteger:
		return "integer"
	case RegionString:
		return "string"
	default:
		return "none"
	}
}

// Classify maps a key to its region. Keys outside every region yield
// RegionNone.
func Classify(k Key) Region {
	switch {
	case k < IntegerBase:
		return RegionBoolean
	case k < StringBase:
		return RegionInteger
	case k < KeyCount:
		return RegionString
	default:
		return RegionNone
	}
}

// ModuleKey returns the descriptor key of slot (0-based).
func ModuleKey(slot int) Key { return KeyModule1 + Key(slot) }

var names = map[Key]string{
	KeyDebug:                 "debug",
	KeyLoopDelay:             "loop_delay",
	KeySerialBaudRate:        "serial_baud_rate",
	KeySerialInputBufferSize: "serial_input_buffer_size",
	KeySensorUpdateInterval:  "sensor_update_interval",
	KeyPowerWakeDuration:     "power_wake_duration",
	KeyPowerSleepDuration:    "power_sleep_duration",
	KeyPowerInterruptOptions: "power_interrupt_options",
	KeyNodeAddress:           "node_address",
}

// Name returns the symbolic name of k. Unnamed keys fall back to their
// region and ordinal, e.g. "int9" or "module3".
func (k Key) Name() string {
	if n, ok := names[k]; ok {
		return n
	}
	switch Classify(k) {
	case RegionBoolean:
		return "bool" + strconvx.Itoa(int(k-BooleanBase))
	case RegionInteger:
		return "int" + strconvx.Itoa(int(k-IntegerBase))
	case RegionString:
		return "module" + strconvx.Itoa(int(k-StringBase)+1)
	default:
		return "key" + strconvx.Itoa(int(k))
	}
}

// ParseKey accepts a decimal key number or a symbolic name.
func ParseKey(s string) (Key, error) {
	if n, err := strconvx.ParseUint(s, 10, 8); err == nil {
		if Key(n) >= KeyCount {
			return 0, errcode.New(errcode.InvalidKey, "config.key", s)
		}
		return Key(n), nil
	}
	for k := Key(0); k < KeyCount; k++ {
		if k.Name() == s {
			return k, nil
		}
	}
	return 0, errcode.New(errcode.InvalidKey, "config.key", s)
}
