// Package types holds the reporting vocabulary shared by the module registry,
// the gateway encoders and the node runtime. Numeric values follow the
// MySensors serial protocol so a stock gateway can consume them unchanged.
package types

// SensorKind is announced once per logical sensor when it is presented.
type SensorKind uint8

const (
	KindMotion      SensorKind = 1
	KindTemperature SensorKind = 6
	KindHumidity    SensorKind = 7
	KindDistance    SensorKind = 15
	KindLightLevel  SensorKind = 16
	KindNode        SensorKind = 17
	KindCustom      SensorKind = 23
	KindMultimeter  SensorKind = 30

	// Node specific kinds outside the protocol's range.
	KindAccelerometer SensorKind = 128
)

func (k SensorKind) String() string {
	switch k {
	case KindMotion:
		return "motion"
	case KindTemperature:
		return "temperature"
	case KindHumidity:
		return "humidity"
	case KindDistance:
		return "distance"
	case KindLightLevel:
		return "light_level"
	case KindNode:
		return "node"
	case KindCustom:
		return "custom"
	case KindMultimeter:
		return "multimeter"
	case KindAccelerometer:
		return "accelerometer"
	default:
		return "unknown"
	}
}

// ValueType tags each submitted value.
type ValueType uint8

const (
	ValueTemperature ValueType = 0
	ValueHumidity    ValueType = 1
	ValueDistance    ValueType = 13
	ValueTripped     ValueType = 16
	ValueLightLevel  ValueType = 23
	ValueVar1        ValueType = 24
	ValueVoltage     ValueType = 38

	ValueAvailableMemory ValueType = 128
	ValueAccelerationX   ValueType = 129
	ValueAccelerationY   ValueType = 130
	ValueAccelerationZ   ValueType = 131
)

func (v ValueType) String() string {
	switch v {
	case ValueTemperature:
		return "temp"
	case ValueHumidity:
		return "hum"
	case ValueDistance:
		return "distance"
	case ValueTripped:
		return "tripped"
	case ValueLightLevel:
		return "light_level"
	case ValueVar1:
		return "var1"
	case ValueVoltage:
		return "voltage"
	case ValueAvailableMemory:
		return "available_memory"
	case ValueAccelerationX:
		return "accel_x"
	case ValueAccelerationY:
		return "accel_y"
	case ValueAccelerationZ:
		return "accel_z"
	default:
		return "unknown"
	}
}

// Value is a submitted reading. Exactly one representation is used: Int for
// integral readings, Float with Precision decimals otherwise.
type Value struct {
	Int       int32
	Float     float32
	Precision uint8
	IsFloat   bool
}

func IntValue(v int32) Value { return Value{Int: v} }

func FloatValue(v float32, precision uint8) Value {
	return Value{Float: v, Precision: precision, IsFloat: true}
}

func BoolValue(b bool) Value {
	if b {
		return Value{Int: 1}
	}
	return Value{}
}

// SensorsPerModule bounds the logical sensors one module slot may present.
const SensorsPerModule = 5

// SensorIndex is the node-wide child id of sensor idx in slot.
func SensorIndex(slot, idx int) uint8 { return uint8(slot*SensorsPerModule + idx) }
