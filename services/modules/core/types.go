package core

import (
	"context"

	"sensornode-go/types"
	"sensornode-go/x/logx"
)

// Type is the numeric module tag that leads a descriptor. 0 = unoccupied.
type Type uint8

const (
	TypeNone    Type = 0
	TypeDHT11   Type = 1
	TypeHCSR04  Type = 2
	TypeKY038   Type = 3
	TypeLight   Type = 4
	TypeADXL345 Type = 5
	TypeVoltage Type = 6
)

// Sensor is one presented logical sensor of a module.
type Sensor struct {
	Index uint8 // 0..types.SensorsPerModule-1, local to the module
	Kind  types.SensorKind
}

// Emit submits one value for the module-local sensor index.
type Emit func(index uint8, vt types.ValueType, v types.Value)

// Module is a constructed, initialised sensor peripheral.
type Module interface {
	Type() Type
	Sensors() []Sensor
	// Read samples the peripheral and emits values for presented indices.
	Read(ctx context.Context, emit Emit) error
}

// BuilderInput carries the parsed descriptor into a builder.
type BuilderInput struct {
	Slot     int
	Params   Params
	Platform Platform
	Log      *logx.Logger
}

// Builder constructs and initialises a module. A returned error means no
// module exists; builders must not leave a half-configured peripheral
// reachable.
type Builder interface {
	Build(ctx context.Context, in BuilderInput) (Module, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context, in BuilderInput) (Module, error)

func (f BuilderFunc) Build(ctx context.Context, in BuilderInput) (Module, error) { return f(ctx, in) }
