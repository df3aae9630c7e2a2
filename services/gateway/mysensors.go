// Package gateway reports presented sensors and their values to the radio
// gateway. The wire format is the MySensors serial protocol:
//
//	node-id;child-sensor-id;command;ack;type;payload\n
package gateway

import (
	"io"
	"sync"
	"time"

	"sensornode-go/types"
	"sensornode-go/x/strconvx"
)

// Message commands.
const (
	CmdPresentation uint8 = 0
	CmdSet          uint8 = 1
	CmdReq          uint8 = 2
	CmdInternal     uint8 = 3
)

// Internal message types used by the node.
const (
	InternalBatteryLevel  uint8 = 0
	InternalSketchName    uint8 = 11
	InternalSketchVersion uint8 = 12
)

// ChildNode addresses the node itself rather than one of its sensors.
const ChildNode uint8 = 255

// Gateway is the radio link capability.
type Gateway interface {
	Present(child uint8, kind types.SensorKind, ack bool) error
	Send(child uint8, vt types.ValueType, v types.Value, ack bool) error
	// Wait blocks for d while the link keeps servicing traffic.
	Wait(d time.Duration)
}

// Serial writes protocol lines to w, typically a UART attached to a
// serial gateway.
type Serial struct {
	mu    sync.Mutex
	w     io.Writer
	node  uint8
	sleep func(time.Duration)
	buf   []byte
}

// NewSerial returns a Serial gateway. sleep defaults to time.Sleep.
func NewSerial(w io.Writer, node uint8, sleep func(time.Duration)) *Serial {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Serial{w: w, node: node, sleep: sleep, buf: make([]byte, 0, 64)}
}

func (s *Serial) SetNodeID(id uint8) {
	s.mu.Lock()
	s.node = id
	s.mu.Unlock()
}

func (s *Serial) NodeID() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.node
}

// PresentNode announces the node, its sketch name and version.
func (s *Serial) PresentNode(name, version string) error {
	if err := s.write(ChildNode, CmdPresentation, false, uint8(types.KindNode), "2.3.2"); err != nil {
		return err
	}
	if err := s.write(ChildNode, CmdInternal, false, InternalSketchName, name); err != nil {
		return err
	}
	return s.write(ChildNode, CmdInternal, false, InternalSketchVersion, version)
}

func (s *Serial) Present(child uint8, kind types.SensorKind, ack bool) error {
	return s.write(child, CmdPresentation, ack, uint8(kind), "")
}

func (s *Serial) Send(child uint8, vt types.ValueType, v types.Value, ack bool) error {
	return s.write(child, CmdSet, ack, uint8(vt), FormatValue(v))
}

// Internal sends an internal message, e.g. the battery level.
func (s *Serial) Internal(typ uint8, payload string) error {
	return s.write(ChildNode, CmdInternal, false, typ, payload)
}

func (s *Serial) Wait(d time.Duration) {
	if d > 0 {
		s.sleep(d)
	}
}

func (s *Serial) write(child, cmd uint8, ack bool, typ uint8, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.buf[:0]
	b = strconvx.AppendUint(b, uint64(s.node), 10)
	b = append(b, ';')
	b = strconvx.AppendUint(b, uint64(child), 10)
	b = append(b, ';')
	b = strconvx.AppendUint(b, uint64(cmd), 10)
	b = append(b, ';')
	if ack {
		b = append(b, '1')
	} else {
		b = append(b, '0')
	}
	b = append(b, ';')
	b = strconvx.AppendUint(b, uint64(typ), 10)
	b = append(b, ';')
	b = append(b, payload...)
	b = append(b, '\n')
	s.buf = b
	_, err := s.w.Write(b)
	return err
}

// FormatValue renders a value payload.
func FormatValue(v types.Value) string {
	if v.IsFloat {
		return strconvx.FormatFloat(float64(v.Float), 'f', int(v.Precision), 32)
	}
	return strconvx.Itoa(int(v.Int))
}
