package power

import "sensornode-go/types"

// Interrupt is one enabled external wake line.
type Interrupt struct {
	Line uint8 // 0 or 1
	Edge types.Edge
}

// Layout of power_interrupt_options: line 0 in bits 0..2, line 1 in bits
// 4..6. Within a field bit 0 enables the line and bits 1..2 select the
// edge (00 low, 01 change, 10 falling, 11 rising).
const (
	fieldEnable = 0x1
	fieldWidth  = 4
)

func decodeField(v uint16) (types.Edge, bool) {
	return types.Edge((v >> 1) & 0x3), v&fieldEnable != 0
}

// DecodeInterrupts returns the enabled lines in line order.
func DecodeInterrupts(opts uint16) []Interrupt {
	var out []Interrupt
	for line := uint8(0); line < 2; line++ {
		if e, ok := decodeField(opts >> (fieldWidth * line)); ok {
			out = append(out, Interrupt{Line: line, Edge: e})
		}
	}
	return out
}

// EncodeInterrupts builds an options value from enabled lines.
func EncodeInterrupts(ints ...Interrupt) uint16 {
	var v uint16
	for _, in := range ints {
		v |= (uint16(in.Edge)<<1 | fieldEnable) << (fieldWidth * uint16(in.Line&1))
	}
	return v
}
