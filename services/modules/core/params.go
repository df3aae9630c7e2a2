package core

import (
	"strings"

	"sensornode-go/errcode"
	"sensornode-go/x/strconvx"
)

// ParseDescriptor splits "type,p1,p2,..." into its tag and parameters. A
// leading token that is not a number yields TypeNone.
func ParseDescriptor(desc string) (Type, Params) {
	toks := strings.Split(strings.TrimSpace(desc), ",")
	n, err := strconvx.ParseUint(strings.TrimSpace(toks[0]), 10, 8)
	if err != nil {
		return TypeNone, Params{}
	}
	return Type(n), Params{toks: toks[1:]}
}

// Params are the positional, non-negative integer parameters of a slot.
type Params struct{ toks []string }

func NewParams(toks ...string) Params { return Params{toks: toks} }

func (p Params) Len() int { return len(p.toks) }

// Uint8 parses the required parameter at i.
func (p Params) Uint8(i int) (uint8, error) {
	if i >= len(p.toks) {
		return 0, errcode.New(errcode.InvalidParams, "modules.param", "missing parameter "+strconvx.Itoa(i+1))
	}
	n, err := strconvx.ParseUint(strings.TrimSpace(p.toks[i]), 10, 8)
	if err != nil {
		return 0, errcode.New(errcode.InvalidParams, "modules.param", "bad parameter "+strconvx.Itoa(i+1)+": "+p.toks[i])
	}
	return uint8(n), nil
}

// OptUint8 parses an optional parameter. Absent or empty yields def.
func (p Params) OptUint8(i int, def uint8) (uint8, error) {
	if i >= len(p.toks) || strings.TrimSpace(p.toks[i]) == "" {
		return def, nil
	}
	return p.Uint8(i)
}

// Pin parses the required pin parameter at i; pin 0 is rejected.
func (p Params) Pin(i int) (Pin, error) {
	n, err := p.Uint8(i)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errcode.New(errcode.InvalidParams, "modules.param", "pin "+strconvx.Itoa(i+1)+" is zero")
	}
	return Pin(n), nil
}
