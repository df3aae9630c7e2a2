package types

// Parity is a small enum so port adapters avoid string parsing.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

// SerialConfig describes a command or gateway port. Zero values select the
// port adapter's defaults.
type SerialConfig struct {
	Name     string
	Baud     uint32
	DataBits uint8
	StopBits uint8
	Parity   Parity
}
