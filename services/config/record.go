package config

import (
	"encoding/binary"

	"sensornode-go/errcode"
	"sensornode-go/x/strconvx"
)

// Version tags the only accepted record layout.
const Version = "v02"

const (
	NumBooleans  = int(IntegerBase - BooleanBase)
	NumIntegers  = int(StringBase - IntegerBase)
	NumStrings   = int(KeyCount - StringBase)
	StringSize   = 16
	MaxStringLen = StringSize - 1

	versionSize = 4
	offBooleans = versionSize
	offIntegers = offBooleans + NumBooleans
	offStrings  = offIntegers + 2*NumIntegers

	// RecordSize is the persisted size in bytes.
	RecordSize = offStrings + NumStrings*StringSize
)

// Record is the in-memory configuration. Strings are NUL terminated.
type Record struct {
	Version  [versionSize]byte
	Booleans [NumBooleans]bool
	Integers [NumIntegers]uint16
	Strings  [NumStrings][StringSize]byte
}

// Defaults returns the compiled-in record.
func Defaults() Record {
	var r Record
	copy(r.Version[:], Version)
	r.Integers[KeyLoopDelay-IntegerBase] = 100
	r.Integers[KeySerialBaudRate-IntegerBase] = 57600
	r.Integers[KeySerialInputBufferSize-IntegerBase] = 64
	r.Integers[KeySensorUpdateInterval-IntegerBase] = 30000
	r.Integers[KeyPowerWakeDuration-IntegerBase] = 30
	r.Integers[KeyPowerSleepDuration-IntegerBase] = 300
	r.Integers[KeyNodeAddress-IntegerBase] = 255
	for i := range r.Strings {
		r.setString(StringBase+Key(i), "0")
	}
	return r
}

func (r *Record) boolean(k Key) bool {
	if Classify(k) != RegionBoolean {
		return false
	}
	return r.Booleans[k-BooleanBase]
}

func (r *Record) integer(k Key) uint16 {
	if Classify(k) != RegionInteger {
		return 0
	}
	return r.Integers[k-IntegerBase]
}

func (r *Record) str(k Key) string {
	if Classify(k) != RegionString {
		return ""
	}
	b := r.Strings[k-StringBase][:]
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b[:MaxStringLen])
}

// setString stores at most MaxStringLen bytes and reports truncation.
func (r *Record) setString(k Key, v string) bool {
	slot := &r.Strings[k-StringBase]
	truncated := len(v) > MaxStringLen
	if truncated {
		v = v[:MaxStringLen]
	}
	*slot = [StringSize]byte{}
	copy(slot[:], v)
	return truncated
}

// text renders the value of k.
func (r *Record) text(k Key) (string, error) {
	switch Classify(k) {
	case RegionBoolean:
		if r.boolean(k) {
			return "1", nil
		}
		return "0", nil
	case RegionInteger:
		return strconvx.FormatUint(uint64(r.integer(k)), 10), nil
	case RegionString:
		return r.str(k), nil
	default:
		return "", errcode.New(errcode.InvalidKey, "config.get", strconvx.Itoa(int(k)))
	}
}

// setText parses v for the region of k and stores it. Nothing is changed on
// error.
func (r *Record) setText(k Key, v string) (truncated bool, err error) {
	switch Classify(k) {
	case RegionBoolean:
		b, err := parseBool(v)
		if err != nil {
			return false, err
		}
		r.Booleans[k-BooleanBase] = b
	case RegionInteger:
		n, err := strconvx.ParseUint(v, 10, 16)
		if err != nil || n > integerMax(k) {
			return false, errcode.New(errcode.InvalidValue, "config.set", v)
		}
		r.Integers[k-IntegerBase] = uint16(n)
	case RegionString:
		truncated = r.setString(k, v)
	default:
		return false, errcode.New(errcode.InvalidKey, "config.set", strconvx.Itoa(int(k)))
	}
	return truncated, nil
}

// integerMax bounds keys whose consumer is narrower than 16 bits.
func integerMax(k Key) uint64 {
	if k == KeyNodeAddress {
		return 255
	}
	return 0xFFFF
}

func parseBool(v string) (bool, error) {
	switch v {
	case "1", "true", "on":
		return true, nil
	case "0", "false", "off":
		return false, nil
	}
	return false, errcode.New(errcode.InvalidValue, "config.set", v)
}

// MarshalBinary encodes the persisted layout:
// version(4) | booleans(8) | integers(16 x uint16 LE) | strings(8 x 16).
func (r *Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, RecordSize)
	copy(b, r.Version[:])
	for i, v := range r.Booleans {
		if v {
			b[offBooleans+i] = 1
		}
	}
	for i, v := range r.Integers {
		binary.LittleEndian.PutUint16(b[offIntegers+2*i:], v)
	}
	for i := range r.Strings {
		copy(b[offStrings+i*StringSize:], r.Strings[i][:])
	}
	return b, nil
}

func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) < RecordSize {
		return errcode.New(errcode.InvalidParams, "config.decode", "short record")
	}
	copy(r.Version[:], b)
	for i := range r.Booleans {
		r.Booleans[i] = b[offBooleans+i] != 0
	}
	for i := range r.Integers {
		r.Integers[i] = binary.LittleEndian.Uint16(b[offIntegers+2*i:])
	}
	for i := range r.Strings {
		copy(r.Strings[i][:], b[offStrings+i*StringSize:])
		// A stored slot without terminator is clipped to the maximum length.
		r.Strings[i][StringSize-1] = 0
	}
	return nil
}

// VersionMatches reports whether tag is the current version tag.
func VersionMatches(tag []byte) bool {
	if len(tag) < versionSize {
		return false
	}
	for i := 0; i < versionSize; i++ {
		var want byte
		if i < len(Version) {
			want = Version[i]
		}
		if tag[i] != want {
			return false
		}
	}
	return true
}
