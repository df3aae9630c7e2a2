package storage

import "io"

// Mem is a RAM-backed Block. Fresh memory reads as 0xFF, like erased
// EEPROM or flash.
type Mem struct {
	buf    []byte
	Writes int // number of WriteAt calls, for wear accounting
}

func NewMem(size int) *Mem {
	b := make([]byte, size)
	for i := range b {
		b[i] = 0xFF
	}
	return &Mem{buf: b}
}

func (m *Mem) Size() int64 { return int64(len(m.buf)) }

func (m *Mem) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Mem) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return 0, io.ErrShortWrite
	}
	m.Writes++
	return copy(m.buf[off:], p), nil
}

// Bytes exposes the backing store.
func (m *Mem) Bytes() []byte { return m.buf }
