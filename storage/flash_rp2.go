//go:build rp2040 || rp2350

package storage

import (
	"io"
	"machine"
)

// Flash adapts the on-chip flash data area to Block. Writes are performed as
// read-modify-erase-write of every touched erase block.
type Flash struct {
	dev  flashDevice
	page []byte
}

type flashDevice interface {
	io.ReaderAt
	io.WriterAt
	Size() int64
	EraseBlockSize() int64
	EraseBlocks(start, length int64) error
}

func NewFlash() *Flash {
	return &Flash{dev: machine.Flash, page: make([]byte, machine.Flash.EraseBlockSize())}
}

func (f *Flash) Size() int64 { return f.dev.Size() }

func (f *Flash) ReadAt(p []byte, off int64) (int, error) { return f.dev.ReadAt(p, off) }

func (f *Flash) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > f.dev.Size() {
		return 0, io.ErrShortWrite
	}
	bs := int64(len(f.page))
	done := 0
	for done < len(p) {
		addr := off + int64(done)
		blk := addr / bs
		base := blk * bs
		if _, err := f.dev.ReadAt(f.page, base); err != nil {
			return done, err
		}
		n := copy(f.page[addr-base:], p[done:])
		if err := f.dev.EraseBlocks(blk, 1); err != nil {
			return done, err
		}
		if _, err := f.dev.WriteAt(f.page, base); err != nil {
			return done, err
		}
		done += n
	}
	return done, nil
}
