//go:build !(rp2040 || rp2350)

package storage

import (
	"io"
	"os"
)

// File is a Block persisted to a host file of fixed size. A missing file is
// created and filled with 0xFF.
type File struct {
	f    *os.File
	size int64
}

func OpenFile(path string, size int64) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.Size() < size {
		pad := make([]byte, size-st.Size())
		for i := range pad {
			pad[i] = 0xFF
		}
		if _, err := f.WriteAt(pad, st.Size()); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &File{f: f, size: size}, nil
}

func (b *File) Size() int64 { return b.size }

func (b *File) ReadAt(p []byte, off int64) (int, error) {
	if off+int64(len(p)) > b.size {
		return 0, io.EOF
	}
	return b.f.ReadAt(p, off)
}

func (b *File) WriteAt(p []byte, off int64) (int, error) {
	if off+int64(len(p)) > b.size {
		return 0, io.ErrShortWrite
	}
	n, err := b.f.WriteAt(p, off)
	if err != nil {
		return n, err
	}
	return n, b.f.Sync()
}

func (b *File) Close() error { return b.f.Close() }
