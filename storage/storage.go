// Package storage provides the byte-addressable persistence used by the
// configuration store: a Block abstraction, a fixed Pool carved out of it by
// a bump allocator, and adapters for RAM, a host file and RP2 on-chip flash.
package storage

import (
	"io"

	"sensornode-go/errcode"
)

// Block is a byte-addressable persistent medium.
type Block interface {
	io.ReaderAt
	io.WriterAt
	Size() int64
}

// DefaultPoolStart leaves the low addresses free for boot-time data.
const DefaultPoolStart = 512

// Pool hands out non-overlapping address ranges from [start, start+size).
type Pool struct {
	blk   Block
	start int64
	end   int64
	next  int64
}

// NewPool claims [start, start+size) of blk. size <= 0 extends the pool to
// the end of the block.
func NewPool(blk Block, start, size int64) (*Pool, error) {
	if blk == nil || start < 0 {
		return nil, errcode.New(errcode.InvalidParams, "storage.pool", "bad block or start")
	}
	if size <= 0 {
		size = blk.Size() - start
	}
	if size <= 0 || start+size > blk.Size() {
		return nil, errcode.New(errcode.InvalidParams, "storage.pool", "range outside block")
	}
	return &Pool{blk: blk, start: start, end: start + size, next: start}, nil
}

// Alloc reserves n bytes and returns a Region addressing them.
func (p *Pool) Alloc(n int64) (*Region, error) {
	if n <= 0 {
		return nil, errcode.New(errcode.InvalidParams, "storage.alloc", "size must be positive")
	}
	if p.next+n > p.end {
		return nil, errcode.New(errcode.PoolExhausted, "storage.alloc", "")
	}
	r := &Region{blk: p.blk, off: p.next, n: n}
	p.next += n
	return r, nil
}

// Free reports how many bytes remain unallocated.
func (p *Pool) Free() int64 { return p.end - p.next }

// Start returns the first address of the pool.
func (p *Pool) Start() int64 { return p.start }

// Region is an allocated window of a Block. Offsets are region relative.
type Region struct {
	blk Block
	off int64
	n   int64
}

func (r *Region) Addr() int64 { return r.off }
func (r *Region) Len() int64  { return r.n }

func (r *Region) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > r.n {
		return 0, errcode.New(errcode.InvalidParams, "storage.read", "outside region")
	}
	n, err := r.blk.ReadAt(p, r.off+off)
	if err != nil {
		return n, errcode.Wrap(errcode.Storage, "storage.read", err)
	}
	if n != len(p) {
		return n, errcode.Wrap(errcode.Storage, "storage.read", io.ErrUnexpectedEOF)
	}
	return n, nil
}

func (r *Region) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > r.n {
		return 0, errcode.New(errcode.InvalidParams, "storage.write", "outside region")
	}
	n, err := r.blk.WriteAt(p, r.off+off)
	if err != nil {
		return n, errcode.Wrap(errcode.Storage, "storage.write", err)
	}
	return n, nil
}

// Update writes only the bytes of p that differ from what is stored at off,
// coalescing adjacent changes into single writes. It returns the number of
// bytes actually written.
func (r *Region) Update(p []byte, off int64) (int, error) {
	cur := make([]byte, len(p))
	if _, err := r.ReadAt(cur, off); err != nil {
		return 0, err
	}
	written := 0
	for i := 0; i < len(p); {
		if cur[i] == p[i] {
			i++
			continue
		}
		j := i + 1
		for j < len(p) && cur[j] != p[j] {
			j++
		}
		n, err := r.WriteAt(p[i:j], off+int64(i))
		written += n
		if err != nil {
			return written, err
		}
		i = j
	}
	return written, nil
}
