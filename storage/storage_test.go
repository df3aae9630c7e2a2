package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"sensornode-go/errcode"
)

func TestPoolAllocatesDisjointRanges(t *testing.T) {
	m := NewMem(1024)
	p, err := NewPool(m, DefaultPoolStart, 0)
	if err != nil {
		t.Fatal(err)
	}
	a, err := p.Alloc(172)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Alloc(10)
	if err != nil {
		t.Fatal(err)
	}
	if a.Addr() != 512 || b.Addr() != 512+172 {
		t.Fatalf("addrs = %d,%d", a.Addr(), b.Addr())
	}
	if p.Free() != 1024-512-182 {
		t.Fatalf("free = %d", p.Free())
	}
	if _, err := p.Alloc(p.Free() + 1); errcode.Of(err) != errcode.PoolExhausted {
		t.Fatalf("want pool_exhausted, got %v", err)
	}
}

func TestNewPoolRejectsOutOfRange(t *testing.T) {
	if _, err := NewPool(NewMem(100), 90, 20); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("got %v", err)
	}
}

func TestRegionBoundsAndRoundTrip(t *testing.T) {
	m := NewMem(64)
	p, _ := NewPool(m, 8, 16)
	r, _ := p.Alloc(8)
	if _, err := r.WriteAt([]byte("abcd"), 2); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 4)
	if _, err := r.ReadAt(got, 2); err != nil {
		t.Fatal(err)
	}
	if string(got) != "abcd" {
		t.Fatalf("got %q", got)
	}
	if !bytes.Equal(m.Bytes()[10:14], []byte("abcd")) {
		t.Fatal("region offset not applied")
	}
	if _, err := r.WriteAt([]byte("123456789"), 0); err == nil {
		t.Fatal("write past region should fail")
	}
}

func TestUpdateWritesOnlyChangedRuns(t *testing.T) {
	m := NewMem(32)
	p, _ := NewPool(m, 0, 32)
	r, _ := p.Alloc(8)
	if _, err := r.WriteAt([]byte("aaaaaaaa"), 0); err != nil {
		t.Fatal(err)
	}
	m.Writes = 0

	n, err := r.Update([]byte("aXXaaaYa"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || m.Writes != 2 {
		t.Fatalf("written=%d writes=%d, want 3 and 2", n, m.Writes)
	}
	n, _ = r.Update([]byte("aXXaaaYa"), 0)
	if n != 0 || m.Writes != 2 {
		t.Fatalf("unchanged update wrote %d bytes", n)
	}
}

func TestFileBlockPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	f, err := OpenFile(path, 256)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteAt([]byte{1, 2, 3}, 100); err != nil {
		t.Fatal(err)
	}
	f.Close()

	f, err = OpenFile(path, 256)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got := make([]byte, 4)
	if _, err := f.ReadAt(got, 100); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 0xFF}) {
		t.Fatalf("got %v", got)
	}
}
