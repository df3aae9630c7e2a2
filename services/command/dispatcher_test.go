package command

import (
	"errors"
	"testing"

	"sensornode-go/errcode"
)

func TestUnknownKeyHasNoSideEffects(t *testing.T) {
	d := New()
	calls := 0
	d.MustRegister("cfg_save", func(string) error { calls++; return nil })

	handled, err := d.Handle("cfg_sav", "")
	if handled || err != nil {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	if calls != 0 {
		t.Fatal("handler invoked for unknown key")
	}
}

func TestHandlePassesArgsAndError(t *testing.T) {
	d := New()
	boom := errors.New("boom")
	var got string
	d.MustRegister("set", func(a string) error { got = a; return boom })

	handled, err := d.Handle("set", "8 250")
	if !handled || !errors.Is(err, boom) {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	if got != "8 250" {
		t.Fatalf("args = %q", got)
	}
}

func TestFirstRegistrationWins(t *testing.T) {
	d := New()
	var which string
	d.MustRegister("x", func(string) error { which = "first"; return nil })
	d.MustRegister("x", func(string) error { which = "second"; return nil })
	_, _ = d.Handle("x", "")
	if which != "first" {
		t.Fatalf("got %q", which)
	}
}

func TestLookupIndependentOfOrder(t *testing.T) {
	keys := []string{"a", "b", "c", "d"}
	for rot := range keys {
		d := New()
		hits := map[string]int{}
		for i := range keys {
			k := keys[(i+rot)%len(keys)]
			d.MustRegister(k, func(string) error { hits[k]++; return nil })
		}
		for _, k := range keys {
			if ok, _ := d.Handle(k, ""); !ok {
				t.Fatalf("rotation %d: %q not handled", rot, k)
			}
		}
		for _, k := range keys {
			if hits[k] != 1 {
				t.Fatalf("rotation %d: %q hit %d times", rot, k, hits[k])
			}
		}
	}
}

func TestOverflowRejected(t *testing.T) {
	d := New()
	for i := 0; i < Capacity; i++ {
		if err := d.Register(string(rune('a'+i)), func(string) error { return nil }); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}
	err := d.Register("extra", func(string) error { return nil })
	if errcode.Of(err) != errcode.TableFull {
		t.Fatalf("got %v, want table_full", err)
	}
	if d.Len() != Capacity {
		t.Fatalf("Len = %d", d.Len())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister should panic on a full table")
		}
	}()
	d.MustRegister("extra", func(string) error { return nil })
}

func TestRegisterRejectsBadKeys(t *testing.T) {
	d := New()
	for _, k := range []string{"", "0123456789abcdef"} {
		if err := d.Register(k, func(string) error { return nil }); errcode.Of(err) != errcode.InvalidKey {
			t.Fatalf("key %q: %v", k, err)
		}
	}
	if err := d.Register("ok", nil); err == nil {
		t.Fatal("nil handler accepted")
	}
}
