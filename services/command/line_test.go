package command

import (
	"reflect"
	"testing"
)

func TestLineBufferTerminators(t *testing.T) {
	lb := NewLineBuffer(32)
	var lines []string
	lb.Write([]byte("get 8\r\nset 8 250\n\n\rstats\r"), func(l string) { lines = append(lines, l) })
	want := []string{"get 8", "set 8 250", "stats"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestLineBufferDropsOverflow(t *testing.T) {
	lb := NewLineBuffer(4)
	var lines []string
	lb.Write([]byte("abcdefg\nxy\n"), func(l string) { lines = append(lines, l) })
	want := []string{"abcd", "xy"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	if lb.Dropped != 3 {
		t.Fatalf("dropped = %d", lb.Dropped)
	}
}

func TestSplit(t *testing.T) {
	cases := []struct{ in, key, args string }{
		{"stats", "stats", ""},
		{"set 24 5,10,20,7,3,0,8", "set", "24 5,10,20,7,3,0,8"},
		{"  get\t 8  ", "get", "8  "},
		{"", "", ""},
	}
	for _, c := range cases {
		k, a := Split(c.in)
		if k != c.key || a != c.args {
			t.Errorf("Split(%q) = %q,%q want %q,%q", c.in, k, a, c.key, c.args)
		}
	}
}

func TestArgsQuoting(t *testing.T) {
	toks, err := Args(`module1 "1,4" extra`)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(toks, []string{"module1", "1,4", "extra"}) {
		t.Fatalf("got %q", toks)
	}
	if _, err := ArgsN("8", 2); err == nil {
		t.Fatal("ArgsN should enforce count")
	}
	if _, err := Args(`"unterminated`); err == nil {
		t.Fatal("unterminated quote accepted")
	}
}
