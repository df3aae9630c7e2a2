package strconvx

import "testing"

func TestItoaAtoi(t *testing.T) {
	cases := []int{0, 1, -1, 42, -99999}
	for _, v := range cases {
		s := Itoa(v)
		got, err := Atoi(s)
		if err != nil {
			t.Fatalf("Atoi(%q) error: %v", s, err)
		}
		if got != v {
			t.Fatalf("Itoa/Atoi round trip: want %d, got %d", v, got)
		}
	}
}

func TestFormatIntUintBases(t *testing.T) {
	type C struct {
		u    uint64
		base int
		want string
	}
	for _, c := range []C{
		{0, 2, "0"},
		{5, 2, "101"},
		{255, 16, "ff"},
		{255, 10, "255"},
		{35, 36, "z"},
	} {
		if got := FormatUint(c.u, c.base); got != c.want {
			t.Fatalf("FormatUint(%d,%d) = %q, want %q", c.u, c.base, got, c.want)
		}
	}
	if got := FormatInt(-15, 10); got != "-15" {
		t.Fatalf("FormatInt(-15,10) = %q, want -15", got)
	}
}

func TestParseUintDecimalWithBitSize(t *testing.T) {
	type C struct {
		s       string
		bitSize int
		want    uint64
		wantErr bool
	}
	for _, c := range []C{
		{"0", 8, 0, false},
		{"255", 8, 255, false},
		{"256", 8, 0, true},
		{"65535", 16, 65535, false},
		{"65536", 16, 0, true},
		{"", 16, 0, true},
		{"12a", 16, 0, true},
		{"-1", 16, 0, true},
		{" 1", 16, 0, true},
	} {
		got, err := ParseUint(c.s, 10, c.bitSize)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseUint(%q,10,%d) expected error", c.s, c.bitSize)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseUint(%q,10,%d) error: %v", c.s, c.bitSize, err)
		}
		if got != c.want {
			t.Fatalf("ParseUint(%q,10,%d) = %d, want %d", c.s, c.bitSize, got, c.want)
		}
	}
}

func TestParseUintHexAndBinary(t *testing.T) {
	for s, want := range map[string]uint64{"0xff": 255, "0b101": 5, "0o77": 63} {
		got, err := ParseUint(s, 0, 64)
		if err != nil {
			t.Fatalf("ParseUint(%q,0) error: %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseUint(%q,0) = %d, want %d", s, got, want)
		}
	}
}

func TestParseIntSigns(t *testing.T) {
	for s, want := range map[string]int64{"+10": 10, "-10": -10, "0": 0} {
		got, err := ParseInt(s, 10, 64)
		if err != nil {
			t.Fatalf("ParseInt(%q) error: %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseInt(%q) = %d, want %d", s, got, want)
		}
	}
	if _, err := ParseInt("18446744073709551615", 10, 64); err == nil {
		t.Fatalf("ParseInt(too big) expected error")
	}
}

func TestAppendUint(t *testing.T) {
	b := AppendUint([]byte("n="), 255, 10)
	if string(b) != "n=255" {
		t.Fatalf("got %q", b)
	}
}
