package adxl345

import (
	"errors"
	"testing"
)

// fakeBus models the register file of one device.
type fakeBus struct {
	regs   [64]byte
	writes []byte // register addresses written, in order
	fail   error
}

func newFakeBus() *fakeBus {
	b := &fakeBus{}
	b.regs[regDevID] = DeviceID
	return b
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if b.fail != nil {
		return b.fail
	}
	if addr != Address {
		return errors.New("nack")
	}
	if len(w) == 0 {
		return errors.New("no register")
	}
	reg := w[0]
	if len(w) > 1 {
		for i, v := range w[1:] {
			b.regs[int(reg)+i] = v
		}
		b.writes = append(b.writes, reg)
	}
	for i := range r {
		r[i] = b.regs[int(reg)+i]
	}
	if reg == regIntSource && len(r) > 0 {
		b.regs[regIntSource] &^= IntActivity | IntInactivity
	}
	return nil
}

func (b *fakeBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{r}, buf)
}

func (b *fakeBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

func TestConfigureRejectsWrongID(t *testing.T) {
	bus := newFakeBus()
	bus.regs[regDevID] = 0x00
	d := New(bus)
	if err := d.Configure(Config{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if len(bus.writes) != 0 {
		t.Fatal("no registers should be written for a missing device")
	}
}

func TestConfigureProgramsDetection(t *testing.T) {
	bus := newFakeBus()
	d := New(bus)
	err := d.Configure(Config{
		ActivityThreshold:   10,
		InactivityThreshold: 20,
		InactivityTime:      7,
		Range:               Range8G,
		LowPower:            true,
		InterruptPin:        2,
	})
	if err != nil {
		t.Fatal(err)
	}
	checks := map[uint8]uint8{
		regThreshAct:   10,
		regThreshInact: 20,
		regTimeInact:   7,
		regActInactCtl: actXYZ | inactXYZ,
		regIntEnable:   IntActivity | IntInactivity,
		regIntMap:      0xFF,
		regDataFormat:  formatFull | uint8(Range8G),
		regBWRate:      bwLowPower | Rate100Hz,
		regPowerCtl:    powerMeasure,
	}
	for reg, want := range checks {
		if got := bus.regs[reg]; got != want {
			t.Errorf("reg %#02x = %#02x, want %#02x", reg, got, want)
		}
	}
	if !d.DetectionEnabled() {
		t.Fatal("detection should be enabled")
	}
}

func TestConfigureWithoutDetection(t *testing.T) {
	bus := newFakeBus()
	d := New(bus)
	if err := d.Configure(Config{}); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regIntEnable] != 0 || bus.regs[regActInactCtl] != 0 {
		t.Fatal("detectors enabled with zero thresholds")
	}
	if d.DetectionEnabled() {
		t.Fatal("DetectionEnabled = true")
	}
	if err := d.Configure(Config{InterruptPin: 3}); !errors.Is(err, ErrPin) {
		t.Fatalf("got %v", err)
	}
}

func TestReadAcceleration(t *testing.T) {
	bus := newFakeBus()
	d := New(bus)
	// x = 256 counts (~1 g), y = -256, z = 0
	copy(bus.regs[regDataX0:], []byte{0x00, 0x01, 0x00, 0xFF, 0x00, 0x00})
	x, y, z, err := d.ReadAcceleration()
	if err != nil {
		t.Fatal(err)
	}
	if x != 998 || y != -998 || z != 0 {
		t.Fatalf("got %d %d %d", x, y, z)
	}
}

func TestInterruptSourceClearsLatch(t *testing.T) {
	bus := newFakeBus()
	d := New(bus)
	bus.regs[regIntSource] = IntActivity | IntDataReady
	src, err := d.InterruptSource()
	if err != nil {
		t.Fatal(err)
	}
	if src&IntActivity == 0 {
		t.Fatal("activity not reported")
	}
	src, _ = d.InterruptSource()
	if src&IntActivity != 0 {
		t.Fatal("activity still latched after read")
	}
}

func TestRangeFromG(t *testing.T) {
	for g, want := range map[uint8]Range{0: Range2G, 2: Range2G, 4: Range4G, 8: Range8G, 16: Range16G} {
		r, ok := RangeFromG(g)
		if !ok || r != want {
			t.Fatalf("RangeFromG(%d) = %d,%v", g, r, ok)
		}
	}
	if _, ok := RangeFromG(3); ok {
		t.Fatal("3 g accepted")
	}
}
