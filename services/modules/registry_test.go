package modules_test

import (
	"context"
	"errors"
	"testing"

	"sensornode-go/drivers/adxl345"
	"sensornode-go/errcode"
	"sensornode-go/services/modules"
	_ "sensornode-go/services/modules/devices/all"
	voltagedev "sensornode-go/services/modules/devices/voltage"
	"sensornode-go/services/modules/platform"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

type present struct {
	slot, idx int
	kind      types.SensorKind
}

type submit struct {
	slot, idx int
	vt        types.ValueType
	v         types.Value
}

type recorder struct {
	presents []present
	submits  []submit
}

func (r *recorder) Present(slot, idx int, kind types.SensorKind) error {
	r.presents = append(r.presents, present{slot, idx, kind})
	return nil
}

func (r *recorder) Submit(slot, idx int, vt types.ValueType, v types.Value) error {
	r.submits = append(r.submits, submit{slot, idx, vt, v})
	return nil
}

func (r *recorder) value(t *testing.T, vt types.ValueType) types.Value {
	t.Helper()
	for _, s := range r.submits {
		if s.vt == vt {
			return s.v
		}
	}
	t.Fatalf("no %s submitted", vt)
	return types.Value{}
}

func newRegistry() (*modules.Registry, *platform.Sim, *recorder) {
	sim := platform.NewSim()
	rec := &recorder{}
	return modules.New(sim, rec, logx.Discard()), sim, rec
}

func TestAccelerometerWithDetectionPresentsTwoSensors(t *testing.T) {
	reg, sim, rec := newRegistry()
	ok, err := reg.Register(context.Background(), "5,10,20,7,3,0,8")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	want := []present{{0, 0, types.KindAccelerometer}, {0, 1, types.KindMotion}}
	if len(rec.presents) != 2 || rec.presents[0] != want[0] || rec.presents[1] != want[1] {
		t.Fatalf("presents = %+v", rec.presents)
	}
	if sim.Accel.Reg(0x24) != 10 || sim.Accel.Reg(0x25) != 20 || sim.Accel.Reg(0x26) != 7 {
		t.Fatal("thresholds not programmed")
	}
	if sim.Accel.Reg(0x31)&0x03 != 2 {
		t.Fatalf("range bits = %#x, want 8 g", sim.Accel.Reg(0x31))
	}
}

func TestAccelerometerWithoutDetectionPresentsOne(t *testing.T) {
	reg, _, rec := newRegistry()
	if ok, err := reg.Register(context.Background(), "5,0,0,0"); !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if len(rec.presents) != 1 || rec.presents[0].kind != types.KindAccelerometer {
		t.Fatalf("presents = %+v", rec.presents)
	}
	reg.Update(context.Background())
	for _, s := range rec.submits {
		if s.vt == types.ValueTripped {
			t.Fatal("tripped submitted without detection")
		}
	}
}

func TestAccelerometerInitFailureFailsSlot(t *testing.T) {
	reg, sim, rec := newRegistry()
	sim.Accel.Detach()
	ok, err := reg.Register(context.Background(), "5,10,20,7")
	if ok || errcode.Of(err) != errcode.PeripheralInit {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if reg.Len() != 0 || len(rec.presents) != 0 {
		t.Fatal("failed init left state behind")
	}
}

func TestZeroPinAbortsConstruction(t *testing.T) {
	reg, _, rec := newRegistry()
	ok, err := reg.Register(context.Background(), "2,0,6")
	if ok || errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if reg.Len() != 0 || len(rec.presents) != 0 {
		t.Fatal("slot occupied after failure")
	}
	if n := reg.Update(context.Background()); n != 0 || len(rec.submits) != 0 {
		t.Fatalf("update submitted %d values", n)
	}
}

func TestMalformedParametersAbort(t *testing.T) {
	for _, d := range []string{"1", "1,x", "2,5", "5,10,20", "5,10,20,7,0,0,3", "6,26,-1"} {
		reg, _, rec := newRegistry()
		if ok, _ := reg.Register(context.Background(), d); ok {
			t.Fatalf("%q registered", d)
		}
		if len(rec.presents) != 0 {
			t.Fatalf("%q presented sensors", d)
		}
	}
}

func TestUnoccupiedAndUnknownAreNoOps(t *testing.T) {
	reg, _, rec := newRegistry()
	for _, d := range []string{"0", "", "99,1", "abc"} {
		ok, err := reg.Register(context.Background(), d)
		if ok || err != nil {
			t.Fatalf("%q: ok=%v err=%v", d, ok, err)
		}
	}
	if reg.Len() != 0 || len(rec.presents) != 0 {
		t.Fatal("no-op descriptors changed state")
	}
}

func TestSlotsAreCompacted(t *testing.T) {
	reg, _, rec := newRegistry()
	ctx := context.Background()
	for _, d := range []string{"0", "1,4", "0", "3,26"} {
		_, _ = reg.Register(ctx, d)
	}
	slots := reg.Slots()
	if len(slots) != 2 || slots[0].Descriptor != "1,4" || slots[1].Descriptor != "3,26" {
		t.Fatalf("slots = %+v", slots)
	}
	last := rec.presents[len(rec.presents)-1]
	if last.slot != 1 || last.kind != types.KindCustom {
		t.Fatalf("last present = %+v", last)
	}
}

func TestRegistryFull(t *testing.T) {
	reg, _, _ := newRegistry()
	ctx := context.Background()
	for i := 0; i < modules.Capacity; i++ {
		if ok, err := reg.Register(ctx, "3,26"); !ok || err != nil {
			t.Fatalf("slot %d: %v", i, err)
		}
	}
	_, err := reg.Register(ctx, "3,26")
	if errcode.Of(err) != errcode.RegistryFull {
		t.Fatalf("got %v", err)
	}
}

func TestSubmittedIndicesMatchPresented(t *testing.T) {
	voltagedev.SampleGap = 0
	reg, _, rec := newRegistry()
	ctx := context.Background()
	for _, d := range []string{"1,4", "2,5,6", "3,26", "4,27", "5,10,20,7", "6,28,4,50"} {
		if ok, err := reg.Register(ctx, d); !ok || err != nil {
			t.Fatalf("%q: ok=%v err=%v", d, ok, err)
		}
	}
	reg.Update(ctx)

	presented := map[[2]int]bool{}
	for _, p := range rec.presents {
		presented[[2]int{p.slot, p.idx}] = true
	}
	seen := map[[2]int]bool{}
	for _, s := range rec.submits {
		k := [2]int{s.slot, s.idx}
		if !presented[k] {
			t.Fatalf("submit for unpresented %v", k)
		}
		seen[k] = true
	}
	for k := range presented {
		if !seen[k] {
			t.Fatalf("presented %v never submitted", k)
		}
	}
}

func TestConversions(t *testing.T) {
	voltagedev.SampleGap = 0
	reg, sim, rec := newRegistry()
	ctx := context.Background()
	sim.SetLevel(27, 1000)
	sim.SetLevel(28, 512)
	sim.SetDistanceMM(1234)
	for _, d := range []string{"4,27", "2,5,6", "6,28,4,50", "1,4"} {
		if ok, err := reg.Register(ctx, d); !ok {
			t.Fatalf("%q: %v", d, err)
		}
	}
	reg.Update(ctx)

	if v := rec.value(t, types.ValueLightLevel); v.Int != 23 {
		t.Errorf("light = %d, want 23", v.Int)
	}
	if v := rec.value(t, types.ValueDistance); v.Int != 123 {
		t.Errorf("distance = %d, want 123", v.Int)
	}
	// 512/1024 of 3.3 V through a 0.5 divider coefficient.
	if v := rec.value(t, types.ValueVoltage); v.Int != 3300 {
		t.Errorf("voltage = %d mV, want 3300", v.Int)
	}
	if v := rec.value(t, types.ValueTemperature); !v.IsFloat || v.Float != 21.5 {
		t.Errorf("temperature = %+v", v)
	}
	if v := rec.value(t, types.ValueHumidity); v.Float != 45 {
		t.Errorf("humidity = %+v", v)
	}
}

func TestReadFailureSkipsOnlyThatModule(t *testing.T) {
	reg, sim, rec := newRegistry()
	ctx := context.Background()
	_, _ = reg.Register(ctx, "1,4")
	_, _ = reg.Register(ctx, "3,26")
	sim.SetHumidityTemperature(0, 0, errors.New("checksum"))

	reg.Update(ctx)
	if len(rec.submits) != 1 || rec.submits[0].slot != 1 {
		t.Fatalf("submits = %+v", rec.submits)
	}
}

func TestMotionTripped(t *testing.T) {
	cases := []struct {
		name  string
		latch uint8
		want  int32
	}{
		{"quiet", 0, 1},
		{"activity", adxl345.IntActivity, 1},
		{"inactive", adxl345.IntInactivity, 0},
		{"both latched then cleared", adxl345.IntActivity | adxl345.IntInactivity, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reg, sim, rec := newRegistry()
			ctx := context.Background()
			if ok, err := reg.Register(ctx, "5,10,20,7"); !ok {
				t.Fatal(err)
			}
			sim.Accel.Latch(c.latch)
			reg.Update(ctx)
			if v := rec.value(t, types.ValueTripped); v.Int != c.want {
				t.Fatalf("tripped = %d, want %d", v.Int, c.want)
			}
			if v := rec.value(t, types.ValueAccelerationZ); v.Float < 9.7 || v.Float > 9.9 {
				t.Fatalf("z = %v m/s^2", v.Float)
			}
		})
	}
}
