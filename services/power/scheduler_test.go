package power

import (
	"context"
	"errors"
	"testing"
	"time"

	"sensornode-go/errcode"
	"sensornode-go/services/config"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type settings map[config.Key]uint16

func (s settings) Integer(k config.Key) uint16 { return s[k] }

type call struct {
	method string
	ints   []Interrupt
	d      time.Duration
}

type fakeSleeper struct {
	clock *fakeClock
	calls []call
	cause types.WakeCause
	err   error
	// slept advances the clock by this much per sleep.
	slept time.Duration
}

func (f *fakeSleeper) SleepTimer(ctx context.Context, d time.Duration) error {
	f.calls = append(f.calls, call{"timer", nil, d})
	f.clock.Advance(f.slept)
	return f.err
}

func (f *fakeSleeper) SleepInterrupt(ctx context.Context, in Interrupt, d time.Duration) (types.WakeCause, error) {
	f.calls = append(f.calls, call{"interrupt", []Interrupt{in}, d})
	f.clock.Advance(f.slept)
	return f.cause, f.err
}

func (f *fakeSleeper) SleepInterrupts(ctx context.Context, a, b Interrupt, d time.Duration) (types.WakeCause, error) {
	f.calls = append(f.calls, call{"interrupts", []Interrupt{a, b}, d})
	f.clock.Advance(f.slept)
	return f.cause, f.err
}

type fakeLED struct{ history []bool }

func (l *fakeLED) Set(on bool) { l.history = append(l.history, on) }

func newScheduler(cfg settings) (*Scheduler, *fakeClock, *fakeSleeper, *fakeLED) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	sl := &fakeSleeper{clock: clk, cause: types.WakeTimer, slept: 300 * time.Second}
	led := &fakeLED{}
	return New(cfg, clk, sl, led, logx.Discard()), clk, sl, led
}

func TestTimerSleepAfterWakeWindow(t *testing.T) {
	s, clk, sl, led := newScheduler(settings{
		config.KeyPowerWakeDuration:  30,
		config.KeyPowerSleepDuration: 300,
	})
	ctx := context.Background()

	clk.Advance(29999 * time.Millisecond)
	if slept, _ := s.Handle(ctx); slept {
		t.Fatal("slept before the wake window expired")
	}
	clk.Advance(time.Millisecond)
	slept, err := s.Handle(ctx)
	if err != nil || !slept {
		t.Fatalf("slept=%v err=%v", slept, err)
	}
	if len(sl.calls) != 1 || sl.calls[0].method != "timer" || sl.calls[0].d != 300*time.Second {
		t.Fatalf("calls = %+v", sl.calls)
	}
	if s.State() != types.PowerAwake {
		t.Fatal("not awake after sleep")
	}
	if s.AwakeElapsed() != 0 || s.SensorElapsed() != 0 {
		t.Fatal("counters not reset at wake")
	}
	if len(led.history) != 2 || led.history[0] || !led.history[1] {
		t.Fatalf("indicator = %v", led.history)
	}
	if s.TakeUpdateRequest() {
		t.Fatal("timer wake must not request an update")
	}
}

func TestZeroWakeNeverSleeps(t *testing.T) {
	s, clk, sl, _ := newScheduler(settings{
		config.KeyPowerWakeDuration:     0,
		config.KeyPowerSleepDuration:    300,
		config.KeyPowerInterruptOptions: 0x01,
	})
	clk.Advance(24 * time.Hour)
	if slept, _ := s.Handle(context.Background()); slept || len(sl.calls) != 0 {
		t.Fatal("slept with wake duration 0")
	}
}

func TestNoWakeSourceNeverSleeps(t *testing.T) {
	s, clk, sl, _ := newScheduler(settings{config.KeyPowerWakeDuration: 30})
	clk.Advance(time.Hour)
	if slept, _ := s.Handle(context.Background()); slept || len(sl.calls) != 0 {
		t.Fatal("slept without a wake source")
	}
	if err := s.SleepNow(context.Background()); errcode.Of(err) != errcode.NoWakeSource {
		t.Fatalf("SleepNow = %v", err)
	}
}

func TestInterruptOnlySleep(t *testing.T) {
	s, clk, sl, _ := newScheduler(settings{
		config.KeyPowerWakeDuration:     10,
		config.KeyPowerInterruptOptions: 0b0000_0111,
	})
	sl.cause = types.WakeInt0
	clk.Advance(10 * time.Second)
	if _, err := s.Handle(context.Background()); err != nil {
		t.Fatal(err)
	}
	c := sl.calls[0]
	if c.method != "interrupt" || c.d != 0 || c.ints[0] != (Interrupt{0, types.EdgeRising}) {
		t.Fatalf("call = %+v", c)
	}
	if !s.TakeUpdateRequest() {
		t.Fatal("interrupt wake must request an update")
	}
	if s.TakeUpdateRequest() {
		t.Fatal("update request not consumed")
	}
	if s.LastWake != types.WakeInt0 {
		t.Fatalf("LastWake = %s", s.LastWake)
	}
}

func TestBothLinesUseSleepInterrupts(t *testing.T) {
	s, clk, sl, _ := newScheduler(settings{
		config.KeyPowerWakeDuration:     1,
		config.KeyPowerSleepDuration:    60,
		config.KeyPowerInterruptOptions: 0b0101_0011,
	})
	sl.cause = types.WakeInt1
	clk.Advance(time.Second)
	_, _ = s.Handle(context.Background())
	c := sl.calls[0]
	if c.method != "interrupts" || c.d != time.Minute {
		t.Fatalf("call = %+v", c)
	}
	if c.ints[0].Edge != types.EdgeChange || c.ints[1].Edge != types.EdgeFalling {
		t.Fatalf("edges = %+v", c.ints)
	}
}

func TestSleeperErrorStillWakes(t *testing.T) {
	s, clk, sl, led := newScheduler(settings{
		config.KeyPowerWakeDuration:  1,
		config.KeyPowerSleepDuration: 1,
	})
	sl.err = errors.New("brownout")
	clk.Advance(time.Second)
	if _, err := s.Handle(context.Background()); err == nil {
		t.Fatal("error not reported")
	}
	if s.State() != types.PowerAwake || !led.history[len(led.history)-1] {
		t.Fatal("node left asleep after sleeper error")
	}
}

func TestSleepNowIgnoresWakeWindow(t *testing.T) {
	s, _, sl, _ := newScheduler(settings{
		config.KeyPowerWakeDuration:  600,
		config.KeyPowerSleepDuration: 5,
	})
	if err := s.SleepNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(sl.calls) != 1 {
		t.Fatal("SleepNow did not sleep")
	}
}

func TestSensorUpdateInterval(t *testing.T) {
	cfg := settings{config.KeySensorUpdateInterval: 30000}
	s, clk, _, _ := newScheduler(cfg)
	clk.Advance(29 * time.Second)
	if s.SensorUpdateDue() {
		t.Fatal("due too early")
	}
	clk.Advance(time.Second)
	if !s.SensorUpdateDue() {
		t.Fatal("not due after interval")
	}
	s.MarkSensorsUpdated()
	if s.SensorUpdateDue() {
		t.Fatal("due right after update")
	}
	cfg[config.KeySensorUpdateInterval] = 0
	clk.Advance(time.Hour)
	if s.SensorUpdateDue() {
		t.Fatal("interval 0 should disable periodic updates")
	}
}
