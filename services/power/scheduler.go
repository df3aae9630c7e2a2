// Package power runs the node's AWAKE/ASLEEP state machine. The node stays
// awake for the configured wake window, then sleeps until the sleep timer
// expires or an enabled interrupt line fires. An interrupt wake requests a
// module update.
package power

import (
	"context"
	"sync/atomic"
	"time"

	"sensornode-go/errcode"
	"sensornode-go/services/config"
	"sensornode-go/types"
	"sensornode-go/x/logx"
	"sensornode-go/x/timex"
)

// Settings is the configuration view the scheduler reads on every
// evaluation, so changes made by commands apply immediately.
type Settings interface {
	Integer(k config.Key) uint16
}

type Clock interface {
	Now() time.Time
}

// Sleeper blocks the node in its low-power state. A duration of zero means
// no timer wake source.
type Sleeper interface {
	SleepTimer(ctx context.Context, d time.Duration) error
	SleepInterrupt(ctx context.Context, in Interrupt, d time.Duration) (types.WakeCause, error)
	SleepInterrupts(ctx context.Context, a, b Interrupt, d time.Duration) (types.WakeCause, error)
}

// Indicator is the status LED: on while awake.
type Indicator interface {
	Set(on bool)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

type nopIndicator struct{}

func (nopIndicator) Set(bool) {}

type Scheduler struct {
	cfg     Settings
	clock   Clock
	sleeper Sleeper
	ind     Indicator
	log     *logx.Logger

	state        types.PowerState
	awakeSince   time.Time
	sensorsSince time.Time
	updateReq    atomic.Bool

	Sleeps   uint32
	LastWake types.WakeCause
}

func New(cfg Settings, clock Clock, sleeper Sleeper, ind Indicator, log *logx.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	if ind == nil {
		ind = nopIndicator{}
	}
	now := clock.Now()
	return &Scheduler{
		cfg:          cfg,
		clock:        clock,
		sleeper:      sleeper,
		ind:          ind,
		log:          log.With("pwr"),
		state:        types.PowerAwake,
		awakeSince:   now,
		sensorsSince: now,
		LastWake:     types.WakeTimer,
	}
}

func (s *Scheduler) State() types.PowerState { return s.state }

// AwakeElapsed is the time since the last wake (or boot).
func (s *Scheduler) AwakeElapsed() time.Duration { return s.clock.Now().Sub(s.awakeSince) }

// SensorElapsed is the time since the last sensor update.
func (s *Scheduler) SensorElapsed() time.Duration { return s.clock.Now().Sub(s.sensorsSince) }

func (s *Scheduler) wake() time.Duration  { return timex.Seconds(s.cfg.Integer(config.KeyPowerWakeDuration)) }
func (s *Scheduler) sleep() time.Duration { return timex.Seconds(s.cfg.Integer(config.KeyPowerSleepDuration)) }

func (s *Scheduler) interrupts() []Interrupt {
	return DecodeInterrupts(s.cfg.Integer(config.KeyPowerInterruptOptions))
}

// hasWakeSource reports whether a sleep could ever end.
func (s *Scheduler) hasWakeSource() bool { return s.sleep() > 0 || len(s.interrupts()) > 0 }

// ShouldSleep reports whether Handle would start a sleep now.
func (s *Scheduler) ShouldSleep() bool {
	if s.state != types.PowerAwake {
		return false
	}
	wake := s.wake()
	return wake > 0 && s.hasWakeSource() && s.AwakeElapsed() >= wake
}

// Handle evaluates the state machine and, when the wake window has expired,
// sleeps. It returns once the node is awake again.
func (s *Scheduler) Handle(ctx context.Context) (slept bool, err error) {
	if !s.ShouldSleep() {
		return false, nil
	}
	return true, s.enterSleep(ctx)
}

// SleepNow starts the sleep sequence regardless of the wake window.
func (s *Scheduler) SleepNow(ctx context.Context) error {
	if !s.hasWakeSource() {
		return errcode.New(errcode.NoWakeSource, "power.sleep", "sleep duration and interrupts are zero")
	}
	return s.enterSleep(ctx)
}

func (s *Scheduler) enterSleep(ctx context.Context) error {
	ints := s.interrupts()
	d := s.sleep()

	s.log.Debugf("sleeping for %ds, %d interrupt lines", int(d/time.Second), len(ints))
	s.state = types.PowerAsleep
	s.ind.Set(false)
	s.Sleeps++

	cause := types.WakeTimer
	var err error
	switch len(ints) {
	case 0:
		err = s.sleeper.SleepTimer(ctx, d)
	case 1:
		cause, err = s.sleeper.SleepInterrupt(ctx, ints[0], d)
	default:
		cause, err = s.sleeper.SleepInterrupts(ctx, ints[0], ints[1], d)
	}

	s.ind.Set(true)
	s.state = types.PowerAwake
	now := s.clock.Now()
	s.awakeSince = now
	s.sensorsSince = now
	if err != nil {
		s.log.Errorf("sleep: %v", err)
		return err
	}
	s.LastWake = cause
	if cause.Interrupt() {
		s.RequestUpdate()
	}
	s.log.Debugf("waking, cause=%s", cause)
	return nil
}

// RequestUpdate asks the main cycle for a module update. Safe from
// interrupt context.
func (s *Scheduler) RequestUpdate() { s.updateReq.Store(true) }

// TakeUpdateRequest consumes a pending update request.
func (s *Scheduler) TakeUpdateRequest() bool { return s.updateReq.Swap(false) }

// SensorUpdateDue reports whether the update interval has elapsed. An
// interval of zero disables periodic updates.
func (s *Scheduler) SensorUpdateDue() bool {
	iv := time.Duration(s.cfg.Integer(config.KeySensorUpdateInterval)) * time.Millisecond
	return iv > 0 && s.SensorElapsed() >= iv
}

func (s *Scheduler) MarkSensorsUpdated() { s.sensorsSince = s.clock.Now() }
