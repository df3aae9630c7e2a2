package power

import (
	"context"
	"sync/atomic"
	"time"

	"sensornode-go/errcode"
	"sensornode-go/types"
	"sensornode-go/x/timex"
)

// IRQPin is a wake line input.
type IRQPin interface {
	Get() bool
	SetIRQ(edge types.Edge, handler func()) error
	ClearIRQ() error
}

// IRQSleeper sleeps by blocking on a timer and the wake lines. Pin
// handlers run in interrupt context and only do a non-blocking send.
type IRQSleeper struct {
	pins  [2]IRQPin
	isrQ  chan types.WakeCause
	timer *time.Timer
	drops uint32

	// OnWake runs after every interrupt wake (e.g. scheduler.RequestUpdate).
	OnWake func()
}

// NewIRQSleeper binds wake lines 0 and 1. A nil pin disables that line.
func NewIRQSleeper(int0, int1 IRQPin) *IRQSleeper {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &IRQSleeper{
		pins:  [2]IRQPin{int0, int1},
		isrQ:  make(chan types.WakeCause, 4),
		timer: t,
	}
}

func (s *IRQSleeper) SleepTimer(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return errcode.New(errcode.NoWakeSource, "power.sleep", "")
	}
	_, err := s.wait(ctx, d)
	return err
}

func (s *IRQSleeper) SleepInterrupt(ctx context.Context, in Interrupt, d time.Duration) (types.WakeCause, error) {
	s.drain()
	cancel, err := s.arm(in)
	if err != nil {
		return types.WakeTimer, err
	}
	defer cancel()
	return s.wait(ctx, d)
}

func (s *IRQSleeper) SleepInterrupts(ctx context.Context, a, b Interrupt, d time.Duration) (types.WakeCause, error) {
	s.drain()
	ca, err := s.arm(a)
	if err != nil {
		return types.WakeTimer, err
	}
	defer ca()
	cb, err := s.arm(b)
	if err != nil {
		return types.WakeTimer, err
	}
	defer cb()
	return s.wait(ctx, d)
}

// arm installs the handler for one line. A level-low line that is already
// low wakes immediately.
func (s *IRQSleeper) arm(in Interrupt) (func(), error) {
	if in.Line > 1 || s.pins[in.Line] == nil {
		return nil, errcode.New(errcode.InvalidParams, "power.irq", "wake line not wired")
	}
	pin := s.pins[in.Line]
	cause := types.WakeCause(in.Line)
	handler := func() {
		select {
		case s.isrQ <- cause:
		default:
			atomic.AddUint32(&s.drops, 1)
		}
	}
	if err := pin.SetIRQ(in.Edge, handler); err != nil {
		return nil, err
	}
	if in.Edge == types.EdgeLow && !pin.Get() {
		handler()
	}
	return func() { _ = pin.ClearIRQ() }, nil
}

func (s *IRQSleeper) wait(ctx context.Context, d time.Duration) (types.WakeCause, error) {
	var tc <-chan time.Time
	if d > 0 {
		timex.ResetTimer(s.timer, d)
		defer s.timer.Stop()
		tc = s.timer.C
	}
	select {
	case <-ctx.Done():
		return types.WakeTimer, ctx.Err()
	case <-tc:
		return types.WakeTimer, nil
	case c := <-s.isrQ:
		if s.OnWake != nil {
			s.OnWake()
		}
		return c, nil
	}
}

// drain discards edges that arrived while awake.
func (s *IRQSleeper) drain() {
	for {
		select {
		case <-s.isrQ:
		default:
			return
		}
	}
}

// ISRDrops counts wake edges lost because the queue was full.
func (s *IRQSleeper) ISRDrops() uint32 { return atomic.LoadUint32(&s.drops) }
