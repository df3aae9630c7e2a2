package node

import (
	"context"
	"time"

	"sensornode-go/errcode"
	"sensornode-go/services/command"
	"sensornode-go/services/config"
	"sensornode-go/x/timex"
)

// Step runs one cooperative cycle without the loop delay: drain command
// input, update modules when due or requested, then evaluate the power
// state (which may block for a whole sleep).
func (n *Node) Step(ctx context.Context) error {
	if n.in != nil {
		n.in.Drain(func(b []byte) { n.lines.Write(b, n.Exec) })
	}

	if n.sched.TakeUpdateRequest() || n.sched.SensorUpdateDue() {
		n.Update(ctx)
	}

	if n.sleepReq {
		n.sleepReq = false
		if err := n.sched.SleepNow(ctx); err != nil {
			n.log.Errorf("sleep: %v", err)
		}
	} else if _, err := n.sched.Handle(ctx); err != nil {
		n.log.Debugf("power: %v", err)
	}
	return ctx.Err()
}

// Update reads every module once and restarts the update interval.
func (n *Node) Update(ctx context.Context) int {
	sent := n.reg.Update(ctx)
	n.sched.MarkSensorsUpdated()
	n.Updates++
	return sent
}

// Exec runs one command line. Unknown commands are counted and logged.
func (n *Node) Exec(line string) {
	key, args := command.Split(line)
	if key == "" {
		return
	}
	handled, err := n.cmds.Handle(key, args)
	switch {
	case !handled:
		n.Invalid++
		n.log.Infof("%s %q", errcode.UnknownCommand, key)
	case err != nil:
		n.log.Errorf("%s: %v", key, err)
	}
}

// Run cycles until ctx is cancelled, pausing loop_delay ms between cycles.
func (n *Node) Run(ctx context.Context) error {
	t := time.NewTimer(time.Hour)
	t.Stop()
	defer t.Stop()
	for {
		if err := n.Step(ctx); err != nil {
			return err
		}
		timex.ResetTimer(t, timex.Millis(n.store.Integer(config.KeyLoopDelay)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
