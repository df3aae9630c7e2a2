//go:build !(rp2040 || rp2350)

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"

	"sensornode-go/services/config"
	"sensornode-go/services/gateway"
	_ "sensornode-go/services/modules/devices/all"
	"sensornode-go/services/modules/platform"
	"sensornode-go/services/node"
	"sensornode-go/services/power"
	"sensornode-go/services/serialio"
	"sensornode-go/storage"
	"sensornode-go/types"
	"sensornode-go/x/logx"
)

// softReset restarts the node in-process, as a watchdog reset would on the
// board: the runtime is rebuilt from the stored configuration.
type softReset struct {
	cancel  context.CancelFunc
	pending atomic.Bool
}

func (r *softReset) Reset() {
	r.pending.Store(true)
	r.cancel()
}

// ledLog reports the status indicator in the log.
type ledLog struct{ log *logx.Logger }

func (l ledLog) Set(on bool) {
	if on {
		l.log.Debugf("led on")
		return
	}
	l.log.Debugf("led off")
}

// defaults builds the record restored on mismatch: compiled-in values, then
// the board profile, then the seed file.
func defaults(o options) (config.Record, error) {
	rec := config.Defaults()
	if o.profile != "" {
		raw, ok := config.ProfileLookup(o.profile)
		if !ok {
			return rec, errors.New("unknown profile " + o.profile)
		}
		if err := config.ApplyProfile(&rec, raw); err != nil {
			return rec, err
		}
	}
	if o.seed != "" {
		s, err := config.LoadSeed(o.seed)
		if err != nil {
			return rec, err
		}
		s.Apply(&rec)
	}
	return rec, nil
}

func run(ctx context.Context, o options) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	level := logx.LevelInfo
	if o.debug {
		level = logx.LevelDebug
	}
	var logOut io.Writer = os.Stderr
	var gwOut io.Writer = os.Stdout

	rec, err := defaults(o)
	if err != nil {
		return err
	}
	blk, err := storage.OpenFile(o.store, o.storeSize)
	if err != nil {
		return err
	}
	defer blk.Close()

	baud := o.baud
	if baud == 0 {
		baud = int(rec.Integers[config.KeySerialBaudRate-config.IntegerBase])
	}

	pump := serialio.New(16)
	var in serialio.Port
	switch {
	case o.port != "":
		p, err := openSerial(types.SerialConfig{Name: o.port, Baud: uint32(baud)})
		if err != nil {
			return err
		}
		defer p.Close()
		in = serialio.FromReader(p)
	case o.console:
		c, err := newConsole()
		if err != nil {
			return err
		}
		defer c.Close()
		c.onExit = stop
		in = c
		logOut = c.Stderr()
		gwOut = c.Stdout()
	default:
		in = serialio.FromReader(os.Stdin)
	}
	if o.gateway != "" {
		p, err := openSerial(types.SerialConfig{Name: o.gateway, Baud: uint32(baud)})
		if err != nil {
			return err
		}
		defer p.Close()
		gwOut = p
	}

	log := logx.New(logOut, level)
	stopIn := pump.Start(ctx, in, 64)
	defer stopIn()

	wake0, wake1 := power.NewSimPin(), power.NewSimPin()
	stopWake := watchWakeSignals(ctx, log, wake0, wake1)
	defer stopWake()

	sim := platform.NewSim()
	gw := gateway.NewSerial(gwOut, 0, nil)

	for {
		rctx, cancel := context.WithCancel(ctx)
		rst := &softReset{cancel: cancel}
		n, err := node.New(rctx, node.Options{
			Block:     blk,
			Defaults:  &rec,
			Sensors:   sim,
			Gateway:   gw,
			Sleeper:   power.NewIRQSleeper(wake0, wake1),
			Indicator: ledLog{log.With("led")},
			Input:     pump,
			Resetter:  rst,
			Log:       log,
		})
		if err != nil {
			cancel()
			return err
		}
		err = n.Run(rctx)
		cancel()
		if rst.pending.Load() && ctx.Err() == nil {
			log.Infof("soft reset")
			continue
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}
