//go:build !(rp2040 || rp2350) && unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sensornode-go/services/power"
	"sensornode-go/x/logx"
)

// watchWakeSignals pulses wake line 0 on SIGUSR1 and line 1 on SIGUSR2.
func watchWakeSignals(ctx context.Context, log *logx.Logger, int0, int1 *power.SimPin) func() {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGUSR2)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-ch:
				if sig == syscall.SIGUSR1 {
					log.Debugf("wake line 0")
					int0.Pulse()
				} else {
					log.Debugf("wake line 1")
					int1.Pulse()
				}
			}
		}
	}()
	return func() { signal.Stop(ch) }
}
