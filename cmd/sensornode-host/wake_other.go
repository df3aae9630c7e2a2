//go:build !(rp2040 || rp2350) && !unix

package main

import (
	"context"

	"sensornode-go/services/power"
	"sensornode-go/x/logx"
)

// Wake lines can only be driven by signals on unix hosts.
func watchWakeSignals(context.Context, *logx.Logger, *power.SimPin, *power.SimPin) func() {
	return func() {}
}
