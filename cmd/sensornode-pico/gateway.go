//go:build rp2040 || rp2350

package main

import (
	"github.com/jangala-dev/tinygo-uartx/uartx"

	"sensornode-go/services/gateway"
)

// gatewayOn writes MySensors lines to the UART. The node id is assigned
// from config at boot.
func gatewayOn(u *uartx.UART) *gateway.Serial {
	return gateway.NewSerial(u, gateway.ChildNode, nil)
}
