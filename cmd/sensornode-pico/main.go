//go:build rp2040 || rp2350

// Command sensornode-pico is the node firmware for RP2040/RP2350 boards.
// UART0 (GP0/GP1) carries both the serial gateway and the command channel;
// logs go to USB serial.
package main

import (
	"context"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"sensornode-go/services/config"
	_ "sensornode-go/services/modules/devices/all"
	"sensornode-go/services/modules/platform"
	"sensornode-go/services/node"
	"sensornode-go/services/power"
	"sensornode-go/services/serialio"
	"sensornode-go/storage"
	"sensornode-go/x/fmtx"
	"sensornode-go/x/logx"
)

const (
	pinUARTTX = machine.GPIO0
	pinUARTRX = machine.GPIO1
	pinWake0  = 14
	pinWake1  = 15
	board     = "pico"
)

type cpuReset struct{}

func (cpuReset) Reset() { machine.CPUReset() }

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	fmtx.DefaultOutput = machine.Serial
	log := logx.New(machine.Serial, logx.LevelInfo)
	log.Infof("boot")

	ctx := context.Background()

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 57600,
		TX:       pinUARTTX,
		RX:       pinUARTRX,
	})

	rec := config.Defaults()
	if p, ok := config.ProfileLookup(board); ok {
		if err := config.ApplyProfile(&rec, p); err != nil {
			log.Errorf("profile %s: %v", board, err)
		}
	}

	pump := serialio.New(8)
	pump.Start(ctx, u, 64)

	n, err := node.New(ctx, node.Options{
		Block:     storage.NewFlash(),
		Defaults:  &rec,
		Sensors:   platform.NewRP2(),
		Gateway:   gatewayOn(u),
		Sleeper:   power.NewIRQSleeper(power.NewPin(pinWake0), power.NewPin(pinWake1)),
		Indicator: power.NewLED(machine.LED),
		Input:     pump,
		Resetter:  cpuReset{},
		Log:       log,
	})
	if err != nil {
		log.Errorf("boot: %v", err)
		for {
			time.Sleep(time.Second)
		}
	}
	if baud := n.Store().Integer(config.KeySerialBaudRate); baud != 0 && baud != 57600 {
		u.SetBaudRate(uint32(baud))
	}
	_ = n.Run(ctx)
}
