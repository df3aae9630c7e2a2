//go:build !(rp2040 || rp2350)

package main

import (
	"github.com/tarm/serial"

	"sensornode-go/errcode"
	"sensornode-go/types"
)

// openSerial opens a host serial port, 8N1 unless cfg says otherwise.
func openSerial(cfg types.SerialConfig) (*serial.Port, error) {
	sc := &serial.Config{
		Name:     cfg.Name,
		Baud:     int(cfg.Baud),
		Size:     cfg.DataBits,
		StopBits: serial.Stop1,
		Parity:   serial.ParityNone,
	}
	if sc.Size == 0 {
		sc.Size = 8
	}
	if cfg.StopBits == 2 {
		sc.StopBits = serial.Stop2
	}
	switch cfg.Parity {
	case types.ParityEven:
		sc.Parity = serial.ParityEven
	case types.ParityOdd:
		sc.Parity = serial.ParityOdd
	}
	p, err := serial.OpenPort(sc)
	if err != nil {
		return nil, errcode.Wrap(errcode.PeripheralInit, "serial.open "+cfg.Name, err)
	}
	return p, nil
}
