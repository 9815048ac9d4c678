//go:build tinygo

// remote is the firmware: five buttons on GP0 and GP2..GP5, IR LED on GP1.
// It sleeps until a button changes and sends the matching NEC code.
package main

import (
	"context"
	"machine"

	"github.com/sparques/tinyir"
	"github.com/sparques/tinyir/config"
	"github.com/sparques/tinyir/remote"
)

const irPin = machine.GP1

func main() {
	cfg, err := config.Default().Remote()
	if err != nil {
		println("config:", err.Error())
		return
	}

	carrier := tinyir.NewNECCarrier(irPin)
	tx := tinyir.NewTxDevice(carrier, tinyir.BusyWaiter{})
	keys := remote.NewKeypad(
		machine.GP0,
		machine.NoPin, // IR LED
		machine.GP2,
		machine.GP3,
		machine.GP4,
		machine.GP5,
	)
	defer keys.Close()

	ctrl, err := remote.New(cfg, keys, tx)
	if err != nil {
		println("remote:", err.Error())
		return
	}
	if err := ctrl.Run(context.Background()); err != nil {
		println("run:", err.Error())
	}
}
