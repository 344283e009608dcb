//go:build rp2040

package main

import (
	"machine"

	"gpiotask/core"
	"gpiotask/demo"
	"gpiotask/targets/board"
	"gpiotask/targets/pio"
)

// Raspberry Pi Pico: onboard LED on GPIO25, push button from GPIO15 to GND
const (
	ledPin    core.GPIOPin = 25
	buttonPin core.GPIOPin = 15
)

func main() {
	cfg := demo.DefaultConfig()
	cfg.LEDPin = ledPin
	cfg.ButtonPin = buttonPin

	gpio := board.NewGPIODriver()

	// Drive the LED from a PIO state machine; plain GPIO if none is free
	if led, err := pio.NewLEDOutput(machine.Pin(ledPin)); err == nil {
		gpio.Attach(ledPin, led)
	}

	board.Run(cfg, gpio)
}
