//go:build esp32c3

package main

import (
	"image/color"
	"machine"

	"gpiotask/core"
	"gpiotask/demo"
	"gpiotask/targets/board"
)

// ESP32-C3 DevKitM: WS2812 RGB LED on GPIO8, BOOT button on GPIO9
const (
	ledPin    core.GPIOPin = 8
	buttonPin core.GPIOPin = 9
)

func main() {
	cfg := demo.DefaultConfig()
	cfg.LEDPin = ledPin
	cfg.ButtonPin = buttonPin

	gpio := board.NewGPIODriver()
	gpio.Attach(ledPin, board.NewWS2812LED(machine.Pin(ledPin), color.RGBA{R: 0x00, G: 0x20, B: 0x00, A: 0xff}))

	board.Run(cfg, gpio)
}
