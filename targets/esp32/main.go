//go:build esp32

package main

import (
	"gpiotask/demo"
	"gpiotask/targets/board"
)

// ESP32 DevKit: onboard LED on GPIO2, BOOT button on GPIO0.
// These are the demo defaults.
func main() {
	board.Run(demo.DefaultConfig(), board.NewGPIODriver())
}
