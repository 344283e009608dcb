//go:build tinygo

// Package board holds the TinyGo entry sequence shared by the MCU targets
package board

import (
	"time"

	"gpiotask/core"
	"gpiotask/demo"
)

// Run starts the demo on real hardware and never returns
func Run(cfg demo.Config, gpio core.GPIODriver) {
	InitSerial()

	console := core.NewConsole(SerialWriter)
	// Keep tasks from blocking on a USB port nobody is reading
	console.StartAsync(32)

	core.SetGPIODriver(gpio)
	sched := core.NewScheduler(core.NewSystemClock(), console)

	sup, err := demo.Start(sched, core.MustGPIO(), cfg)
	if err != nil {
		console.Println("start failed: " + err.Error())
		halt()
	}

	// Only returns when setup failed; the error is already on the console
	sup.Wait()
	halt()
}

func halt() {
	for {
		time.Sleep(time.Second)
	}
}
