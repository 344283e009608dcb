//go:build linux && !tinygo

// Command linux runs the demo on a Raspberry Pi class board through the
// GPIO character device: LED on line 17, button from line 27 to GND.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gpiotask/core"
	"gpiotask/demo"
)

const (
	chipName   = "gpiochip0"
	ledLine    = 17
	buttonLine = 27
)

func main() {
	cfg := demo.DefaultConfig()
	cfg.LEDPin = ledLine
	cfg.ButtonPin = buttonLine

	gpio := NewCdevGPIODriver(chipName)
	defer gpio.Close()

	console := core.NewConsole(func(s string) {
		fmt.Println(s)
	})
	sched := core.NewScheduler(core.NewSystemClock(), console)

	sup, err := demo.Start(sched, gpio, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// capture exit signals to ensure lines are reverted to input on exit.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	done := make(chan error, 1)
	go func() {
		done <- sup.Wait()
	}()

	select {
	case <-quit:
		sup.Handle().Delete()
		<-done
	case err := <-done:
		if err != nil {
			gpio.Close()
			os.Exit(1)
		}
	}
}
