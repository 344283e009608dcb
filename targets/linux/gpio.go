//go:build linux && !tinygo

package main

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"gpiotask/core"
)

// CdevGPIODriver implements core.GPIODriver on the Linux GPIO character device
type CdevGPIODriver struct {
	chip string

	mu    sync.Mutex
	lines map[core.GPIOPin]*gpiocdev.Line
	dirs  map[core.GPIOPin]core.Direction
}

// NewCdevGPIODriver creates a driver for the named chip, e.g. "gpiochip0"
func NewCdevGPIODriver(chip string) *CdevGPIODriver {
	return &CdevGPIODriver{
		chip:  chip,
		lines: make(map[core.GPIOPin]*gpiocdev.Line),
		dirs:  make(map[core.GPIOPin]core.Direction),
	}
}

// ConfigurePin requests the line with the given direction and bias.
// A line that is already held is released and requested again.
func (d *CdevGPIODriver) ConfigurePin(pin core.GPIOPin, cfg core.PinConfig) error {
	if cfg.Intr != core.IntrDisable {
		return core.ErrInterruptUnsupported
	}

	opts := []gpiocdev.LineReqOption{gpiocdev.WithConsumer("gpiotask")}
	switch cfg.Direction {
	case core.DirectionOutput:
		opts = append(opts, gpiocdev.AsOutput(0))
	case core.DirectionInput:
		opts = append(opts, gpiocdev.AsInput)
	default:
		return core.ErrInvalidDirection
	}
	switch {
	case cfg.PullUp && cfg.PullDown:
		return core.ErrPullConflict
	case cfg.PullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case cfg.PullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	default:
		opts = append(opts, gpiocdev.WithBiasDisabled)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if l, ok := d.lines[pin]; ok {
		l.Close()
		delete(d.lines, pin)
	}
	l, err := gpiocdev.RequestLine(d.chip, int(pin), opts...)
	if err != nil {
		return fmt.Errorf("request %s line %d: %w", d.chip, pin, err)
	}
	d.lines[pin] = l
	d.dirs[pin] = cfg.Direction
	return nil
}

func (d *CdevGPIODriver) SetPin(pin core.GPIOPin, level core.Level) error {
	d.mu.Lock()
	l, ok := d.lines[pin]
	dir := d.dirs[pin]
	d.mu.Unlock()

	if !ok {
		return core.ErrPinNotConfigured
	}
	if dir != core.DirectionOutput {
		return core.ErrPinNotOutput
	}
	v := 0
	if level == core.LevelHigh {
		v = 1
	}
	return l.SetValue(v)
}

func (d *CdevGPIODriver) GetPin(pin core.GPIOPin) (core.Level, error) {
	d.mu.Lock()
	l, ok := d.lines[pin]
	d.mu.Unlock()

	if !ok {
		return core.LevelLow, core.ErrPinNotConfigured
	}
	v, err := l.Value()
	if err != nil {
		return core.LevelLow, err
	}
	return core.Level(v != 0), nil
}

// Close reverts outputs to inputs and releases every line
func (d *CdevGPIODriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var firstErr error
	for pin, l := range d.lines {
		if d.dirs[pin] == core.DirectionOutput {
			l.Reconfigure(gpiocdev.AsInput)
		}
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(d.lines, pin)
	}
	return firstErr
}
