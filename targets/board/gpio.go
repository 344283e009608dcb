//go:build tinygo

package board

import (
	"machine"

	"gpiotask/core"
)

// OutputPin is an alternative backend for an output pin, such as a PIO
// state machine or an addressable LED
type OutputPin interface {
	Set(high bool) error
}

// GPIODriver implements core.GPIODriver on TinyGo's machine package
type GPIODriver struct {
	// Track configured pins and their direction
	configuredPins map[core.GPIOPin]core.Direction

	// Outputs handled by something other than the pin's GPIO function
	attached map[core.GPIOPin]OutputPin
}

// NewGPIODriver creates a new machine-backed GPIO driver
func NewGPIODriver() *GPIODriver {
	return &GPIODriver{
		configuredPins: make(map[core.GPIOPin]core.Direction),
		attached:       make(map[core.GPIOPin]OutputPin),
	}
}

// Attach routes writes to pin through out instead of the GPIO block
func (d *GPIODriver) Attach(pin core.GPIOPin, out OutputPin) {
	d.attached[pin] = out
}

// ConfigurePin configures direction and pull resistors of one pin
func (d *GPIODriver) ConfigurePin(pin core.GPIOPin, cfg core.PinConfig) error {
	if cfg.Intr != core.IntrDisable {
		return core.ErrInterruptUnsupported
	}

	var mode machine.PinMode
	switch cfg.Direction {
	case core.DirectionOutput:
		if _, ok := d.attached[pin]; ok {
			// Attached backend owns the pin function
			d.configuredPins[pin] = cfg.Direction
			return nil
		}
		mode = machine.PinOutput
	case core.DirectionInput:
		switch {
		case cfg.PullUp && cfg.PullDown:
			return core.ErrPullConflict
		case cfg.PullUp:
			mode = machine.PinInputPullup
		case cfg.PullDown:
			mode = machine.PinInputPulldown
		default:
			mode = machine.PinInput
		}
	default:
		return core.ErrInvalidDirection
	}

	d.pinNumberToMachinePin(pin).Configure(machine.PinConfig{Mode: mode})
	d.configuredPins[pin] = cfg.Direction
	return nil
}

// SetPin drives an output pin
func (d *GPIODriver) SetPin(pin core.GPIOPin, level core.Level) error {
	dir, exists := d.configuredPins[pin]
	if !exists {
		return core.ErrPinNotConfigured
	}
	if dir != core.DirectionOutput {
		return core.ErrPinNotOutput
	}

	if out, ok := d.attached[pin]; ok {
		return out.Set(bool(level))
	}
	d.pinNumberToMachinePin(pin).Set(bool(level))
	return nil
}

// GetPin reads the current pin state
func (d *GPIODriver) GetPin(pin core.GPIOPin) (core.Level, error) {
	if _, exists := d.configuredPins[pin]; !exists {
		return core.LevelLow, core.ErrPinNotConfigured
	}
	return core.Level(d.pinNumberToMachinePin(pin).Get()), nil
}

// pinNumberToMachinePin converts a pin to a machine.Pin.
// On the supported chips GPIO numbers map directly.
func (d *GPIODriver) pinNumberToMachinePin(pin core.GPIOPin) machine.Pin {
	return machine.Pin(pin)
}
