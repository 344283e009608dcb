// GPIO configuration support
// Applies a vendor-style gpio_config (pin mask + mode) through a GPIODriver
package core

import "math/bits"

// MaxPins is the width of a GPIOConfig pin selection mask
const MaxPins = 64

// GPIOConfig selects a group of pins and the settings applied to all of them
type GPIOConfig struct {
	PinBitMask uint64    // Bit n selects GPIO n
	Mode       Direction // Input or output
	PullUp     bool      // Enable internal pull-up
	PullDown   bool      // Enable internal pull-down
	Intr       IntrType  // Must be IntrDisable, pins are polled
}

// PinMask returns a bit mask selecting the given pins
func PinMask(pins ...GPIOPin) uint64 {
	var mask uint64
	for _, p := range pins {
		if p < MaxPins {
			mask |= 1 << p
		}
	}
	return mask
}

// Pins returns the pins selected by the mask in ascending order
func (c GPIOConfig) Pins() []GPIOPin {
	pins := make([]GPIOPin, 0, bits.OnesCount64(c.PinBitMask))
	mask := c.PinBitMask
	for mask != 0 {
		n := bits.TrailingZeros64(mask)
		pins = append(pins, GPIOPin(n))
		mask &^= 1 << n
	}
	return pins
}

// Validate checks the configuration without touching hardware
func (c GPIOConfig) Validate() error {
	if c.PinBitMask == 0 {
		return ErrNoPins
	}
	if c.Mode != DirectionInput && c.Mode != DirectionOutput {
		return ErrInvalidDirection
	}
	if c.PullUp && c.PullDown {
		return ErrPullConflict
	}
	if c.Intr != IntrDisable {
		return ErrInterruptUnsupported
	}
	return nil
}

// ConfigureGPIO applies cfg to every pin selected by its mask.
// Stops at the first driver failure and reports which pin failed.
func ConfigureGPIO(d GPIODriver, cfg GPIOConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	pc := PinConfig{
		Direction: cfg.Mode,
		PullUp:    cfg.PullUp,
		PullDown:  cfg.PullDown,
		Intr:      cfg.Intr,
	}
	for _, pin := range cfg.Pins() {
		if err := d.ConfigurePin(pin, pc); err != nil {
			return &PinError{Pin: pin, Op: "configure", Err: err}
		}
	}
	return nil
}
