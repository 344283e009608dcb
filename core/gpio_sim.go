package core

import "sync"

type simPin struct {
	cfg     PinConfig
	level   Level // Driven output level
	driven  bool  // External input is being driven
	input   Level // Externally driven input level
	history []Level
}

// SimGPIODriver is an in-memory GPIODriver used by the host simulator and tests.
// Inputs float to their pull level unless driven with Drive.
type SimGPIODriver struct {
	mu   sync.Mutex
	pins map[GPIOPin]*simPin

	// FailConfigure makes ConfigurePin fail for the listed pins
	FailConfigure map[GPIOPin]error
}

// NewSimGPIODriver creates an empty simulated GPIO bank
func NewSimGPIODriver() *SimGPIODriver {
	return &SimGPIODriver{
		pins:          make(map[GPIOPin]*simPin),
		FailConfigure: make(map[GPIOPin]error),
	}
}

func (d *SimGPIODriver) ConfigurePin(pin GPIOPin, cfg PinConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err, ok := d.FailConfigure[pin]; ok {
		return err
	}
	p, ok := d.pins[pin]
	if !ok {
		p = &simPin{}
		d.pins[pin] = p
	}
	p.cfg = cfg
	return nil
}

func (d *SimGPIODriver) SetPin(pin GPIOPin, level Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pins[pin]
	if !ok {
		return ErrPinNotConfigured
	}
	if p.cfg.Direction != DirectionOutput {
		return ErrPinNotOutput
	}
	p.level = level
	p.history = append(p.history, level)
	return nil
}

func (d *SimGPIODriver) GetPin(pin GPIOPin) (Level, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pins[pin]
	if !ok {
		return LevelLow, ErrPinNotConfigured
	}
	return p.read(), nil
}

func (p *simPin) read() Level {
	switch {
	case p.cfg.Direction == DirectionOutput:
		return p.level
	case p.driven:
		return p.input
	case p.cfg.PullUp:
		return LevelHigh
	default:
		return LevelLow
	}
}

// Drive forces an input pin to level, as an external circuit would
func (d *SimGPIODriver) Drive(pin GPIOPin, level Level) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pins[pin]
	if !ok {
		p = &simPin{}
		d.pins[pin] = p
	}
	p.driven = true
	p.input = level
}

// Release stops driving an input pin so it floats back to its pull level
func (d *SimGPIODriver) Release(pin GPIOPin) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pins[pin]; ok {
		p.driven = false
	}
}

// Config returns the configuration applied to pin
func (d *SimGPIODriver) Config(pin GPIOPin) (PinConfig, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pins[pin]
	if !ok {
		return PinConfig{}, false
	}
	return p.cfg, true
}

// History returns every level written to an output pin, oldest first
func (d *SimGPIODriver) History(pin GPIOPin) []Level {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pins[pin]
	if !ok {
		return nil
	}
	out := make([]Level, len(p.history))
	copy(out, p.history)
	return out
}
