package demo

import (
	"errors"

	"gpiotask/core"
)

// Config holds the board pins and timing of the demo.
// Periods are in milliseconds.
type Config struct {
	LEDPin    core.GPIOPin `json:"led_pin"`
	ButtonPin core.GPIOPin `json:"button_pin"`

	StartupDelayMs  uint32 `json:"startup_delay_ms"`
	LEDPeriodMs     uint32 `json:"led_period_ms"`
	CounterPeriodMs uint32 `json:"counter_period_ms"`
	PollIntervalMs  uint32 `json:"poll_interval_ms"`

	TaskStackSize uint32 `json:"task_stack_size"`
	TaskPriority  uint8  `json:"task_priority"`
}

var (
	ErrSamePin      = errors.New("config: led and button share a pin")
	ErrPinRange     = errors.New("config: pin out of range")
	ErrZeroPeriod   = errors.New("config: periods must be non-zero")
	ErrTaskSettings = errors.New("config: invalid task stack size or priority")
)

// DefaultConfig returns the settings of the reference board:
// onboard LED on GPIO2, BOOT button on GPIO0
func DefaultConfig() Config {
	return Config{
		LEDPin:          2,
		ButtonPin:       0,
		StartupDelayMs:  5000,
		LEDPeriodMs:     250,
		CounterPeriodMs: 1000,
		PollIntervalMs:  100,
		TaskStackSize:   2048,
		TaskPriority:    10,
	}
}

// applyDefaults fills in zero timing and task values
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.StartupDelayMs == 0 {
		cfg.StartupDelayMs = def.StartupDelayMs
	}
	if cfg.LEDPeriodMs == 0 {
		cfg.LEDPeriodMs = def.LEDPeriodMs
	}
	if cfg.CounterPeriodMs == 0 {
		cfg.CounterPeriodMs = def.CounterPeriodMs
	}
	if cfg.PollIntervalMs == 0 {
		cfg.PollIntervalMs = def.PollIntervalMs
	}
	if cfg.TaskStackSize == 0 {
		cfg.TaskStackSize = def.TaskStackSize
	}
}

// Validate checks the configuration before anything touches hardware
func (c Config) Validate() error {
	if c.LEDPin >= core.MaxPins || c.ButtonPin >= core.MaxPins {
		return ErrPinRange
	}
	if c.LEDPin == c.ButtonPin {
		return ErrSamePin
	}
	if c.StartupDelayMs == 0 || c.LEDPeriodMs == 0 || c.CounterPeriodMs == 0 || c.PollIntervalMs == 0 {
		return ErrZeroPeriod
	}
	if c.TaskStackSize == 0 || c.TaskPriority > core.MaxPriority {
		return ErrTaskSettings
	}
	return nil
}

// OutputConfig is the gpio configuration of the LED pin
func (c Config) OutputConfig() core.GPIOConfig {
	return core.GPIOConfig{
		PinBitMask: core.PinMask(c.LEDPin),
		Mode:       core.DirectionOutput,
		Intr:       core.IntrDisable,
	}
}

// InputConfig is the gpio configuration of the button pin
func (c Config) InputConfig() core.GPIOConfig {
	return core.GPIOConfig{
		PinBitMask: core.PinMask(c.ButtonPin),
		Mode:       core.DirectionInput,
		PullUp:     true,
		Intr:       core.IntrDisable,
	}
}

func (c Config) taskConfig(name string) core.TaskConfig {
	return core.TaskConfig{
		Name:      name,
		StackSize: c.TaskStackSize,
		Priority:  c.TaskPriority,
	}
}
