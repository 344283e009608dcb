package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// Level is the logical level of a pin
type Level bool

const (
	LevelLow  Level = false
	LevelHigh Level = true
)

// Direction selects input or output mode
type Direction uint8

const (
	DirectionDisabled Direction = iota
	DirectionInput
	DirectionOutput
)

// IntrType is the interrupt trigger mode of a pin
type IntrType uint8

const (
	IntrDisable IntrType = iota
	IntrPosEdge
	IntrNegEdge
	IntrAnyEdge
	IntrLowLevel
	IntrHighLevel
)

// PinConfig is the per-pin configuration handed to a driver
type PinConfig struct {
	Direction Direction
	PullUp    bool
	PullDown  bool
	Intr      IntrType
}

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigurePin applies direction and pull settings to a single pin.
	// Returns error if pin is invalid or the mode is unsupported.
	ConfigurePin(pin GPIOPin, cfg PinConfig) error

	// SetPin drives an output pin to the given level
	SetPin(pin GPIOPin, level Level) error

	// GetPin reads the current pin level
	GetPin(pin GPIOPin) (Level, error)
}

// Global singleton used by target code that has a single board driver.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
