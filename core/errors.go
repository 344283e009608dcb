package core

import "errors"

var (
	ErrNoPins               = errors.New("gpio: empty pin bit mask")
	ErrPullConflict         = errors.New("gpio: pull-up and pull-down both enabled")
	ErrInterruptUnsupported = errors.New("gpio: interrupt mode not supported, pins are polled")
	ErrInvalidDirection     = errors.New("gpio: invalid direction")
	ErrPinNotConfigured     = errors.New("gpio: pin not configured")
	ErrPinNotOutput         = errors.New("gpio: pin is not an output")

	ErrInvalidTaskConfig = errors.New("task: invalid configuration")
	ErrTaskDeleted       = errors.New("task: already deleted")
	ErrNilHandle         = errors.New("task: nil handle")
)

// PinError reports a GPIO failure on a specific pin
type PinError struct {
	Pin GPIOPin
	Op  string
	Err error
}

func (e *PinError) Error() string {
	return e.Op + " gpio" + utoa(uint32(e.Pin)) + ": " + e.Err.Error()
}

func (e *PinError) Unwrap() error {
	return e.Err
}
