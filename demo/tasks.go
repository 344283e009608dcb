package demo

import "gpiotask/core"

// LEDState is the two-state machine of the toggle task
type LEDState uint8

const (
	LEDOff LEDState = iota
	LEDOn
)

// Toggle returns the opposite state
func (s LEDState) Toggle() LEDState {
	if s == LEDOff {
		return LEDOn
	}
	return LEDOff
}

// Level maps the state to the pin level driving the LED
func (s LEDState) Level() core.Level {
	return s == LEDOn
}

func (s LEDState) String() string {
	if s == LEDOn {
		return "ON"
	}
	return "OFF"
}

// ToggleTask flips the LED every period, forever.
// Each toggle is reported once its period has elapsed.
func ToggleTask(gpio core.GPIODriver, pin core.GPIOPin, period core.Ticks) core.TaskFunc {
	return func(t *core.Task) {
		state := LEDOff
		for {
			state = state.Toggle()
			if err := gpio.SetPin(pin, state.Level()); err != nil {
				t.Println("LED write failed: " + err.Error())
			}
			t.Delay(period)
			t.Println(MsgToggle)
		}
	}
}

// OneShotTask reports once and deletes itself
func OneShotTask() core.TaskFunc {
	return func(t *core.Task) {
		t.Println(MsgOneShot)
		t.DeleteSelf()
	}
}

// CounterTask reports an increasing counter every period until deleted.
// The counter wraps at 2^32.
func CounterTask(period core.Ticks) core.TaskFunc {
	return counterTask(period, 0)
}

func counterTask(period core.Ticks, start uint32) core.TaskFunc {
	return func(t *core.Task) {
		count := start
		for {
			t.Println(CountMessage(count))
			count++
			t.Delay(period)
		}
	}
}
