package core

import (
	"errors"
	"testing"
)

func TestPinMask(t *testing.T) {
	mask := PinMask(0, 2, 63, 64)
	if mask != 1|1<<2|1<<63 {
		t.Errorf("Unexpected mask %#x", mask)
	}

	pins := GPIOConfig{PinBitMask: mask}.Pins()
	want := []GPIOPin{0, 2, 63}
	if len(pins) != len(want) {
		t.Fatalf("Expected %v, got %v", want, pins)
	}
	for i := range want {
		if pins[i] != want[i] {
			t.Errorf("Pin %d: expected %d, got %d", i, want[i], pins[i])
		}
	}
}

func TestGPIOConfigValidate(t *testing.T) {
	testCases := []struct {
		name string
		cfg  GPIOConfig
		want error
	}{
		{"output", GPIOConfig{PinBitMask: 1 << 2, Mode: DirectionOutput}, nil},
		{"input pull-up", GPIOConfig{PinBitMask: 1, Mode: DirectionInput, PullUp: true}, nil},
		{"empty mask", GPIOConfig{Mode: DirectionOutput}, ErrNoPins},
		{"no direction", GPIOConfig{PinBitMask: 1}, ErrInvalidDirection},
		{"both pulls", GPIOConfig{PinBitMask: 1, Mode: DirectionInput, PullUp: true, PullDown: true}, ErrPullConflict},
		{"interrupt", GPIOConfig{PinBitMask: 1, Mode: DirectionInput, Intr: IntrNegEdge}, ErrInterruptUnsupported},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigureGPIOAppliesToEveryPin(t *testing.T) {
	driver := NewSimGPIODriver()
	cfg := GPIOConfig{
		PinBitMask: PinMask(4, 5),
		Mode:       DirectionInput,
		PullDown:   true,
	}

	if err := ConfigureGPIO(driver, cfg); err != nil {
		t.Fatalf("ConfigureGPIO failed: %v", err)
	}

	for _, pin := range []GPIOPin{4, 5} {
		pc, ok := driver.Config(pin)
		if !ok {
			t.Errorf("Pin %d not configured", pin)
			continue
		}
		if pc.Direction != DirectionInput || !pc.PullDown || pc.PullUp {
			t.Errorf("Pin %d: unexpected config %+v", pin, pc)
		}
	}
	if _, ok := driver.Config(6); ok {
		t.Error("Unselected pin was configured")
	}
}

func TestConfigureGPIODriverFailure(t *testing.T) {
	driver := NewSimGPIODriver()
	boom := errors.New("boom")
	driver.FailConfigure[5] = boom

	err := ConfigureGPIO(driver, GPIOConfig{PinBitMask: PinMask(4, 5, 6), Mode: DirectionOutput})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected driver error, got %v", err)
	}

	var pinErr *PinError
	if !errors.As(err, &pinErr) || pinErr.Pin != 5 {
		t.Errorf("Expected PinError on pin 5, got %v", err)
	}
	if err.Error() != "configure gpio5: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if _, ok := driver.Config(6); ok {
		t.Error("Configuration continued past the failing pin")
	}
}

func TestSimGPIOLevels(t *testing.T) {
	driver := NewSimGPIODriver()
	ConfigureGPIO(driver, GPIOConfig{PinBitMask: PinMask(0), Mode: DirectionInput, PullUp: true})
	ConfigureGPIO(driver, GPIOConfig{PinBitMask: PinMask(2), Mode: DirectionOutput})

	if level, _ := driver.GetPin(0); level != LevelHigh {
		t.Error("Pulled-up input should read high")
	}
	driver.Drive(0, LevelLow)
	if level, _ := driver.GetPin(0); level != LevelLow {
		t.Error("Driven input should read low")
	}
	driver.Release(0)
	if level, _ := driver.GetPin(0); level != LevelHigh {
		t.Error("Released input should float back high")
	}

	if err := driver.SetPin(0, LevelHigh); !errors.Is(err, ErrPinNotOutput) {
		t.Errorf("Expected ErrPinNotOutput, got %v", err)
	}
	if err := driver.SetPin(9, LevelHigh); !errors.Is(err, ErrPinNotConfigured) {
		t.Errorf("Expected ErrPinNotConfigured, got %v", err)
	}

	driver.SetPin(2, LevelHigh)
	driver.SetPin(2, LevelLow)
	if level, _ := driver.GetPin(2); level != LevelLow {
		t.Error("Output should read back its last level")
	}
	if h := driver.History(2); len(h) != 2 || h[0] != LevelHigh || h[1] != LevelLow {
		t.Errorf("Unexpected history %v", h)
	}
}

func TestGPIODriverSingleton(t *testing.T) {
	defer SetGPIODriver(nil)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("MustGPIO should panic without a driver")
			}
		}()
		MustGPIO()
	}()

	driver := NewSimGPIODriver()
	SetGPIODriver(driver)
	if MustGPIO() != GPIODriver(driver) {
		t.Error("MustGPIO returned a different driver")
	}
}
