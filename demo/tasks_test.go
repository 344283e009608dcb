package demo

import (
	"testing"

	"gpiotask/core"
)

func TestLEDStateToggleParity(t *testing.T) {
	state := LEDOff
	for n := 0; n <= 16; n++ {
		want := LEDOff
		if n%2 == 1 {
			want = LEDOn
		}
		if state != want {
			t.Errorf("After %d toggles: expected %v, got %v", n, want, state)
		}
		state = state.Toggle()
	}
}

func TestLEDStateLevel(t *testing.T) {
	if LEDOn.Level() != core.LevelHigh {
		t.Error("ON should drive the pin high")
	}
	if LEDOff.Level() != core.LevelLow {
		t.Error("OFF should drive the pin low")
	}
}

func TestCounterTaskStopsOnDelete(t *testing.T) {
	clock := core.NewVirtualClock()
	rec := &core.LineRecorder{}
	sched := core.NewScheduler(clock, core.NewConsole(rec.Write))

	h, err := sched.Spawn(core.TaskConfig{Name: CounterTaskName, StackSize: 2048}, CounterTask(core.MsToTicks(1000)))
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	clock.Settle()
	clock.Advance(core.MsToTicks(2500))

	if err := h.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	h.Wait()
	clock.Advance(core.MsToTicks(5000))

	want := []string{CountMessage(0), CountMessage(1), CountMessage(2)}
	got := rec.Lines()
	if len(got) != len(want) {
		t.Fatalf("Expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestOneShotTaskDeletesItself(t *testing.T) {
	clock := core.NewVirtualClock()
	rec := &core.LineRecorder{}
	sched := core.NewScheduler(clock, core.NewConsole(rec.Write))

	h, err := sched.Spawn(core.TaskConfig{Name: OneShotTaskName, StackSize: 2048}, OneShotTask())
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	h.Wait()

	if !h.Deleted() {
		t.Error("One-shot task not marked deleted")
	}
	if err := h.Delete(); err != core.ErrTaskDeleted {
		t.Errorf("Expected ErrTaskDeleted on external delete, got %v", err)
	}
	if lines := rec.Lines(); len(lines) != 1 || lines[0] != MsgOneShot {
		t.Errorf("Unexpected output: %q", lines)
	}
}

func TestToggleTaskReportsWriteFailure(t *testing.T) {
	clock := core.NewVirtualClock()
	rec := &core.LineRecorder{}
	sched := core.NewScheduler(clock, core.NewConsole(rec.Write))
	gpio := core.NewSimGPIODriver() // pin never configured

	h, err := sched.Spawn(core.TaskConfig{Name: ToggleTaskName, StackSize: 2048}, ToggleTask(gpio, 2, core.MsToTicks(250)))
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	clock.Settle()
	clock.Advance(core.MsToTicks(250))
	h.Delete()
	h.Wait()

	failed := "LED write failed: " + core.ErrPinNotConfigured.Error()
	want := []string{failed, MsgToggle, failed}
	lines := rec.Lines()
	if len(lines) != len(want) {
		t.Fatalf("Expected %q, got %q", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestToggleTaskReportsAfterPeriod(t *testing.T) {
	clock := core.NewVirtualClock()
	rec := &core.LineRecorder{}
	sched := core.NewScheduler(clock, core.NewConsole(rec.Write))
	gpio := core.NewSimGPIODriver()
	if err := gpio.ConfigurePin(2, core.PinConfig{Direction: core.DirectionOutput}); err != nil {
		t.Fatalf("ConfigurePin failed: %v", err)
	}

	h, err := sched.Spawn(core.TaskConfig{Name: ToggleTaskName, StackSize: 2048}, ToggleTask(gpio, 2, core.MsToTicks(250)))
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	defer h.Delete()
	clock.Settle()

	if n := len(gpio.History(2)); n != 1 {
		t.Errorf("Expected the LED written at start, got %d writes", n)
	}
	if lines := rec.Lines(); len(lines) != 0 {
		t.Errorf("Toggle reported before its period elapsed: %q", lines)
	}

	clock.Advance(core.MsToTicks(249))
	if lines := rec.Lines(); len(lines) != 0 {
		t.Errorf("Toggle reported early: %q", lines)
	}

	clock.Advance(core.MsToTicks(1))
	if lines := rec.Lines(); len(lines) != 1 || lines[0] != MsgToggle {
		t.Errorf("Expected one toggle report at 250ms, got %q", lines)
	}
	if n := len(gpio.History(2)); n != 2 {
		t.Errorf("Expected 2 LED writes at 250ms, got %d", n)
	}
}

func TestCounterTaskWraps(t *testing.T) {
	clock := core.NewVirtualClock()
	rec := &core.LineRecorder{}
	sched := core.NewScheduler(clock, core.NewConsole(rec.Write))

	h, err := sched.Spawn(core.TaskConfig{Name: CounterTaskName, StackSize: 2048}, counterTask(core.MsToTicks(1000), 4294967294))
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	clock.Settle()
	clock.Advance(core.MsToTicks(3000))
	h.Delete()
	h.Wait()

	want := []string{CountMessage(4294967294), CountMessage(4294967295), CountMessage(0), CountMessage(1)}
	got := rec.Lines()
	if len(got) != len(want) {
		t.Fatalf("Expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{WaitingMessage(5000), "Waiting 5 sec"},
		{WaitingMessage(1500), "Waiting 1500 ms"},
		{CountMessage(0), "Counter task - counts: 0"},
		{CountMessage(4294967295), "Counter task - counts: 4294967295"},
		{HeapMessage(123456), "Minimum free heap size: 123456 bytes"},
		{MsgCounterDeleted, "counter_task deleted"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, tt.got)
		}
	}
}
