package core

import "testing"

func newTestScheduler() (*Scheduler, *VirtualClock, *LineRecorder) {
	clock := NewVirtualClock()
	rec := &LineRecorder{}
	return NewScheduler(clock, NewConsole(rec.Write)), clock, rec
}

func TestVirtualClockAdvanceWithoutSleepers(t *testing.T) {
	clock := NewVirtualClock()
	clock.Advance(1500)
	if now := clock.Now(); now != 1500 {
		t.Errorf("Expected now=1500, got %d", now)
	}
}

func TestVirtualClockWakeOrder(t *testing.T) {
	sched, clock, rec := newTestScheduler()

	sleeper := func(name string, d Ticks) TaskFunc {
		return func(t *Task) {
			t.Delay(d)
			t.Println(name)
		}
	}
	sched.Spawn(TaskConfig{Name: "c", StackSize: 1}, sleeper("c", 300))
	clock.Settle()
	sched.Spawn(TaskConfig{Name: "a", StackSize: 1}, sleeper("a", 100))
	clock.Settle()
	sched.Spawn(TaskConfig{Name: "b1", StackSize: 1}, sleeper("b1", 200))
	clock.Settle()
	sched.Spawn(TaskConfig{Name: "b2", StackSize: 1}, sleeper("b2", 200))
	clock.Settle()

	if n := clock.Pending(); n != 4 {
		t.Fatalf("Expected 4 sleepers, got %d", n)
	}

	clock.Advance(250)
	lines := rec.Lines()
	want := []string{"a", "b1", "b2"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %q, got %q", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Wake %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	clock.Advance(50)
	if lines := rec.Lines(); len(lines) != 4 || lines[3] != "c" {
		t.Errorf("Expected c at 300, got %q", lines)
	}
	if n := sched.NumTasks(); n != 0 {
		t.Errorf("Expected all tasks finished, got %d", n)
	}
}

func TestVirtualClockNowInsideTask(t *testing.T) {
	sched, clock, rec := newTestScheduler()

	sched.Spawn(TaskConfig{Name: "ticker", StackSize: 1}, func(t *Task) {
		for {
			t.Delay(100)
			t.Println(FormatUint(uint64(sched.Clock().Now())))
		}
	})
	clock.Settle()
	clock.Advance(350)

	lines := rec.Lines()
	want := []string{"100", "200", "300"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %q, got %q", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Tick %d: expected %s, got %s", i, want[i], lines[i])
		}
	}
	if now := clock.Now(); now != 350 {
		t.Errorf("Expected now=350, got %d", now)
	}
}

func TestVirtualClockZeroDelayYields(t *testing.T) {
	sched, clock, rec := newTestScheduler()

	sched.Spawn(TaskConfig{Name: "yield", StackSize: 1}, func(t *Task) {
		t.Delay(0)
		t.Println("after yield")
	})
	clock.Settle()

	if lines := rec.Lines(); len(lines) != 1 {
		t.Errorf("Zero delay should not wait for Advance, got %q", lines)
	}
}
