package demo

import (
	"sync/atomic"

	"gpiotask/core"
)

// ButtonPressedLevel is the level read while the button is held.
// The input is pulled up, so a press pulls it low.
const ButtonPressedLevel = core.LevelLow

// Supervisor configures the pins, launches the demo tasks and cancels
// the counter task on the first button press.
type Supervisor struct {
	cfg   Config
	gpio  core.GPIODriver
	sched *core.Scheduler
	heap  *core.HeapMonitor

	// counter is nil once the counter task has been deleted.
	// Only the supervisor task touches it; counterAlive mirrors it for readers.
	counter      *core.TaskHandle
	counterAlive atomic.Bool
	presses      atomic.Uint32

	handle *core.TaskHandle
	err    error
}

// NewSupervisor creates a supervisor; it does nothing until Run
func NewSupervisor(cfg Config, gpio core.GPIODriver, sched *core.Scheduler, heap *core.HeapMonitor) *Supervisor {
	if heap == nil {
		heap = core.NewHeapMonitor()
	}
	return &Supervisor{
		cfg:   cfg,
		gpio:  gpio,
		sched: sched,
		heap:  heap,
	}
}

// Start validates cfg and spawns the supervisor as its own task
func Start(sched *core.Scheduler, gpio core.GPIODriver, cfg Config) (*Supervisor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := NewSupervisor(cfg, gpio, sched, core.NewHeapMonitor())
	h, err := sched.Spawn(cfg.taskConfig(SupervisorTaskName), func(t *core.Task) {
		s.err = s.Run(t)
	})
	if err != nil {
		return nil, err
	}
	s.handle = h
	return s, nil
}

// Handle returns the supervisor's own task handle when started with Start
func (s *Supervisor) Handle() *core.TaskHandle {
	return s.handle
}

// Wait blocks until the supervisor task exits and returns its setup error.
// The loop never ends on its own, so this only returns after a setup
// failure or after the supervisor task is deleted.
func (s *Supervisor) Wait() error {
	s.handle.Wait()
	return s.err
}

// Presses returns how many polls saw the button held.
// Safe to call from any goroutine.
func (s *Supervisor) Presses() uint32 {
	return s.presses.Load()
}

// CounterRunning reports whether the counter handle is still held.
// Safe to call from any goroutine.
func (s *Supervisor) CounterRunning() bool {
	return s.counterAlive.Load()
}

// Run executes the startup sequence and then polls the button forever.
// It only returns when setup fails.
func (s *Supervisor) Run(t *core.Task) error {
	if err := s.configureGPIO(); err != nil {
		t.Println("GPIO config failed: " + err.Error())
		return err
	}

	startup := core.MsToTicks(s.cfg.StartupDelayMs)

	t.Println(WaitingMessage(s.cfg.StartupDelayMs))
	t.Delay(startup)

	if _, err := s.spawn(t, OneShotTaskName, OneShotTask()); err != nil {
		return err
	}

	t.Println(WaitingMessage(s.cfg.StartupDelayMs))
	t.Delay(startup)

	toggle := ToggleTask(s.gpio, s.cfg.LEDPin, core.MsToTicks(s.cfg.LEDPeriodMs))
	if _, err := s.spawn(t, ToggleTaskName, toggle); err != nil {
		return err
	}

	counter, err := s.spawn(t, CounterTaskName, CounterTask(core.MsToTicks(s.cfg.CounterPeriodMs)))
	if err != nil {
		return err
	}
	s.counter = counter
	s.counterAlive.Store(true)

	t.Println(HeapMessage(s.heap.MinFree()))

	poll := core.MsToTicks(s.cfg.PollIntervalMs)
	for {
		t.Delay(poll)
		s.heap.Sample()
		s.Poll(t)
	}
}

// configureGPIO applies the output group, then the input group
func (s *Supervisor) configureGPIO() error {
	if err := core.ConfigureGPIO(s.gpio, s.cfg.OutputConfig()); err != nil {
		return err
	}
	return core.ConfigureGPIO(s.gpio, s.cfg.InputConfig())
}

func (s *Supervisor) spawn(t *core.Task, name string, fn core.TaskFunc) (*core.TaskHandle, error) {
	h, err := s.sched.Spawn(s.cfg.taskConfig(name), fn)
	if err != nil {
		t.Println("task create failed: " + name + ": " + err.Error())
		return nil, err
	}
	return h, nil
}

// Poll reads the button once and deletes the counter task on a press.
// Repeat presses only report the press.
func (s *Supervisor) Poll(t *core.Task) {
	level, err := s.gpio.GetPin(s.cfg.ButtonPin)
	if err != nil {
		t.Println("button read failed: " + err.Error())
		return
	}
	if level != ButtonPressedLevel {
		return
	}

	s.presses.Add(1)
	t.Println(MsgButtonPressed)

	if s.counter == nil {
		return
	}
	if err := s.counter.Delete(); err != nil {
		t.Println(CounterTaskName + " delete failed: " + err.Error())
	} else {
		t.Println(MsgCounterDeleted)
	}
	s.counter = nil
	s.counterAlive.Store(false)
}
