package core

import (
	"runtime"
	"sync"
)

// MaxPriority is the highest task priority accepted by Spawn
const MaxPriority = 24

// TaskFunc is the body of a task. It receives its own task identity.
type TaskFunc func(t *Task)

// TaskConfig describes a task at creation time.
// StackSize and Priority are recorded for diagnostics; goroutines grow
// their own stacks and the Go scheduler treats all tasks as equal priority.
type TaskConfig struct {
	Name      string
	StackSize uint32
	Priority  uint8
}

// Validate checks the creation parameters
func (c TaskConfig) Validate() error {
	if c.Name == "" || c.StackSize == 0 || c.Priority > MaxPriority {
		return ErrInvalidTaskConfig
	}
	return nil
}

// TaskState is the lifecycle state of a task
type TaskState uint8

const (
	TaskRunning TaskState = iota
	TaskDeleted
)

func (s TaskState) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// TaskInfo is a snapshot of one task for diagnostics
type TaskInfo struct {
	Name      string
	StackSize uint32
	Priority  uint8
	State     TaskState
}

// Task is an independently scheduled unit of execution
type Task struct {
	cfg   TaskConfig
	sched *Scheduler

	mu      sync.Mutex
	deleted bool
	kill    chan struct{} // Closed on deletion
	done    chan struct{} // Closed when the goroutine has exited
}

// Name returns the task name
func (t *Task) Name() string {
	return t.cfg.Name
}

// Delay suspends the task for d ticks.
// A deleted task never returns from Delay.
func (t *Task) Delay(d Ticks) {
	if !t.sched.clock.Sleep(d, t.kill) || t.isDeleted() {
		runtime.Goexit()
	}
}

// Println emits a console line on behalf of the task.
// Once the task is deleted nothing more is emitted and the call does not return.
func (t *Task) Println(msg string) {
	t.mu.Lock()
	if t.deleted {
		t.mu.Unlock()
		runtime.Goexit()
	}
	t.sched.console.Println(msg)
	t.mu.Unlock()
}

// DeleteSelf terminates the calling task. It does not return.
func (t *Task) DeleteSelf() {
	t.markDeleted()
	runtime.Goexit()
}

func (t *Task) isDeleted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleted
}

// markDeleted flips the task to deleted, reporting whether this call did it
func (t *Task) markDeleted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deleted {
		return false
	}
	t.deleted = true
	close(t.kill)
	return true
}

func (t *Task) info() TaskInfo {
	state := TaskRunning
	if t.isDeleted() {
		state = TaskDeleted
	}
	return TaskInfo{
		Name:      t.cfg.Name,
		StackSize: t.cfg.StackSize,
		Priority:  t.cfg.Priority,
		State:     state,
	}
}

// TaskHandle lets a third party terminate a running task
type TaskHandle struct {
	task *Task
}

// Name returns the name of the task behind the handle
func (h *TaskHandle) Name() string {
	return h.task.cfg.Name
}

// Delete terminates the task immediately. The task gets no chance to run
// further body code. Deleting twice returns ErrTaskDeleted.
func (h *TaskHandle) Delete() error {
	if h == nil || h.task == nil {
		return ErrNilHandle
	}
	if !h.task.markDeleted() {
		return ErrTaskDeleted
	}
	if tr, ok := h.task.sched.clock.(tracker); ok {
		tr.cancel(h.task.kill)
	}
	return nil
}

// Deleted reports whether the task has been deleted
func (h *TaskHandle) Deleted() bool {
	return h.task.isDeleted()
}

// Wait blocks until the task's goroutine has exited
func (h *TaskHandle) Wait() {
	<-h.task.done
}

// Scheduler creates tasks on top of a Clock and a Console
type Scheduler struct {
	clock   Clock
	console *Console

	mu    sync.Mutex
	tasks []*Task
}

// NewScheduler creates a scheduler using clock for delays and console for output
func NewScheduler(clock Clock, console *Console) *Scheduler {
	return &Scheduler{clock: clock, console: console}
}

// Clock returns the clock tasks sleep on
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Console returns the console tasks print to
func (s *Scheduler) Console() *Console {
	return s.console
}

// Spawn starts fn as a new task. A body that returns is treated as
// having deleted itself.
func (s *Scheduler) Spawn(cfg TaskConfig, fn TaskFunc) (*TaskHandle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Task{
		cfg:   cfg,
		sched: s,
		kill:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	tr, tracked := s.clock.(tracker)
	if tracked {
		// Count the task before it starts so a virtual clock cannot
		// advance past its first instructions
		tr.enter()
	}

	go func() {
		defer func() {
			t.markDeleted()
			s.remove(t)
			close(t.done)
			if tracked {
				tr.leave()
			}
		}()
		fn(t)
	}()

	return &TaskHandle{task: t}, nil
}

func (s *Scheduler) remove(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.tasks {
		if cur == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// Tasks returns a snapshot of every task whose goroutine is still alive
func (s *Scheduler) Tasks() []TaskInfo {
	s.mu.Lock()
	tasks := make([]*Task, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()

	infos := make([]TaskInfo, 0, len(tasks))
	for _, t := range tasks {
		infos = append(infos, t.info())
	}
	return infos
}

// NumTasks returns the number of live tasks
func (s *Scheduler) NumTasks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
