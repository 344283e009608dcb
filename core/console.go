package core

import (
	"sync"
	"sync/atomic"
)

// DebugWriter is a function type for writing one line of console output.
// Platforms redirect it to UART, USB CDC or stdout.
type DebugWriter func(string)

// Console serializes diagnostic lines onto a DebugWriter
type Console struct {
	mu      sync.Mutex
	w       DebugWriter
	async   chan string
	dropped uint32
}

// NewConsole wraps w. A nil writer discards output.
func NewConsole(w DebugWriter) *Console {
	if w == nil {
		w = func(string) {}
	}
	return &Console{w: w}
}

// StartAsync moves output onto a background worker with a bounded queue.
// Call once from main before any task is spawned.
func (c *Console) StartAsync(buffer int) {
	if buffer <= 0 {
		buffer = 16
	}
	c.async = make(chan string, buffer)
	go c.outputWorker()
}

// outputWorker runs in background, drains the console channel
func (c *Console) outputWorker() {
	for msg := range c.async {
		c.write(msg)
	}
}

// Println writes one line. In async mode it never blocks and drops the
// line when the queue is full.
func (c *Console) Println(msg string) {
	if c.async == nil {
		c.write(msg)
		return
	}
	select {
	case c.async <- msg:
	default:
		atomic.AddUint32(&c.dropped, 1)
	}
}

func (c *Console) write(msg string) {
	c.mu.Lock()
	c.w(msg)
	c.mu.Unlock()
}

// Dropped returns how many lines the async queue discarded
func (c *Console) Dropped() uint32 {
	return atomic.LoadUint32(&c.dropped)
}

// LineRecorder is a DebugWriter target that keeps every line in memory
type LineRecorder struct {
	mu    sync.Mutex
	lines []string
}

// Write appends a line; pass it to NewConsole as recorder.Write
func (r *LineRecorder) Write(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

// Lines returns a copy of the recorded lines
func (r *LineRecorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}
