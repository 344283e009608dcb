package core

import "sync"

// Timer is a pending wakeup in the virtual timer list
type Timer struct {
	WakeTime Ticks
	Next     *Timer

	wake  chan struct{}
	abort <-chan struct{}
}

// VirtualClock is a deterministic Clock for tests and simulation.
// Time only moves in Advance, which fires due timers one at a time and
// waits until every tracked goroutine is blocked again before continuing.
// Only goroutines started through a Scheduler may Sleep on it.
type VirtualClock struct {
	mu        sync.Mutex
	idle      *sync.Cond
	now       Ticks
	timerList *Timer
	running   int
}

// NewVirtualClock creates a clock at tick zero
func NewVirtualClock() *VirtualClock {
	c := &VirtualClock{}
	c.idle = sync.NewCond(&c.mu)
	return c
}

func (c *VirtualClock) Now() Ticks {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *VirtualClock) Sleep(d Ticks, abort <-chan struct{}) bool {
	if d == 0 {
		select {
		case <-abort:
			return false
		default:
			return true
		}
	}

	c.mu.Lock()
	t := &Timer{WakeTime: c.now + d, wake: make(chan struct{}), abort: abort}
	c.insertTimer(t)
	c.running--
	c.idle.Broadcast()
	c.mu.Unlock()

	select {
	case <-t.wake:
		// Advance already counted us as running
		return true
	case <-abort:
		c.mu.Lock()
		if c.removeTimer(t) {
			c.running++
		}
		c.mu.Unlock()
		return false
	}
}

// insertTimer inserts a timer in sorted order by WakeTime.
// Equal wake times keep insertion order.
func (c *VirtualClock) insertTimer(t *Timer) {
	if c.timerList == nil || t.WakeTime < c.timerList.WakeTime {
		t.Next = c.timerList
		c.timerList = t
		return
	}

	current := c.timerList
	for current.Next != nil && current.Next.WakeTime <= t.WakeTime {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// removeTimer unlinks t, reporting whether it was still pending
func (c *VirtualClock) removeTimer(t *Timer) bool {
	link := &c.timerList
	for *link != nil {
		if *link == t {
			*link = t.Next
			t.Next = nil
			return true
		}
		link = &(*link).Next
	}
	return false
}

// Advance moves time forward by d, waking sleepers in wake-time order
func (c *VirtualClock) Advance(d Ticks) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.now + d
	for {
		c.waitIdle()

		t := c.timerList
		if t == nil || t.WakeTime > target {
			c.now = target
			return
		}

		c.timerList = t.Next
		t.Next = nil // Clear Next pointer to avoid stale links
		if t.WakeTime > c.now {
			c.now = t.WakeTime
		}
		c.running++
		close(t.wake)
	}
}

// Settle blocks until every tracked goroutine is sleeping or gone
func (c *VirtualClock) Settle() {
	c.mu.Lock()
	c.waitIdle()
	c.mu.Unlock()
}

// Pending returns the number of sleeping goroutines
func (c *VirtualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for t := c.timerList; t != nil; t = t.Next {
		n++
	}
	return n
}

// cancel wakes the sleeper whose abort channel is ch and counts it as
// running, so Advance waits for it to finish exiting
func (c *VirtualClock) cancel(ch <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for t := c.timerList; t != nil; t = t.Next {
		if t.abort == ch {
			c.removeTimer(t)
			c.running++
			return
		}
	}
}

func (c *VirtualClock) waitIdle() {
	for c.running > 0 {
		c.idle.Wait()
	}
}

func (c *VirtualClock) enter() {
	c.mu.Lock()
	c.running++
	c.mu.Unlock()
}

func (c *VirtualClock) leave() {
	c.mu.Lock()
	c.running--
	c.idle.Broadcast()
	c.mu.Unlock()
}
