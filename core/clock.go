package core

import (
	"runtime"
	"time"
)

// Ticks is the RTOS time unit used for delays
type Ticks uint32

// TickPeriod is the wall-clock length of one tick
const TickPeriod = time.Millisecond

// MsToTicks converts milliseconds to ticks
func MsToTicks(ms uint32) Ticks {
	return Ticks(ms / uint32(TickPeriod/time.Millisecond))
}

// Duration converts ticks to a time.Duration
func (t Ticks) Duration() time.Duration {
	return time.Duration(t) * TickPeriod
}

// Clock is the delay primitive tasks suspend on
type Clock interface {
	// Now returns ticks since the clock started
	Now() Ticks

	// Sleep blocks for d ticks. It returns false if abort was closed first.
	// A zero delay only yields.
	Sleep(d Ticks, abort <-chan struct{}) bool
}

// tracker is implemented by clocks that must know which goroutines
// participate in scheduling so they can detect when all are blocked.
type tracker interface {
	enter()
	leave()
	cancel(abort <-chan struct{})
}

// SystemClock runs delays against wall time
type SystemClock struct {
	boot time.Time

	// Speedup divides every delay, for host simulation. 0 or 1 = real time.
	Speedup uint32
}

// NewSystemClock creates a clock starting at zero ticks now
func NewSystemClock() *SystemClock {
	return &SystemClock{boot: time.Now()}
}

func (c *SystemClock) Now() Ticks {
	elapsed := time.Since(c.boot)
	if c.Speedup > 1 {
		elapsed *= time.Duration(c.Speedup)
	}
	return Ticks(elapsed / TickPeriod)
}

func (c *SystemClock) Sleep(d Ticks, abort <-chan struct{}) bool {
	if d == 0 {
		select {
		case <-abort:
			return false
		default:
		}
		runtime.Gosched()
		return true
	}

	wait := d.Duration()
	if c.Speedup > 1 {
		wait /= time.Duration(c.Speedup)
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-abort:
		return false
	}
}
