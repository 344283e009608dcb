package monitor

import (
	"fmt"
	"math"
)

// ViolationKind names a broken lifecycle property
type ViolationKind string

const (
	ViolationCountSequence    ViolationKind = "count_sequence"
	ViolationCountAfterDelete ViolationKind = "count_after_delete"
	ViolationOneShotRepeat    ViolationKind = "one_shot_repeat"
	ViolationDeleteRepeat     ViolationKind = "delete_repeat"
)

// Violation is one observed breach of a property
type Violation struct {
	Kind   ViolationKind
	Detail string
	Line   string
}

func (v Violation) String() string {
	return string(v.Kind) + ": " + v.Detail
}

// Checker tracks one boot of the board and validates:
// counts start at 0 and grow by one, nothing is counted after the
// counter task is deleted, the one-shot task and the delete happen once.
// A boot prints two wait messages, so a third one, or any wait message
// after tasks have started, is taken as a reboot.
type Checker struct {
	nextCount uint64
	deleted   bool
	oneShots  int
	waits     int
	started   bool
	boots     int
}

// bootWaits is the number of wait messages printed during startup
const bootWaits = 2

// NewChecker creates a checker expecting a fresh boot
func NewChecker() *Checker {
	return &Checker{boots: 1}
}

// Reset forgets everything seen since the last boot
func (c *Checker) Reset() {
	*c = Checker{boots: c.boots + 1}
}

// Boots returns how many boots have been observed
func (c *Checker) Boots() int {
	return c.boots
}

// CounterRunning reports whether the counter task is believed alive
func (c *Checker) CounterRunning() bool {
	return c.started && !c.deleted
}

// Observe feeds one event and returns the properties it broke
func (c *Checker) Observe(ev Event) []Violation {
	var out []Violation
	violate := func(kind ViolationKind, detail string) {
		out = append(out, Violation{Kind: kind, Detail: detail, Line: ev.Line})
	}

	switch ev.Kind {
	case EventWaiting:
		if c.started || c.waits >= bootWaits {
			c.Reset()
		}
		c.waits++

	case EventOneShot:
		c.oneShots++
		if c.oneShots > 1 {
			violate(ViolationOneShotRepeat, fmt.Sprintf("one-shot ran %d times", c.oneShots))
		}

	case EventToggle:
		c.started = true

	case EventCount:
		c.started = true
		if c.deleted {
			violate(ViolationCountAfterDelete, fmt.Sprintf("count %d after counter_task deleted", ev.Value))
		} else if ev.Value != c.nextCount {
			violate(ViolationCountSequence, fmt.Sprintf("expected count %d, got %d", c.nextCount, ev.Value))
		}
		c.nextCount = (ev.Value + 1) & math.MaxUint32

	case EventCounterDeleted:
		if c.deleted {
			violate(ViolationDeleteRepeat, "counter_task deleted twice")
		}
		c.deleted = true
	}
	return out
}
