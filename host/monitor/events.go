// Package monitor follows a board's console output, checks the demo's
// task lifecycle properties and exports what it sees as metrics.
package monitor

import (
	"strconv"
	"strings"

	"gpiotask/demo"
)

// EventKind classifies one console line
type EventKind uint8

const (
	EventUnknown EventKind = iota
	EventWaiting
	EventOneShot
	EventToggle
	EventCount
	EventHeap
	EventButton
	EventCounterDeleted
	EventError
)

var eventNames = [...]string{
	EventUnknown:        "unknown",
	EventWaiting:        "waiting",
	EventOneShot:        "one_shot",
	EventToggle:         "toggle",
	EventCount:          "count",
	EventHeap:           "heap",
	EventButton:         "button",
	EventCounterDeleted: "counter_deleted",
	EventError:          "error",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a parsed console line
type Event struct {
	Kind  EventKind
	Value uint64 // Counter value or heap bytes
	Line  string
}

// ParseLine classifies a console line. It returns false for lines the
// demo does not emit.
func ParseLine(line string) (Event, bool) {
	line = strings.TrimRight(line, "\r\n ")
	ev := Event{Line: line}

	switch {
	case line == demo.MsgOneShot:
		ev.Kind = EventOneShot
	case line == demo.MsgToggle:
		ev.Kind = EventToggle
	case line == demo.MsgButtonPressed:
		ev.Kind = EventButton
	case line == demo.MsgCounterDeleted:
		ev.Kind = EventCounterDeleted
	case strings.HasPrefix(line, demo.MsgWaitingPrefix):
		ev.Kind = EventWaiting
	case strings.HasPrefix(line, demo.MsgCountPrefix):
		v, err := strconv.ParseUint(strings.TrimPrefix(line, demo.MsgCountPrefix), 10, 32)
		if err != nil {
			return ev, false
		}
		ev.Kind = EventCount
		ev.Value = v
	case strings.HasPrefix(line, demo.MsgHeapPrefix) && strings.HasSuffix(line, demo.MsgHeapSuffix):
		digits := strings.TrimSuffix(strings.TrimPrefix(line, demo.MsgHeapPrefix), demo.MsgHeapSuffix)
		v, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return ev, false
		}
		ev.Kind = EventHeap
		ev.Value = v
	case strings.Contains(line, " failed: "):
		ev.Kind = EventError
	default:
		return ev, false
	}
	return ev, true
}
