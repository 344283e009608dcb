package demo

import "gpiotask/core"

// Task names
const (
	SupervisorTaskName = "supervisor"
	OneShotTaskName    = "one_shot_task"
	ToggleTaskName     = "led_toggle_task"
	CounterTaskName    = "counter_task"
)

// Console lines emitted by the demo. The host monitor parses these.
const (
	MsgWaitingPrefix  = "Waiting "
	MsgOneShot        = "One shot task executed and deleted"
	MsgToggle         = "Toggle LED"
	MsgCountPrefix    = "Counter task - counts: "
	MsgHeapPrefix     = "Minimum free heap size: "
	MsgHeapSuffix     = " bytes"
	MsgButtonPressed  = "Button pressed"
	MsgCounterDeleted = CounterTaskName + " deleted"
)

// WaitingMessage announces a startup delay, in seconds when whole
func WaitingMessage(ms uint32) string {
	if ms%1000 == 0 {
		return MsgWaitingPrefix + core.FormatUint(uint64(ms/1000)) + " sec"
	}
	return MsgWaitingPrefix + core.FormatUint(uint64(ms)) + " ms"
}

// CountMessage reports one counter value
func CountMessage(n uint32) string {
	return MsgCountPrefix + core.FormatUint(uint64(n))
}

// HeapMessage reports the minimum free heap
func HeapMessage(bytes uint64) string {
	return MsgHeapPrefix + core.FormatUint(bytes) + MsgHeapSuffix
}
