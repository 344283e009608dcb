package monitor

import "testing"

func TestParseLine(t *testing.T) {
	testCases := []struct {
		line  string
		kind  EventKind
		value uint64
		ok    bool
	}{
		{"Waiting 5 sec", EventWaiting, 0, true},
		{"One shot task executed and deleted", EventOneShot, 0, true},
		{"Toggle LED\r", EventToggle, 0, true},
		{"Counter task - counts: 17", EventCount, 17, true},
		{"Counter task - counts: 4294967295", EventCount, 4294967295, true},
		{"Counter task - counts: x", EventUnknown, 0, false},
		{"Minimum free heap size: 201344 bytes", EventHeap, 201344, true},
		{"Button pressed", EventButton, 0, true},
		{"counter_task deleted", EventCounterDeleted, 0, true},
		{"GPIO config failed: configure gpio0: boom", EventError, 0, true},
		{"ets Jun  8 2016 00:22:57", EventUnknown, 0, false},
		{"", EventUnknown, 0, false},
	}

	for _, tc := range testCases {
		ev, ok := ParseLine(tc.line)
		if ok != tc.ok {
			t.Errorf("%q: expected ok=%v, got %v", tc.line, tc.ok, ok)
			continue
		}
		if !ok {
			continue
		}
		if ev.Kind != tc.kind || ev.Value != tc.value {
			t.Errorf("%q: expected %v/%d, got %v/%d", tc.line, tc.kind, tc.value, ev.Kind, ev.Value)
		}
	}
}

func TestEventKindString(t *testing.T) {
	if EventCount.String() != "count" || EventKind(200).String() != "unknown" {
		t.Error("Unexpected event kind names")
	}
}
