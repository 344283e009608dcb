package core

import (
	"runtime"
	"testing"
)

func TestHeapMonitorTracksMinimum(t *testing.T) {
	samples := []struct{ sys, inuse uint64 }{
		{1000, 200},
		{1000, 700},
		{1000, 400},
		{100, 500}, // inuse above sys reads as zero free
	}
	i := 0
	h := &HeapMonitor{read: func(ms *runtime.MemStats) {
		ms.HeapSys = samples[i].sys
		ms.HeapInuse = samples[i].inuse
		i++
	}}

	if free := h.Sample(); free != 800 {
		t.Errorf("Expected 800 free, got %d", free)
	}
	h.Sample()
	h.Sample()
	if low := h.MinFree(); low != 300 {
		t.Errorf("Expected minimum 300, got %d", low)
	}
	h.Sample()
	if low := h.MinFree(); low != 0 {
		t.Errorf("Expected minimum 0, got %d", low)
	}
}

func TestHeapMonitorSamplesOnFirstRead(t *testing.T) {
	h := NewHeapMonitor()
	h.MinFree()
	if !h.sampled {
		t.Error("MinFree did not take a sample")
	}
}
