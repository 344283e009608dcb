package core

import (
	"runtime"
	"sync"
)

// HeapMonitor tracks the lowest free heap seen since boot
type HeapMonitor struct {
	mu      sync.Mutex
	min     uint64
	sampled bool
	read    func(*runtime.MemStats)
}

// NewHeapMonitor creates a monitor backed by runtime.ReadMemStats
func NewHeapMonitor() *HeapMonitor {
	return &HeapMonitor{read: runtime.ReadMemStats}
}

// Sample reads the current free heap and updates the low-water mark
func (h *HeapMonitor) Sample() uint64 {
	var ms runtime.MemStats
	h.read(&ms)

	var free uint64
	if ms.HeapSys > ms.HeapInuse {
		free = ms.HeapSys - ms.HeapInuse
	}

	h.mu.Lock()
	if !h.sampled || free < h.min {
		h.min = free
		h.sampled = true
	}
	h.mu.Unlock()
	return free
}

// MinFree returns the minimum free heap observed, sampling once if needed
func (h *HeapMonitor) MinFree() uint64 {
	h.mu.Lock()
	sampled := h.sampled
	h.mu.Unlock()
	if !sampled {
		h.Sample()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.min
}
