package monitor

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// Monitor feeds console lines through a Checker and Metrics
type Monitor struct {
	checker *Checker
	metrics *Metrics

	// OnEvent is called for every recognised line
	OnEvent func(Event)
	// OnViolation is called for every broken property
	OnViolation func(Violation)
	// OnUnknown is called for lines the demo does not emit
	OnUnknown func(string)

	violations int
}

// New creates a monitor. metrics may be nil.
func New(metrics *Metrics) *Monitor {
	metrics.RecordBoot()
	return &Monitor{
		checker: NewChecker(),
		metrics: metrics,
	}
}

// Violations returns how many violations were seen
func (m *Monitor) Violations() int {
	return m.violations
}

// Checker returns the underlying property checker
func (m *Monitor) Checker() *Checker {
	return m.checker
}

// HandleLine processes one console line
func (m *Monitor) HandleLine(line string) {
	ev, ok := ParseLine(line)
	if !ok {
		if m.OnUnknown != nil && ev.Line != "" {
			m.OnUnknown(ev.Line)
		}
		return
	}

	boots := m.checker.Boots()
	violations := m.checker.Observe(ev)
	if m.checker.Boots() != boots {
		m.metrics.RecordBoot()
	}
	m.metrics.Record(ev, m.checker.CounterRunning(), violations)

	if m.OnEvent != nil {
		m.OnEvent(ev)
	}
	for _, v := range violations {
		m.violations++
		if m.OnViolation != nil {
			m.OnViolation(v)
		}
	}
}

// Run reads lines from r until it ends or ctx is cancelled
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.HandleLine(scanner.Text())
	}

	err := scanner.Err()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ctx.Err()
	}
	return err
}
