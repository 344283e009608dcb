package monitor

import (
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics exports console events as Prometheus collectors
type Metrics struct {
	counterValue   prom.Gauge
	counterRunning prom.Gauge
	ledToggles     prom.Counter
	buttonPresses  prom.Counter
	minFreeHeap    prom.Gauge
	boots          prom.Counter
	errorLines     prom.Counter
	violations     *prom.CounterVec
}

// NewMetrics creates and registers the collectors
func NewMetrics(namespace string, reg prom.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "gpiotask"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	m := &Metrics{
		counterValue: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "counter_value",
			Help:      "Last value reported by the counter task.",
		}),
		counterRunning: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "counter_running",
			Help:      "1 while the counter task is alive, 0 after it is deleted.",
		}),
		ledToggles: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "led_toggles_total",
			Help:      "Total number of LED toggles reported.",
		}),
		buttonPresses: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "button_presses_total",
			Help:      "Total number of polls that saw the button pressed.",
		}),
		minFreeHeap: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "min_free_heap_bytes",
			Help:      "Minimum free heap reported at startup.",
		}),
		boots: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "boots_total",
			Help:      "Total number of board boots observed.",
		}),
		errorLines: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of failure lines reported by the board.",
		}),
		violations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Total number of task lifecycle property violations.",
		}, []string{"kind"}),
	}

	var err error
	if m.counterValue, err = registerCollector(reg, m.counterValue); err != nil {
		return nil, err
	}
	if m.counterRunning, err = registerCollector(reg, m.counterRunning); err != nil {
		return nil, err
	}
	if m.ledToggles, err = registerCollector(reg, m.ledToggles); err != nil {
		return nil, err
	}
	if m.buttonPresses, err = registerCollector(reg, m.buttonPresses); err != nil {
		return nil, err
	}
	if m.minFreeHeap, err = registerCollector(reg, m.minFreeHeap); err != nil {
		return nil, err
	}
	if m.boots, err = registerCollector(reg, m.boots); err != nil {
		return nil, err
	}
	if m.errorLines, err = registerCollector(reg, m.errorLines); err != nil {
		return nil, err
	}
	if m.violations, err = registerCollector(reg, m.violations); err != nil {
		return nil, err
	}
	return m, nil
}

// Record updates the collectors for one event and its violations
func (m *Metrics) Record(ev Event, running bool, violations []Violation) {
	if m == nil {
		return
	}

	switch ev.Kind {
	case EventCount:
		m.counterValue.Set(float64(ev.Value))
	case EventToggle:
		m.ledToggles.Inc()
	case EventButton:
		m.buttonPresses.Inc()
	case EventHeap:
		m.minFreeHeap.Set(float64(ev.Value))
	case EventError:
		m.errorLines.Inc()
	}

	if running {
		m.counterRunning.Set(1)
	} else {
		m.counterRunning.Set(0)
	}

	for _, v := range violations {
		m.violations.WithLabelValues(string(v.Kind)).Inc()
	}
}

// RecordBoot counts a board boot
func (m *Metrics) RecordBoot() {
	if m == nil {
		return
	}
	m.boots.Inc()
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
