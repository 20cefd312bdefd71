package observability

import (
	"fmt"

	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mockcoach"

// Metrics holds the Prometheus collectors fed by Hooks.
type Metrics struct {
	Callbacks *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Windows   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Callbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "callbacks_total",
				Help:      "Total number of callbacks run, by track and outcome",
			},
			[]string{"track", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "callback_duration_seconds",
				Help:      "Duration of callback executions",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"track"},
		),
		Windows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "windows_total",
				Help:      "Total number of continuation windows opened and closed, by track",
			},
			[]string{"track", "event"},
		),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Callbacks, m.Duration, m.Windows} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCallbackFinish: func(e *domain.CallbackEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "failed"
			}
			m.Callbacks.WithLabelValues(string(e.Track), outcome).Inc()
			m.Duration.WithLabelValues(string(e.Track)).Observe(e.Duration.Seconds())
		},
		OnWindowOpen: func(e *domain.WindowEvent) {
			m.Windows.WithLabelValues(string(e.Track), "open").Inc()
		},
		OnWindowClose: func(e *domain.WindowEvent) {
			m.Windows.WithLabelValues(string(e.Track), "close").Inc()
		},
	}
}
