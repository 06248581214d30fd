package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// Metrics tracks relay statistics as Prometheus collectors
type Metrics struct {
	Delivered    prometheus.Counter
	Failed       *prometheus.CounterVec // outcome: retry, parked
	BreakerState prometheus.Gauge       // 0 closed, 1 half-open, 2 open
	Pending      prometheus.Gauge
	Parked       prometheus.Gauge
}

// NewMetrics creates the relay collectors and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() so runs do not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Delivered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tally",
			Subsystem: "relay",
			Name:      "events_delivered_total",
			Help:      "Outbox events handed to the sink successfully",
		}),
		Failed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tally",
			Subsystem: "relay",
			Name:      "events_failed_total",
			Help:      "Failed delivery attempts by outcome",
		}, []string{"outcome"}),
		BreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tally",
			Subsystem: "relay",
			Name:      "breaker_state",
			Help:      "Sink circuit breaker state (0 closed, 1 half-open, 2 open)",
		}),
		Pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tally",
			Subsystem: "relay",
			Name:      "outbox_pending",
			Help:      "Events waiting in the outbox",
		}),
		Parked: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tally",
			Subsystem: "relay",
			Name:      "outbox_failed",
			Help:      "Events parked as failed in the outbox",
		}),
	}
}

// SetBreakerState records the breaker state as a gauge value
func (m *Metrics) SetBreakerState(s gobreaker.State) {
	switch s {
	case gobreaker.StateClosed:
		m.BreakerState.Set(0)
	case gobreaker.StateHalfOpen:
		m.BreakerState.Set(1)
	case gobreaker.StateOpen:
		m.BreakerState.Set(2)
	}
}
