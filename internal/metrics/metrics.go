// Package metrics holds the Prometheus collectors for delivery outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

type Collector struct {
	registry   *prometheus.Registry
	deliveries *prometheus.CounterVec
	dispatches prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notify_relay",
			Name:      "deliveries_total",
			Help:      "Delivery attempts by party, channel and outcome.",
		}, []string{"party", "channel", "outcome"}),
		dispatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notify_relay",
			Name:      "match_dispatches_total",
			Help:      "Match notification requests that passed validation.",
		}),
	}
	c.registry.MustRegister(c.deliveries, c.dispatches)
	return c
}

// ObserveDelivery counts one settled attempt. party is "farmer", "recipient"
// or "direct"/"test" for single sends.
func (c *Collector) ObserveDelivery(party, channel string, err error) {
	if c == nil {
		return
	}
	outcome := OutcomeSent
	if err != nil {
		outcome = OutcomeFailed
	}
	c.deliveries.WithLabelValues(party, channel, outcome).Inc()
}

func (c *Collector) ObserveDispatch() {
	if c == nil {
		return
	}
	c.dispatches.Inc()
}

func (c *Collector) Deliveries(party, channel, outcome string) prometheus.Counter {
	return c.deliveries.WithLabelValues(party, channel, outcome)
}

func (c *Collector) Dispatches() prometheus.Counter {
	return c.dispatches
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
