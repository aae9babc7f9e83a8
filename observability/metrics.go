// Package observability exposes the delivery engine counters to Prometheus.
package observability

import (
	"chat-courier/contract"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ contract.IMetrics = (*Metrics)(nil)

// Metrics owns its registry; two instances never share counters.
type Metrics struct {
	registry *prometheus.Registry

	persisted        prometheus.Counter
	delivered        prometheus.Counter
	replayed         prometheus.Counter
	ackDropped       prometheus.Counter
	rateLimitHits    prometheus.Counter
	deliveryFailures prometheus.Counter

	processRSS prometheus.Gauge
	processCPU prometheus.Gauge
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
}

func NewMetrics(withRuntimeCollectors bool) *Metrics {
	m := &Metrics{
		registry:         prometheus.NewRegistry(),
		persisted:        newCounter("messages_persisted_total", "Messages durably persisted"),
		delivered:        newCounter("messages_delivered_total", "Live deliveries written to a recipient socket"),
		replayed:         newCounter("replay_count_total", "Messages redelivered by replay"),
		ackDropped:       newCounter("ack_drop_count_total", "Sender acknowledgements that could not be written"),
		rateLimitHits:    newCounter("rate_limit_hits_total", "Frames rejected by the rate limiter"),
		deliveryFailures: newCounter("delivery_failures_total", "Sends refused by backpressure or failed in the transport"),
		processRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "process_heartbeat_rss_bytes", Help: "Resident memory sampled by the heartbeat worker",
		}),
		processCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "process_heartbeat_cpu_percent", Help: "CPU usage sampled by the heartbeat worker",
		}),
	}
	m.registry.MustRegister(
		m.persisted, m.delivered, m.replayed, m.ackDropped,
		m.rateLimitHits, m.deliveryFailures, m.processRSS, m.processCPU,
	)
	if withRuntimeCollectors {
		m.registry.MustRegister(collectors.NewGoCollector())
	}
	return m
}

func (m *Metrics) IncPersisted()       { m.persisted.Inc() }
func (m *Metrics) IncDelivered()       { m.delivered.Inc() }
func (m *Metrics) IncReplay()          { m.replayed.Inc() }
func (m *Metrics) IncAckDrop()         { m.ackDropped.Inc() }
func (m *Metrics) IncRateLimitHit()    { m.rateLimitHits.Inc() }
func (m *Metrics) IncDeliveryFailure() { m.deliveryFailures.Inc() }

func (m *Metrics) ObserveProcess(rssBytes uint64, cpuPercent float64) {
	m.processRSS.Set(float64(rssBytes))
	m.processCPU.Set(cpuPercent)
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
