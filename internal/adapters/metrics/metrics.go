// Package metrics records serving counters with Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements ports.Metrics on a private registry.
type Prometheus struct {
	registry  *prometheus.Registry
	hits      prometheus.Counter
	userAgent *prometheus.CounterVec
	response  prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "polyfill_hits_total",
			Help: "Number of bundles served.",
		}),
		userAgent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyfill_useragent_total",
				Help: "Number of bundles served by normalized runtime family and major version.",
			},
			[]string{"family", "major"},
		),
		response: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "polyfill_response_seconds",
			Help:    "Time taken to build a bundle.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	p.registry.MustRegister(p.hits, p.userAgent, p.response)
	return p
}

// ObserveRequest records one served bundle.
func (p *Prometheus) ObserveRequest(family string, major int, seconds float64) {
	p.hits.Inc()
	p.userAgent.WithLabelValues(family, strconv.Itoa(major)).Inc()
	p.response.Observe(seconds)
}

// Handler exposes the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
