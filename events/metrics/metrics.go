// Package metrics provides an events.Emitter that records Prometheus metrics
// for ShipEngine API calls.
package metrics

import (
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shipengine/shipengine-go/events"
)

// Emitter records request, response and error metrics. It is safe for
// concurrent use.
type Emitter struct {
	requestsTotal   *prometheus.CounterVec
	retriesTotal    *prometheus.CounterVec
	responsesTotal  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
}

var _ events.Emitter = (*Emitter)(nil)

// NewEmitter creates a metrics emitter on the default registerer.
func NewEmitter() *Emitter {
	return NewEmitterWithRegistry(prometheus.DefaultRegisterer)
}

// NewEmitterWithRegistry creates a metrics emitter using the supplied registerer.
func NewEmitterWithRegistry(registry prometheus.Registerer) *Emitter {
	return &Emitter{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipengine_requests_total",
				Help: "Total number of HTTP attempts sent to ShipEngine",
			},
			[]string{"endpoint"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipengine_retries_total",
				Help: "Total number of retried HTTP attempts",
			},
			[]string{"endpoint"},
		),
		responsesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipengine_responses_total",
				Help: "Total number of HTTP responses received from ShipEngine",
			},
			[]string{"endpoint", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shipengine_request_duration_seconds",
				Help:    "Duration of HTTP attempts in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "status_code"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipengine_errors_total",
				Help: "Total number of failed ShipEngine calls",
			},
			[]string{"type", "code"},
		),
	}
}

// OnRequestSent implements events.Emitter.
func (m *Emitter) OnRequestSent(e events.RequestSent) {
	ep := endpoint(e.URL)
	m.requestsTotal.WithLabelValues(ep).Inc()
	if e.RetryAttempt > 0 {
		m.retriesTotal.WithLabelValues(ep).Inc()
	}
}

// OnResponseReceived implements events.Emitter.
func (m *Emitter) OnResponseReceived(e events.ResponseReceived) {
	ep := endpoint(e.URL)
	status := strconv.Itoa(e.StatusCode)
	m.responsesTotal.WithLabelValues(ep, status).Inc()
	m.requestDuration.WithLabelValues(ep, status).Observe(e.Elapsed.Seconds())
}

// OnError implements events.Emitter.
func (m *Emitter) OnError(e events.Error) {
	typ := e.Type
	if typ == "" {
		typ = "transport"
	}
	m.errorsTotal.WithLabelValues(typ, e.Code).Inc()
}

// endpoint reduces a URL to its path so label cardinality stays bounded by
// the API surface rather than by query strings.
func endpoint(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
