package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portal"

// Metrics holds every collector the portal exports.
// All methods are safe to call on a nil *Metrics, which disables collection.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries       *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec

	flowRedirects   *prometheus.CounterVec
	flowTransitions *prometheus.CounterVec
	slotFetches     *prometheus.CounterVec
	staleResponses  *prometheus.CounterVec
}

// New registers the collectors on the default registry, which is what promhttp.Handler serves.
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors on reg.
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests handled by the portal",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "queries_total",
			Help:        "Total database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		dbIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "opsapi",
			Name:        "calls_total",
			Help:        "Calls to the operations API by endpoint and outcome",
			ConstLabels: constLabels,
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "opsapi",
			Name:        "call_duration_seconds",
			Help:        "Latency of operations API calls",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint"}),
		flowRedirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking_flow",
			Name:        "redirects_total",
			Help:        "Step entries redirected to an earlier step",
			ConstLabels: constLabels,
		}, []string{"requested", "redirect_to"}),
		flowTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking_flow",
			Name:        "transitions_total",
			Help:        "Completed step transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		slotFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "slots",
			Name:        "fetches_total",
			Help:        "Slot availability fetches by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		staleResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "slots",
			Name:        "stale_responses_total",
			Help:        "Slot responses discarded because a newer date was selected",
			ConstLabels: constLabels,
		}, []string{}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbQueryDuration, m.dbOpenConns, m.dbInUseConns, m.dbIdleConns,
		m.upstreamCalls, m.upstreamDuration,
		m.flowRedirects, m.flowTransitions, m.slotFetches, m.staleResponses,
	)
	return m
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveQuery(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) SetPoolStats(pool string, open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(pool).Set(float64(open))
	m.dbInUseConns.WithLabelValues(pool).Set(float64(inUse))
	m.dbIdleConns.WithLabelValues(pool).Set(float64(idle))
}

func (m *Metrics) ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRedirect(requested, redirectTo string) {
	if m == nil {
		return
	}
	m.flowRedirects.WithLabelValues(requested, redirectTo).Inc()
}

func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.flowTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveSlotFetch(outcome string) {
	if m == nil {
		return
	}
	m.slotFetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveStaleResponse() {
	if m == nil {
		return
	}
	m.staleResponses.WithLabelValues().Inc()
}
