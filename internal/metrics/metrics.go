// Package metrics defines the Prometheus instruments for the Trip Ledger API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument. A nil *Metrics is valid and records nothing,
// so services and middleware can be constructed without one in tests.
type Metrics struct {
	registry *prometheus.Registry

	TripsCreated     prometheus.Counter
	TripsDeleted     prometheus.Counter
	ExpensesCreated  prometheus.Counter
	ExpensesCascaded prometheus.Counter

	// OperationDuration is labelled by service operation and outcome
	// ("ok", "validation", "not_found", "error").
	OperationDuration *prometheus.HistogramVec

	// HTTPRequests is labelled by method, route pattern, and status code.
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates a private registry and registers every instrument on it,
// together with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TripsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_trips_created_total",
			Help: "Total number of trips created",
		}),
		TripsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_trips_deleted_total",
			Help: "Total number of trips deleted",
		}),
		ExpensesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_expenses_created_total",
			Help: "Total number of expenses created",
		}),
		ExpensesCascaded: f.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_expenses_cascade_deleted_total",
			Help: "Total number of expenses removed together with their trip",
		}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripledger_operation_duration_seconds",
			Help:    "Duration of service operations by operation and outcome",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation", "outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tripledger_http_requests_total",
			Help: "Total HTTP requests by method, route, and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripledger_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// IncTripsCreated records a successful trip creation.
func (m *Metrics) IncTripsCreated() {
	if m != nil {
		m.TripsCreated.Inc()
	}
}

// IncTripsDeleted records a committed trip deletion and the expenses it took with it.
func (m *Metrics) IncTripsDeleted(expenses int64) {
	if m != nil {
		m.TripsDeleted.Inc()
		m.ExpensesCascaded.Add(float64(expenses))
	}
}

// IncExpensesCreated records a successful expense creation.
func (m *Metrics) IncExpensesCreated() {
	if m != nil {
		m.ExpensesCreated.Inc()
	}
}

// ObserveOperation records how long a service operation took.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveOperation(operation, outcome string, start time.Time) {
	if m != nil {
		m.OperationDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, status).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
	}
}
