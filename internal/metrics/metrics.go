// Package metrics owns the prometheus collectors of the service. A nil *Metrics is valid
// and records nothing, which is how METRICS_ENABLED=false is served.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fitclub-go/internal/domain/sessions"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fitclub"

const (
	OutcomeBooked        = "booked"
	OutcomeFull          = "full"
	OutcomeDuplicate     = "duplicate"
	OutcomeMissingMember = "missing_member"
	OutcomeNotFound      = "not_found"
	OutcomeError         = "error"
)

type Metrics struct {
	registry        *prometheus.Registry
	bookings        *prometheus.CounterVec
	importRows      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_attempts_total",
			Help:      "Session booking attempts by outcome.",
		}, []string{"outcome"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_import_rows_total",
			Help:      "Rows processed by the member CSV import.",
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bookings,
		m.importRows,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// BookingOutcome names the result of a booking attempt.
func BookingOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeBooked
	case errors.Is(err, sessions.ErrSessionFull):
		return OutcomeFull
	case errors.Is(err, sessions.ErrAlreadyBooked):
		return OutcomeDuplicate
	case errors.Is(err, sessions.ErrMemberRequired), errors.Is(err, sessions.ErrUnknownMember):
		return OutcomeMissingMember
	case errors.Is(err, sessions.ErrSessionNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

func (m *Metrics) ObserveBooking(err error) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(BookingOutcome(err)).Inc()
}

func (m *Metrics) ObserveImport(imported, failed int) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues("imported").Add(float64(imported))
	m.importRows.WithLabelValues("failed").Add(float64(failed))
}

// Middleware records request latency under the matched chi route pattern, so
// /members/1 and /members/2 share one series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
