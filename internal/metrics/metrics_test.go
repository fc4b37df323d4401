package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitclub-go/internal/domain/sessions"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *Metrics, name, label, value string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestBookingOutcome(t *testing.T) {
	assert.Equal(t, OutcomeBooked, BookingOutcome(nil))
	assert.Equal(t, OutcomeFull, BookingOutcome(fmt.Errorf("book: %w", sessions.ErrSessionFull)))
	assert.Equal(t, OutcomeDuplicate, BookingOutcome(sessions.ErrAlreadyBooked))
	assert.Equal(t, OutcomeMissingMember, BookingOutcome(sessions.ErrMemberRequired))
	assert.Equal(t, OutcomeMissingMember, BookingOutcome(sessions.ErrUnknownMember))
	assert.Equal(t, OutcomeNotFound, BookingOutcome(sessions.ErrSessionNotFound))
	assert.Equal(t, OutcomeError, BookingOutcome(errors.New("db down")))
}

func TestObserveCounters(t *testing.T) {
	m := New()
	m.ObserveBooking(nil)
	m.ObserveBooking(nil)
	m.ObserveBooking(sessions.ErrSessionFull)
	m.ObserveImport(3, 1)

	assert.Equal(t, 2.0, counterValue(t, m, "fitclub_booking_attempts_total", "outcome", "booked"))
	assert.Equal(t, 1.0, counterValue(t, m, "fitclub_booking_attempts_total", "outcome", "full"))
	assert.Equal(t, 3.0, counterValue(t, m, "fitclub_member_import_rows_total", "result", "imported"))
	assert.Equal(t, 1.0, counterValue(t, m, "fitclub_member_import_rows_total", "result", "failed"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveBooking(nil)
	m.ObserveImport(1, 1)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/members/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/"+id, nil))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `fitclub_http_request_duration_seconds_count{method="GET",route="/members/{id}",status="404"} 2`), body)
}
