// Package metrics expone métricas Prometheus del motor de préstamos y del servidor HTTP.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
)

var _ ports.LendingMetrics = (*LendingMetrics)(nil)

// LendingMetrics implementa ports.LendingMetrics.
type LendingMetrics struct {
	reservationsCreated  prometheus.Counter
	booksReturned        prometheus.Counter
	reservationsCanceled prometheus.Counter
	daysLate             prometheus.Histogram
	finesTotal           prometheus.Counter
	rejected             *prometheus.CounterVec
}

// NewLendingMetrics crea y registra las métricas en reg.
func NewLendingMetrics(reg prometheus.Registerer) *LendingMetrics {
	m := &LendingMetrics{
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biblioteca_reservations_created_total",
			Help: "Reservas creadas",
		}),
		booksReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biblioteca_books_returned_total",
			Help: "Libros devueltos",
		}),
		reservationsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biblioteca_reservations_canceled_total",
			Help: "Reservas canceladas",
		}),
		daysLate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "biblioteca_return_days_late",
			Help:    "Días de atraso por devolución",
			Buckets: []float64{0, 1, 2, 3, 7, 14, 30, 90},
		}),
		finesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biblioteca_fines_amount_total",
			Help: "Suma de multas generadas",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biblioteca_lending_rejected_total",
			Help: "Operaciones de préstamo rechazadas por operación y motivo",
		}, []string{"operation", "reason"}),
	}
	reg.MustRegister(
		m.reservationsCreated,
		m.booksReturned,
		m.reservationsCanceled,
		m.daysLate,
		m.finesTotal,
		m.rejected,
	)
	return m
}

func (m *LendingMetrics) ReservationCreated() { m.reservationsCreated.Inc() }

func (m *LendingMetrics) BookReturned(daysLate int, fine decimal.Decimal) {
	m.booksReturned.Inc()
	m.daysLate.Observe(float64(daysLate))
	m.finesTotal.Add(fine.InexactFloat64())
}

func (m *LendingMetrics) ReservationCanceled() { m.reservationsCanceled.Inc() }

func (m *LendingMetrics) Rejected(operation string, err error) {
	m.rejected.WithLabelValues(operation, Reason(err)).Inc()
}

// Reason clasifica un error en una etiqueta de cardinalidad acotada.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}

// HTTPMetrics cuenta peticiones y mide latencias por ruta.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics crea y registra las métricas HTTP en reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biblioteca_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "biblioteca_http_request_duration_seconds",
			Help:    "Latencia de peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Observe registra una petición terminada. route es el patrón (/api/books/:id), no la URL.
func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
