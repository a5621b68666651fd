package ports

import "github.com/shopspring/decimal"

// LendingMetrics puerto de observabilidad del motor de préstamos.
type LendingMetrics interface {
	ReservationCreated()
	BookReturned(daysLate int, fine decimal.Decimal)
	ReservationCanceled()
	// Rejected registra una operación rechazada por regla de negocio o error.
	Rejected(operation string, err error)
}
