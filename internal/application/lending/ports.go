package lending

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// La reserva y el cambio de disponibilidad del libro se confirman juntos o no se aplican.
type TxRunner interface {
	RunLending(ctx context.Context, fn func(
		bookRepo repository.BookRepository,
		reservationRepo repository.ReservationRepository,
	) error) error
}

type noopMetrics struct{}

func (noopMetrics) ReservationCreated()               {}
func (noopMetrics) BookReturned(int, decimal.Decimal) {}
func (noopMetrics) ReservationCanceled()              {}
func (noopMetrics) Rejected(string, error)            {}
