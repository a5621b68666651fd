package repository

import (
	"context"

	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia para reservas.
type ReservationRepository interface {
	Create(ctx context.Context, r *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	// GetForUpdate bloquea la fila de la reserva; el estado leído actúa como token de exclusividad.
	GetForUpdate(ctx context.Context, id string) (*entity.Reservation, error)
	// Close persiste el estado terminal (COMPLETED o CANCELED) con fecha de devolución y multa.
	Close(ctx context.Context, r *entity.Reservation) error
	GetDetail(ctx context.Context, id string) (*entity.ReservationDetail, error)
	// ListDetails lista reservas con usuario y libro; userID vacío lista todas.
	ListDetails(ctx context.Context, userID string) ([]*entity.ReservationDetail, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
}
