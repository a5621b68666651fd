package repository

import (
	"context"

	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

// BookRepository define el puerto del catálogo.
// SetAvailability es el único camino que modifica Book.Available; lo usa solo el motor de préstamos.
type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	// GetForUpdate bloquea la fila del libro (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Book, error)
	// SetAvailability cambia la disponibilidad solo si el valor actual es !available
	// (compare-and-swap). Devuelve domain.ErrConflict si otro escritor ganó la carrera
	// y domain.ErrBookNotFound si el libro no existe.
	SetAvailability(ctx context.Context, id string, available bool) (*entity.Book, error)
	UpdateDetails(ctx context.Context, book *entity.Book) error
	List(ctx context.Context, limit, offset int) ([]*entity.Book, error)
	Delete(ctx context.Context, id string) error
}
