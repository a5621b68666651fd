package lending

import (
	"context"

	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

// AuthorizedEngine envuelve cada punto de entrada del motor con la decisión de autorización.
// CLIENT solo actúa sobre sus propias reservas; ADMIN sobre todas.
type AuthorizedEngine struct {
	engine *Engine
	authz  ports.Authorizer
}

// NewAuthorizedEngine construye el decorador.
func NewAuthorizedEngine(engine *Engine, authz ports.Authorizer) *AuthorizedEngine {
	return &AuthorizedEngine{engine: engine, authz: authz}
}

// Create reserva bookID a nombre de userID; un CLIENT solo puede reservar para sí mismo.
// userID vacío significa "para quien ejecuta".
func (a *AuthorizedEngine) Create(ctx context.Context, sub ports.Subject, userID, bookID string) (*entity.Reservation, error) {
	if userID == "" {
		userID = sub.UserID
	}
	if err := a.authz.Authorize(ctx, sub, ports.ResourceReservation, ports.ActionCreate, userID); err != nil {
		return nil, err
	}
	return a.engine.Create(ctx, userID, bookID)
}

// ReturnBook devuelve el libro de una reserva del sujeto (o de cualquiera si es ADMIN).
func (a *AuthorizedEngine) ReturnBook(ctx context.Context, sub ports.Subject, reservationID string) (*ReturnReceipt, error) {
	if err := a.authorizeOwned(ctx, sub, ports.ActionReturn, reservationID); err != nil {
		return nil, err
	}
	return a.engine.ReturnBook(ctx, reservationID)
}

// Cancel cancela una reserva activa del sujeto (o de cualquiera si es ADMIN).
func (a *AuthorizedEngine) Cancel(ctx context.Context, sub ports.Subject, reservationID string) error {
	if err := a.authorizeOwned(ctx, sub, ports.ActionCancel, reservationID); err != nil {
		return err
	}
	return a.engine.Cancel(ctx, reservationID)
}

// List lista reservas según el rol del sujeto.
func (a *AuthorizedEngine) List(ctx context.Context, sub ports.Subject) ([]*entity.ReservationDetail, error) {
	if err := a.authz.Authorize(ctx, sub, ports.ResourceReservation, ports.ActionList, sub.UserID); err != nil {
		return nil, err
	}
	return a.engine.ListForUser(ctx, sub)
}

// Get obtiene una reserva si el sujeto puede verla.
func (a *AuthorizedEngine) Get(ctx context.Context, sub ports.Subject, reservationID string) (*entity.ReservationDetail, error) {
	d, err := a.engine.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := a.authz.Authorize(ctx, sub, ports.ResourceReservation, ports.ActionRead, d.Reservation.UserID); err != nil {
		return nil, err
	}
	return d, nil
}

// authorizeOwned resuelve el dueño de la reserva antes de decidir; una reserva inexistente
// responde NotFound antes que Forbidden.
func (a *AuthorizedEngine) authorizeOwned(ctx context.Context, sub ports.Subject, action, reservationID string) error {
	if reservationID == "" {
		return domain.ErrInvalidInput
	}
	res, err := a.engine.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrReservationNotFound
	}
	return a.authz.Authorize(ctx, sub, ports.ResourceReservation, action, res.UserID)
}
