package ports

import "context"

// Acciones y recursos conocidos por la capa de autorización.
const (
	ResourceReservation = "reservation"
	ResourceBook        = "book"
	ResourceUser        = "user"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionList   = "list"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionReturn = "return"
	ActionCancel = "cancel"
)

// Subject identifica a quien ejecuta la operación (tomado del JWT).
type Subject struct {
	UserID string
	Role   string
}

// Authorizer define el puerto de decisión (sujeto, acción, recurso) -> permitir|denegar.
// ownerID es el dueño del registro afectado; vacío cuando el recurso no tiene dueño.
// Devuelve nil si se permite y domain.ErrForbidden si se deniega.
type Authorizer interface {
	Authorize(ctx context.Context, sub Subject, resource, action, ownerID string) error
}
