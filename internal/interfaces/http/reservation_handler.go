package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Biblioteca-api/internal/application/dto"
	"github.com/jhoicas/Biblioteca-api/internal/application/lending"
	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

// ReservationService lo implementa *lending.AuthorizedEngine.
type ReservationService interface {
	Create(ctx context.Context, sub ports.Subject, userID, bookID string) (*entity.Reservation, error)
	ReturnBook(ctx context.Context, sub ports.Subject, reservationID string) (*lending.ReturnReceipt, error)
	Cancel(ctx context.Context, sub ports.Subject, reservationID string) error
	List(ctx context.Context, sub ports.Subject) ([]*entity.ReservationDetail, error)
	Get(ctx context.Context, sub ports.Subject, reservationID string) (*entity.ReservationDetail, error)
}

var _ ReservationService = (*lending.AuthorizedEngine)(nil)

// ReservationHandler maneja el ciclo de vida de reservas (protegido).
type ReservationHandler struct {
	svc ReservationService
}

// NewReservationHandler construye el handler.
func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// Create godoc
// @Summary      Reservar un libro
// @Description  userId es opcional; por defecto el usuario del token. Solo ADMIN reserva para terceros.
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReservationRequest  true  "userId, bookId"
// @Success      201   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.Create(c.UserContext(), subject(c), in.UserID, in.BookID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReservationResponse(res))
}

// List godoc
// @Summary      Listar reservas
// @Description  ADMIN ve todas; CLIENT solo las propias. Orden: inicio descendente.
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReservationResponse
// @Router       /api/reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext(), subject(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.ReservationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.ToReservationDetailResponse(d))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener reserva
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.ReservationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.svc.Get(c.UserContext(), subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToReservationDetailResponse(d))
}

// Return godoc
// @Summary      Devolver libro
// @Description  Calcula días de atraso y multa (5,00 + 0,25 por día).
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.ReturnReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/return [post]
func (h *ReservationHandler) Return(c *fiber.Ctx) error {
	receipt, err := h.svc.ReturnBook(c.UserContext(), subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReturnReceiptResponse{
		Message:       "Libro devuelto con éxito",
		ReservationID: receipt.ReservationID,
		DaysLate:      receipt.DaysLate,
		FineToPay:     dto.Money(receipt.FineToPay),
	})
}

// Cancel godoc
// @Summary      Cancelar reserva activa
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	if err := h.svc.Cancel(c.UserContext(), subject(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Reserva cancelada"})
}
