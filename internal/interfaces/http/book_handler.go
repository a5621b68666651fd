package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Biblioteca-api/internal/application/dto"
	"github.com/jhoicas/Biblioteca-api/internal/application/usecase"
)

// BookHandler maneja el catálogo (protegido; escritura solo ADMIN).
type BookHandler struct {
	uc *usecase.BookUseCase
}

// NewBookHandler construye el handler.
func NewBookHandler(uc *usecase.BookUseCase) *BookHandler {
	return &BookHandler{uc: uc}
}

// Create godoc
// @Summary      Crear libro (ADMIN)
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookRequest  true  "Datos del libro"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), subject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar libros
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.BookListResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), subject(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener libro por ID
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {object}  dto.BookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar libro (ADMIN)
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del libro"
// @Param        body  body  dto.UpdateBookRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.BookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/books/{id} [patch]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBookRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), subject(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar libro (ADMIN)
// @Description  No se permite mientras el libro esté prestado.
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), subject(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Libro eliminado"})
}
