package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los errores "de tipo" permiten al borde HTTP mapear a códigos de estado con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidState = errors.New("estado inválido para la operación")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Errores concretos; cada uno envuelve su tipo.
var (
	ErrUserNotFound        = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrBookNotFound        = fmt.Errorf("libro no encontrado: %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reserva no encontrada: %w", ErrNotFound)

	ErrBookUnavailable      = fmt.Errorf("libro no disponible: %w", ErrInvalidState)
	ErrAlreadyReturned      = fmt.Errorf("el libro ya fue devuelto: %w", ErrInvalidState)
	ErrReservationNotActive = fmt.Errorf("solo se pueden cancelar reservas activas: %w", ErrInvalidState)
	ErrBookOnLoan           = fmt.Errorf("el libro tiene un préstamo abierto: %w", ErrInvalidState)
	ErrUserHasActiveLoans   = fmt.Errorf("el usuario tiene libros pendientes de devolución: %w", ErrInvalidState)

	ErrEmailAlreadyExists = fmt.Errorf("el email ya está registrado: %w", ErrConflict)
	ErrCPFAlreadyExists   = fmt.Errorf("el CPF ya está registrado: %w", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("credenciales inválidas: %w", ErrUnauthorized)
	ErrInvalidCPF         = fmt.Errorf("CPF inválido: %w", ErrInvalidInput)
)
