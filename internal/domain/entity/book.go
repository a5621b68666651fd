package entity

import "time"

// Book representa un ejemplar del catálogo.
// Available solo lo modifica el motor de préstamos (reserva, devolución, cancelación).
type Book struct {
	ID          string
	Title       string
	Author      string
	Description *string
	CoverURL    *string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
