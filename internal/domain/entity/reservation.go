package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva. ACTIVE es el único estado no terminal.
const (
	ReservationActive    = "ACTIVE"
	ReservationCompleted = "COMPLETED"
	ReservationCanceled  = "CANCELED"
)

// Reservation registra el préstamo de un libro a un usuario por un período acotado.
// ReturnDate solo está presente cuando Status es COMPLETED.
type Reservation struct {
	ID         string
	UserID     string
	BookID     string
	StartDate  time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	Status     string
	DaysLate   int
	FineAmount decimal.Decimal
	CreatedAt  time.Time
}

// IsActive indica si el libro sigue prestado bajo esta reserva.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// ReservationDetail es una reserva junto con la instantánea del usuario y del libro.
type ReservationDetail struct {
	Reservation Reservation
	User        User
	Book        Book
}
