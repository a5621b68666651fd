package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReservationRequest entrada para reservar. UserID vacío = el usuario del token.
type CreateReservationRequest struct {
	UserID string `json:"userId" validate:"omitempty,uuid"`
	BookID string `json:"bookId" validate:"required,uuid"`
}

// ReservationResponse salida de una reserva; User y Book se incluyen en listados y detalle.
type ReservationResponse struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	BookID     string        `json:"bookId"`
	StartDate  time.Time     `json:"startDate"`
	DueDate    time.Time     `json:"dueDate"`
	ReturnDate *time.Time    `json:"returnDate"`
	Status     string        `json:"status"`
	DaysLate   int           `json:"daysLate"`
	FineAmount Money         `json:"fineAmount"`
	User       *UserSummary  `json:"user,omitempty"`
	Book       *BookResponse `json:"book,omitempty"`
}

// ReturnReceiptResponse comprobante de devolución.
type ReturnReceiptResponse struct {
	Message       string `json:"message"`
	ReservationID string `json:"reservationId"`
	DaysLate      int    `json:"daysLate"`
	FineToPay     Money  `json:"fineToPay"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// Money importe exacto a dos decimales, serializado como número JSON (5.50).
type Money decimal.Decimal

// MarshalJSON implementa json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// UnmarshalJSON implementa json.Unmarshaler (acepta número o string).
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// Decimal devuelve el valor como decimal.Decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}
