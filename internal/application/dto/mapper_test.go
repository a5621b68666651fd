package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Biblioteca-api/internal/application/dto"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

func TestReturnReceipt_MultaComoNumeroConDosDecimales(t *testing.T) {
	out, err := json.Marshal(dto.ReturnReceiptResponse{
		Message:       "Libro devuelto con éxito",
		ReservationID: "res-1",
		DaysLate:      2,
		FineToPay:     dto.Money(decimal.RequireFromString("5.5")),
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fineToPay":5.50`)
	assert.Contains(t, string(out), `"daysLate":2`)
}

func TestReturnReceipt_SinMulta(t *testing.T) {
	out, err := json.Marshal(dto.ReturnReceiptResponse{FineToPay: dto.Money(decimal.Zero)})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fineToPay":0.00`)
}

func TestToReservationDetailResponse_IncluyeRelaciones(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	d := &entity.ReservationDetail{
		Reservation: entity.Reservation{ID: "r", UserID: "u", BookID: "b", StartDate: now, DueDate: now.AddDate(0, 0, 7), Status: entity.ReservationActive},
		User:        entity.User{ID: "u", Name: "Gabriel", PasswordHash: "secreto", Role: entity.RoleClient},
		Book:        entity.Book{ID: "b", Title: "Clean Code"},
	}

	out := dto.ToReservationDetailResponse(d)
	require.NotNil(t, out.User)
	require.NotNil(t, out.Book)
	assert.Equal(t, "Gabriel", out.User.Name)
	assert.Equal(t, "Clean Code", out.Book.Title)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secreto")
	assert.Contains(t, string(raw), `"returnDate":null`)
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{Limit: 1000, Offset: -5}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = dto.PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
}
