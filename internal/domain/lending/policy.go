// Package lending contiene las reglas de préstamo puras (servicio de dominio):
// plazo de devolución, días de atraso y multa.
package lending

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Policy agrupa los parámetros de préstamo. La multa es lineal y sin tope:
// Multa = BaseFine + BaseFine * DailyRate * díasDeAtraso.
type Policy struct {
	LoanPeriod time.Duration
	BaseFine   decimal.Decimal
	DailyRate  decimal.Decimal
}

// DefaultPolicy devuelve la política vigente: 7 días de plazo, multa fija de 5,00
// más 5% de la multa fija (0,25) por día de atraso.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriod: 7 * day,
		BaseFine:   decimal.NewFromInt(5),
		DailyRate:  decimal.New(5, -2),
	}
}

// DueDate calcula la fecha límite de devolución a partir del inicio del préstamo.
func (p Policy) DueDate(start time.Time) time.Time {
	return start.Add(p.LoanPeriod)
}

// DaysLate devuelve ceil((returnedAt - due) / 1 día), o 0 si se devolvió a tiempo.
// Cualquier exceso sobre el instante límite, aunque sea de segundos, cuenta como un día.
func DaysLate(due, returnedAt time.Time) int {
	over := returnedAt.Sub(due)
	if over <= 0 {
		return 0
	}
	days := over / day
	if over%day != 0 {
		days++
	}
	return int(days)
}

// Fine calcula la multa exacta a dos decimales para los días de atraso dados.
func (p Policy) Fine(daysLate int) decimal.Decimal {
	if daysLate <= 0 {
		return decimal.Zero
	}
	daily := p.BaseFine.Mul(p.DailyRate)
	return p.BaseFine.Add(daily.Mul(decimal.NewFromInt(int64(daysLate)))).Round(2)
}

// Assess aplica la política a una devolución: días de atraso y multa.
func (p Policy) Assess(due, returnedAt time.Time) (int, decimal.Decimal) {
	days := DaysLate(due, returnedAt)
	return days, p.Fine(days)
}
