package lending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
	domainlending "github.com/jhoicas/Biblioteca-api/internal/domain/lending"
	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

// Nombres de operación usados en logs y métricas.
const (
	OpCreate = "create"
	OpReturn = "return"
	OpCancel = "cancel"
)

// ReturnReceipt comprobante de devolución.
type ReturnReceipt struct {
	ReservationID string
	DaysLate      int
	FineToPay     decimal.Decimal
	ReturnedAt    time.Time
}

// Engine gobierna el ciclo de vida de las reservas: crear, devolver y cancelar,
// manteniendo sincronizada la disponibilidad del libro en la misma transacción.
type Engine struct {
	txRunner        TxRunner
	userRepo        repository.UserRepository
	reservationRepo repository.ReservationRepository
	policy          domainlending.Policy
	now             func() time.Time
	metrics         ports.LendingMetrics
	log             zerolog.Logger
}

// Option configura el motor.
type Option func(*Engine)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPolicy reemplaza la política de préstamo por defecto.
func WithPolicy(p domainlending.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithMetrics registra las métricas del motor.
func WithMetrics(m ports.LendingMetrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithLogger asigna el logger estructurado.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine construye el motor con los puertos de persistencia.
// reservationRepo se usa para lecturas fuera de transacción.
func NewEngine(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	reservationRepo repository.ReservationRepository,
	opts ...Option,
) *Engine {
	e := &Engine{
		txRunner:        txRunner,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		policy:          domainlending.DefaultPolicy(),
		now:             time.Now,
		metrics:         noopMetrics{},
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Create reserva un libro disponible para el usuario.
// Bloquea la fila del libro (SELECT FOR UPDATE) para que dos reservas concurrentes
// del mismo libro no puedan ver ambas Available=true.
func (e *Engine) Create(ctx context.Context, userID, bookID string) (*entity.Reservation, error) {
	if userID == "" || bookID == "" {
		return nil, e.reject(OpCreate, domain.ErrInvalidInput)
	}
	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, e.reject(OpCreate, err)
	}
	if user == nil {
		return nil, e.reject(OpCreate, domain.ErrUserNotFound)
	}

	start := e.now().UTC().Truncate(time.Microsecond)
	res := &entity.Reservation{
		ID:         uuid.New().String(),
		UserID:     userID,
		BookID:     bookID,
		StartDate:  start,
		DueDate:    e.policy.DueDate(start),
		Status:     entity.ReservationActive,
		FineAmount: decimal.Zero,
		CreatedAt:  start,
	}

	err = e.txRunner.RunLending(ctx, func(bookRepo repository.BookRepository, reservationRepo repository.ReservationRepository) error {
		book, err := bookRepo.GetForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return domain.ErrBookNotFound
		}
		if !book.Available {
			return domain.ErrBookUnavailable
		}
		if err := reservationRepo.Create(ctx, res); err != nil {
			return err
		}
		if _, err := bookRepo.SetAvailability(ctx, bookID, false); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return domain.ErrBookUnavailable
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, e.reject(OpCreate, err)
	}

	e.metrics.ReservationCreated()
	e.log.Info().
		Str("reservation_id", res.ID).
		Str("user_id", userID).
		Str("book_id", bookID).
		Time("due_date", res.DueDate).
		Msg("reserva creada")
	return res, nil
}

// ReturnBook registra la devolución, calcula atraso y multa y libera el libro.
// El estado leído bajo bloqueo de fila impide una doble devolución concurrente.
func (e *Engine) ReturnBook(ctx context.Context, reservationID string) (*ReturnReceipt, error) {
	var receipt *ReturnReceipt
	err := e.txRunner.RunLending(ctx, func(bookRepo repository.BookRepository, reservationRepo repository.ReservationRepository) error {
		res, err := lockReservation(ctx, reservationRepo, reservationID)
		if err != nil {
			return err
		}
		switch res.Status {
		case entity.ReservationCompleted:
			return domain.ErrAlreadyReturned
		case entity.ReservationCanceled:
			return domain.ErrReservationNotActive
		}

		now := e.now().UTC().Truncate(time.Microsecond)
		days, fine := e.policy.Assess(res.DueDate, now)
		res.ReturnDate = &now
		res.Status = entity.ReservationCompleted
		res.DaysLate = days
		res.FineAmount = fine
		if err := reservationRepo.Close(ctx, res); err != nil {
			return err
		}
		if err := releaseBook(ctx, bookRepo, res.BookID); err != nil {
			return err
		}
		receipt = &ReturnReceipt{
			ReservationID: res.ID,
			DaysLate:      days,
			FineToPay:     fine,
			ReturnedAt:    now,
		}
		return nil
	})
	if err != nil {
		return nil, e.reject(OpReturn, err)
	}

	e.metrics.BookReturned(receipt.DaysLate, receipt.FineToPay)
	e.log.Info().
		Str("reservation_id", receipt.ReservationID).
		Int("days_late", receipt.DaysLate).
		Str("fine", receipt.FineToPay.StringFixed(2)).
		Msg("libro devuelto")
	return receipt, nil
}

// Cancel cancela una reserva activa y libera el libro.
// La reserva queda en estado CANCELED para conservar el historial.
func (e *Engine) Cancel(ctx context.Context, reservationID string) error {
	err := e.txRunner.RunLending(ctx, func(bookRepo repository.BookRepository, reservationRepo repository.ReservationRepository) error {
		res, err := lockReservation(ctx, reservationRepo, reservationID)
		if err != nil {
			return err
		}
		if !res.IsActive() {
			return domain.ErrReservationNotActive
		}
		res.Status = entity.ReservationCanceled
		res.ReturnDate = nil
		if err := reservationRepo.Close(ctx, res); err != nil {
			return err
		}
		return releaseBook(ctx, bookRepo, res.BookID)
	})
	if err != nil {
		return e.reject(OpCancel, err)
	}

	e.metrics.ReservationCanceled()
	e.log.Info().Str("reservation_id", reservationID).Msg("reserva cancelada")
	return nil
}

// ListForUser devuelve todas las reservas para ADMIN y solo las propias para CLIENT,
// cada una con la instantánea del usuario y del libro.
func (e *Engine) ListForUser(ctx context.Context, sub ports.Subject) ([]*entity.ReservationDetail, error) {
	owner := sub.UserID
	if sub.Role == entity.RoleAdmin {
		owner = ""
	} else if owner == "" {
		return nil, domain.ErrUnauthorized
	}
	return e.reservationRepo.ListDetails(ctx, owner)
}

// Get obtiene una reserva con usuario y libro.
func (e *Engine) Get(ctx context.Context, reservationID string) (*entity.ReservationDetail, error) {
	d, err := e.reservationRepo.GetDetail(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrReservationNotFound
	}
	return d, nil
}

func lockReservation(ctx context.Context, repo repository.ReservationRepository, id string) (*entity.Reservation, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	res, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrReservationNotFound
	}
	return res, nil
}

// releaseBook vuelve a marcar disponible el libro de una reserva que deja de estar activa.
func releaseBook(ctx context.Context, bookRepo repository.BookRepository, bookID string) error {
	_, err := bookRepo.SetAvailability(ctx, bookID, true)
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("libro %s ya estaba disponible con una reserva activa: %w", bookID, err)
	}
	return err
}

func (e *Engine) reject(op string, err error) error {
	e.metrics.Rejected(op, err)
	ev := e.log.Warn()
	if !isBusinessError(err) {
		ev = e.log.Error()
	}
	ev.Err(err).Str("operation", op).Msg("operación de préstamo rechazada")
	return err
}

func isBusinessError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrInvalidInput)
}
