package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Biblioteca-api/internal/application/lending"
	"github.com/jhoicas/Biblioteca-api/internal/application/usecase"
	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

var (
	_ lending.TxRunner        = (*TxRunner)(nil)
	_ usecase.AccountTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLending inicia una transacción, ejecuta fn con los repos de libros y reservas
// atados a la tx y hace Commit, o Rollback si fn devuelve error.
func (r *TxRunner) RunLending(ctx context.Context, fn func(
	bookRepo repository.BookRepository,
	reservationRepo repository.ReservationRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewBookRepository(tx), NewReservationRepository(tx))
	})
}

// RunAccount igual que RunLending, con los repos de usuarios y reservas.
func (r *TxRunner) RunAccount(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	reservationRepo repository.ReservationRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewReservationRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
