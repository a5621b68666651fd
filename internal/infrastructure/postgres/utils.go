package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Nombres de constraints definidos en schema.go que se traducen a errores de dominio.
const (
	constraintUsersEmail       = "users_email_key"
	constraintUsersCPF         = "users_cpf_key"
	constraintActivePerBook    = "reservations_one_active_per_book"
	constraintReservationsUser = "reservations_user_id_fkey"
	constraintReservationsBook = "reservations_book_id_fkey"
)

// uniqueViolation devuelve el nombre del constraint si err es una violación de unicidad (23505).
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// foreignKeyViolation devuelve el nombre del constraint si err es una violación de FK (23503).
func foreignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
