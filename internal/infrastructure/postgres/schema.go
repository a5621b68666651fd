package postgres

import (
	"context"
	"fmt"
	"time"
)

// schemaQueries crea el esquema de forma idempotente.
// Las reglas de integridad de préstamos viven también en la base:
// una sola reserva ACTIVE por libro, plazo de 7 días y return_date solo en COMPLETED.
var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          VARCHAR(100) NOT NULL,
		cpf           VARCHAR(14)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash TEXT         NOT NULL,
		role          VARCHAR(10)  NOT NULL DEFAULT 'CLIENT',
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_cpf_key UNIQUE (cpf),
		CONSTRAINT users_role_check CHECK (role IN ('CLIENT', 'ADMIN'))
	)`,

	`CREATE TABLE IF NOT EXISTS books (
		id          UUID PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		author      VARCHAR(255) NOT NULL,
		description TEXT,
		cover_url   TEXT,
		available   BOOLEAN      NOT NULL DEFAULT true,
		created_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id          UUID PRIMARY KEY,
		user_id     UUID          NOT NULL,
		book_id     UUID          NOT NULL,
		start_date  TIMESTAMPTZ   NOT NULL,
		due_date    TIMESTAMPTZ   NOT NULL,
		return_date TIMESTAMPTZ,
		status      VARCHAR(10)   NOT NULL DEFAULT 'ACTIVE',
		days_late   INTEGER       NOT NULL DEFAULT 0,
		fine_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ   NOT NULL DEFAULT now(),
		CONSTRAINT reservations_user_id_fkey FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT reservations_book_id_fkey FOREIGN KEY (book_id) REFERENCES books (id) ON DELETE CASCADE,
		CONSTRAINT reservations_status_check CHECK (status IN ('ACTIVE', 'COMPLETED', 'CANCELED')),
		CONSTRAINT reservations_due_date_check CHECK (due_date = start_date + interval '168 hours'),
		CONSTRAINT reservations_return_date_check CHECK ((return_date IS NOT NULL) = (status = 'COMPLETED')),
		CONSTRAINT reservations_fine_check CHECK (fine_amount >= 0 AND days_late >= 0)
	)`,
}

var indexQueries = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS reservations_one_active_per_book
		ON reservations (book_id) WHERE status = 'ACTIVE'`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_user_status ON reservations (user_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_start_date ON reservations (start_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_books_title ON books (title)`,
}

// EnsureSchema crea tablas e índices si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	for _, query := range append(schemaQueries, indexQueries...) {
		if _, err := q.Exec(ctx, query); err != nil {
			return fmt.Errorf("ejecutar esquema: %w", err)
		}
	}
	return nil
}
