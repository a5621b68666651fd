package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

const reservationColumns = `r.id, r.user_id, r.book_id, r.start_date, r.due_date, r.return_date,
	r.status, r.days_late, r.fine_amount, r.created_at`

const detailQuery = `
	SELECT ` + reservationColumns + `,
		u.id, u.name, u.cpf, u.email, u.role, u.created_at, u.updated_at,
		b.id, b.title, b.author, b.description, b.cover_url, b.available, b.created_at, b.updated_at
	FROM reservations r
	JOIN users u ON u.id = r.user_id
	JOIN books b ON b.id = r.book_id`

// ReservationRepo implementación del puerto ReservationRepository sobre PostgreSQL.
type ReservationRepo struct {
	db Querier
}

// NewReservationRepository construye el adaptador; db puede ser el pool o una transacción.
func NewReservationRepository(db Querier) *ReservationRepo {
	return &ReservationRepo{db: db}
}

// Create inserta la reserva. El índice parcial de reservas activas actúa como
// segunda barrera: una segunda reserva ACTIVE del mismo libro devuelve ErrBookUnavailable.
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, book_id, start_date, due_date, return_date, status, days_late, fine_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		res.ID, res.UserID, res.BookID, res.StartDate, res.DueDate, res.ReturnDate,
		res.Status, res.DaysLate, res.FineAmount, res.CreatedAt,
	)
	if err == nil {
		return nil
	}
	if name, ok := uniqueViolation(err); ok && name == constraintActivePerBook {
		return domain.ErrBookUnavailable
	}
	if name, ok := foreignKeyViolation(err); ok {
		switch name {
		case constraintReservationsUser:
			return domain.ErrUserNotFound
		case constraintReservationsBook:
			return domain.ErrBookNotFound
		}
	}
	return fmt.Errorf("insert reservation: %w", err)
}

// GetByID obtiene una reserva por ID.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	return r.findOne(ctx, "get reservation", `SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1`, id)
}

// GetForUpdate bloquea la fila de la reserva hasta el fin de la transacción.
func (r *ReservationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Reservation, error) {
	return r.findOne(ctx, "lock reservation", `SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1 FOR UPDATE`, id)
}

// Close pasa una reserva ACTIVE a su estado terminal.
func (r *ReservationRepo) Close(ctx context.Context, res *entity.Reservation) error {
	query := `
		UPDATE reservations SET status = $2, return_date = $3, days_late = $4, fine_amount = $5
		WHERE id = $1 AND status = 'ACTIVE'`
	tag, err := r.db.Exec(ctx, query, res.ID, res.Status, res.ReturnDate, res.DaysLate, res.FineAmount)
	if err != nil {
		return fmt.Errorf("close reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotActive
	}
	return nil
}

// GetDetail obtiene la reserva con usuario y libro.
func (r *ReservationRepo) GetDetail(ctx context.Context, id string) (*entity.ReservationDetail, error) {
	d, err := scanDetail(r.db.QueryRow(ctx, detailQuery+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation detail: %w", err)
	}
	return d, nil
}

// ListDetails lista reservas por fecha de inicio descendente; userID vacío lista todas.
func (r *ReservationRepo) ListDetails(ctx context.Context, userID string) ([]*entity.ReservationDetail, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if userID == "" {
		rows, err = r.db.Query(ctx, detailQuery+` ORDER BY r.start_date DESC, r.id`)
	} else {
		rows, err = r.db.Query(ctx, detailQuery+` WHERE r.user_id = $1 ORDER BY r.start_date DESC, r.id`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	list := []*entity.ReservationDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// CountActiveByUser cuenta las reservas ACTIVE del usuario.
func (r *ReservationRepo) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM reservations WHERE user_id = $1 AND status = 'ACTIVE'`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active reservations: %w", err)
	}
	return n, nil
}

func (r *ReservationRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Reservation, error) {
	var res entity.Reservation
	err := r.db.QueryRow(ctx, query, arg).Scan(reservationDest(&res)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}

func reservationDest(res *entity.Reservation) []any {
	return []any{
		&res.ID, &res.UserID, &res.BookID, &res.StartDate, &res.DueDate, &res.ReturnDate,
		&res.Status, &res.DaysLate, &res.FineAmount, &res.CreatedAt,
	}
}

func scanDetail(row pgx.Row) (*entity.ReservationDetail, error) {
	var d entity.ReservationDetail
	dest := reservationDest(&d.Reservation)
	dest = append(dest,
		&d.User.ID, &d.User.Name, &d.User.CPF, &d.User.Email, &d.User.Role, &d.User.CreatedAt, &d.User.UpdatedAt,
		&d.Book.ID, &d.Book.Title, &d.Book.Author, &d.Book.Description, &d.Book.CoverURL, &d.Book.Available,
		&d.Book.CreatedAt, &d.Book.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}
