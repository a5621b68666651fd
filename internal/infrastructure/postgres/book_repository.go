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

var _ repository.BookRepository = (*BookRepo)(nil)

const bookColumns = `id, title, author, description, cover_url, available, created_at, updated_at`

// BookRepo implementación del puerto BookRepository sobre PostgreSQL.
type BookRepo struct {
	db Querier
}

// NewBookRepository construye el adaptador; db puede ser el pool o una transacción.
func NewBookRepository(db Querier) *BookRepo {
	return &BookRepo{db: db}
}

// Create persiste un libro nuevo.
func (r *BookRepo) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		book.ID, book.Title, book.Author, book.Description, book.CoverURL, book.Available,
		book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por ID.
func (r *BookRepo) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	return r.findOne(ctx, "get book", `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *BookRepo) GetForUpdate(ctx context.Context, id string) (*entity.Book, error) {
	return r.findOne(ctx, "lock book", `SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id)
}

// SetAvailability solo escribe si el valor actual es el contrario (compare-and-swap).
func (r *BookRepo) SetAvailability(ctx context.Context, id string, available bool) (*entity.Book, error) {
	query := `
		UPDATE books SET available = $2, updated_at = now()
		WHERE id = $1 AND available = $3
		RETURNING ` + bookColumns
	b, err := scanBook(r.db.QueryRow(ctx, query, id, available, !available))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("set availability: %w", err)
	}
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrBookNotFound
	}
	return nil, domain.ErrConflict
}

// UpdateDetails actualiza el contenido del libro; nunca la disponibilidad.
func (r *BookRepo) UpdateDetails(ctx context.Context, book *entity.Book) error {
	query := `
		UPDATE books SET title = $2, author = $3, description = $4, cover_url = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, book.ID, book.Title, book.Author, book.Description, book.CoverURL, book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// List devuelve el catálogo ordenado por título.
func (r *BookRepo) List(ctx context.Context, limit, offset int) ([]*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title, id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var list []*entity.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Delete elimina un libro disponible. Si está prestado devuelve ErrBookOnLoan,
// aunque se haya prestado entre la lectura del caso de uso y este DELETE.
func (r *BookRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1 AND available`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrBookNotFound
	}
	return domain.ErrBookOnLoan
}

func (r *BookRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Book, error) {
	b, err := scanBook(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func scanBook(row pgx.Row) (*entity.Book, error) {
	var b entity.Book
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverURL, &b.Available, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
