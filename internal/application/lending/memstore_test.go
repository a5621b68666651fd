package lending_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

// memStore simula la base de datos: cada transacción toma el candado global
// (equivalente a los bloqueos de fila) y se revierte completa si fn falla.
type memStore struct {
	mu           sync.Mutex
	users        map[string]entity.User
	books        map[string]entity.Book
	reservations map[string]entity.Reservation

	// fallas inyectadas
	failClose           error
	failCreate          error
	failSetAvailability error
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]entity.User{},
		books:        map[string]entity.Book{},
		reservations: map[string]entity.Reservation{},
	}
}

func (s *memStore) addUser(id, role string) {
	s.users[id] = entity.User{ID: id, Name: "Usuario " + id, Email: id + "@biblioteca.dev", Role: role}
}

func (s *memStore) addBook(id string, available bool) {
	s.books[id] = entity.Book{ID: id, Title: "Libro " + id, Author: "Autor", Available: available}
}

func (s *memStore) book(id string) entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *memStore) reservation(id string) entity.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id]
}

func (s *memStore) activeFor(bookID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reservations {
		if r.BookID == bookID && r.Status == entity.ReservationActive {
			n++
		}
	}
	return n
}

// RunLending implementa lending.TxRunner.
func (s *memStore) RunLending(ctx context.Context, fn func(repository.BookRepository, repository.ReservationRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make(map[string]entity.Book, len(s.books))
	for k, v := range s.books {
		books[k] = v
	}
	reservations := make(map[string]entity.Reservation, len(s.reservations))
	for k, v := range s.reservations {
		reservations[k] = v
	}
	if err := fn(txBooks{s}, txReservations{s}); err != nil {
		s.books = books
		s.reservations = reservations
		return err
	}
	return nil
}

// ── repositorios dentro de la tx (el candado ya está tomado) ────────────────

type txBooks struct{ s *memStore }

func (r txBooks) Create(_ context.Context, b *entity.Book) error {
	r.s.books[b.ID] = *b
	return nil
}

func (r txBooks) GetByID(_ context.Context, id string) (*entity.Book, error) {
	b, ok := r.s.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r txBooks) GetForUpdate(ctx context.Context, id string) (*entity.Book, error) {
	return r.GetByID(ctx, id)
}

func (r txBooks) SetAvailability(_ context.Context, id string, available bool) (*entity.Book, error) {
	if r.s.failSetAvailability != nil {
		return nil, r.s.failSetAvailability
	}
	b, ok := r.s.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	if b.Available == available {
		return nil, domain.ErrConflict
	}
	b.Available = available
	r.s.books[id] = b
	return &b, nil
}

func (r txBooks) UpdateDetails(_ context.Context, b *entity.Book) error { return nil }

func (r txBooks) List(_ context.Context, limit, offset int) ([]*entity.Book, error) {
	return nil, nil
}

func (r txBooks) Delete(_ context.Context, id string) error {
	delete(r.s.books, id)
	return nil
}

type txReservations struct{ s *memStore }

func (r txReservations) Create(_ context.Context, res *entity.Reservation) error {
	if r.s.failCreate != nil {
		return r.s.failCreate
	}
	r.s.reservations[res.ID] = *res
	return nil
}

func (r txReservations) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r txReservations) GetForUpdate(ctx context.Context, id string) (*entity.Reservation, error) {
	return r.GetByID(ctx, id)
}

func (r txReservations) Close(_ context.Context, res *entity.Reservation) error {
	if r.s.failClose != nil {
		return r.s.failClose
	}
	r.s.reservations[res.ID] = *res
	return nil
}

func (r txReservations) GetDetail(_ context.Context, id string) (*entity.ReservationDetail, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	return &entity.ReservationDetail{Reservation: res, User: r.s.users[res.UserID], Book: r.s.books[res.BookID]}, nil
}

func (r txReservations) ListDetails(_ context.Context, userID string) ([]*entity.ReservationDetail, error) {
	var out []*entity.ReservationDetail
	for _, res := range r.s.reservations {
		if userID != "" && res.UserID != userID {
			continue
		}
		out = append(out, &entity.ReservationDetail{Reservation: res, User: r.s.users[res.UserID], Book: r.s.books[res.BookID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reservation.ID < out[j].Reservation.ID })
	return out, nil
}

func (r txReservations) CountActiveByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, res := range r.s.reservations {
		if res.UserID == userID && res.Status == entity.ReservationActive {
			n++
		}
	}
	return n, nil
}

// ── repositorios fuera de tx (toman el candado) ────────────────────────────

type lockedReservations struct {
	txReservations
}

func (r lockedReservations) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.txReservations.GetByID(ctx, id)
}

func (r lockedReservations) GetDetail(ctx context.Context, id string) (*entity.ReservationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.txReservations.GetDetail(ctx, id)
}

func (r lockedReservations) ListDetails(ctx context.Context, userID string) ([]*entity.ReservationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.txReservations.ListDetails(ctx, userID)
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error { return nil }

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) { return nil, nil }
func (r memUsers) GetByCPF(_ context.Context, cpf string) (*entity.User, error)     { return nil, nil }
func (r memUsers) Update(_ context.Context, u *entity.User) error                   { return nil }
func (r memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (r memUsers) Delete(_ context.Context, id string) error { return nil }
