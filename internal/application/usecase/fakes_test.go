package usecase

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

// ownerOrAdmin replica la política: ADMIN todo, CLIENT lectura del catálogo y sus propios registros.
type ownerOrAdmin struct{}

func (ownerOrAdmin) Authorize(_ context.Context, sub ports.Subject, resource, action, ownerID string) error {
	if sub.Role == entity.RoleAdmin {
		return nil
	}
	switch resource {
	case ports.ResourceBook:
		if action == ports.ActionRead || action == ports.ActionList {
			return nil
		}
	case ports.ResourceUser:
		if action != ports.ActionList && ownerID != "" && ownerID == sub.UserID {
			return nil
		}
	}
	return domain.ErrForbidden
}

type memUsers struct {
	mu    sync.Mutex
	items map[string]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{items: map[string]*entity.User{}}
	for _, u := range users {
		m.items[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.items[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return m.GetByID(ctx, id)
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByCPF(context.Context, string) (*entity.User, error) { return nil, nil }

func (m *memUsers) Update(ctx context.Context, u *entity.User) error { return m.Create(ctx, u) }

func (m *memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.items))
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memBooks struct {
	mu    sync.Mutex
	items map[string]*entity.Book
}

func newMemBooks(books ...*entity.Book) *memBooks {
	m := &memBooks{items: map[string]*entity.Book{}}
	for _, b := range books {
		m.items[b.ID] = b
	}
	return m
}

func (m *memBooks) Create(_ context.Context, b *entity.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.items[b.ID] = &cp
	return nil
}

func (m *memBooks) GetByID(_ context.Context, id string) (*entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.items[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memBooks) GetForUpdate(ctx context.Context, id string) (*entity.Book, error) {
	return m.GetByID(ctx, id)
}

func (m *memBooks) SetAvailability(_ context.Context, id string, available bool) (*entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	if b.Available == available {
		return nil, domain.ErrConflict
	}
	b.Available = available
	cp := *b
	return &cp, nil
}

func (m *memBooks) UpdateDetails(_ context.Context, b *entity.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[b.ID]
	if !ok {
		return domain.ErrBookNotFound
	}
	available := cur.Available
	cp := *b
	cp.Available = available
	m.items[b.ID] = &cp
	return nil
}

func (m *memBooks) List(context.Context, int, int) ([]*entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Book, 0, len(m.items))
	for _, b := range m.items {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBooks) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// activeCounter solo implementa CountActiveByUser; el resto no se usa en estos casos de uso.
type activeCounter struct {
	stubReservations
	active map[string]int
	log    *[]string
}

func (a activeCounter) CountActiveByUser(_ context.Context, userID string) (int, error) {
	a.record("count " + userID)
	return a.active[userID], nil
}

func (a activeCounter) record(op string) {
	if a.log != nil {
		*a.log = append(*a.log, op)
	}
}

// lockingUsers registra el orden de bloqueo y borrado dentro de la tx.
type lockingUsers struct {
	*memUsers
	log *[]string
}

func (u lockingUsers) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	*u.log = append(*u.log, "lock "+id)
	return u.memUsers.GetForUpdate(ctx, id)
}

func (u lockingUsers) Delete(ctx context.Context, id string) error {
	*u.log = append(*u.log, "delete "+id)
	return u.memUsers.Delete(ctx, id)
}

// accountTx ejecuta el callback con repos en memoria; cuenta cuántas tx se abrieron.
type accountTx struct {
	users    *memUsers
	counter  activeCounter
	log      *[]string
	txOpened int
}

func newAccountTx(users *memUsers, active map[string]int) *accountTx {
	log := []string{}
	return &accountTx{users: users, counter: activeCounter{active: active, log: &log}, log: &log}
}

func (a *accountTx) RunAccount(_ context.Context, fn func(repository.UserRepository, repository.ReservationRepository) error) error {
	a.txOpened++
	return fn(lockingUsers{memUsers: a.users, log: a.log}, a.counter)
}

type stubReservations struct{}

func (stubReservations) Create(context.Context, *entity.Reservation) error { return nil }
func (stubReservations) GetByID(context.Context, string) (*entity.Reservation, error) {
	return nil, nil
}
func (stubReservations) GetForUpdate(context.Context, string) (*entity.Reservation, error) {
	return nil, nil
}
func (stubReservations) Close(context.Context, *entity.Reservation) error { return nil }
func (stubReservations) GetDetail(context.Context, string) (*entity.ReservationDetail, error) {
	return nil, nil
}
func (stubReservations) ListDetails(context.Context, string) ([]*entity.ReservationDetail, error) {
	return nil, nil
}

func hashPassword(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}
