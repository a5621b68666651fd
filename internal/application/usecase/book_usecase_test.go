package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Biblioteca-api/internal/application/dto"
	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

var (
	admin  = ports.Subject{UserID: "admin-1", Role: entity.RoleAdmin}
	client = ports.Subject{UserID: "user-1", Role: entity.RoleClient}
)

func strPtr(s string) *string { return &s }

func TestBookUseCase_CreateDisponible(t *testing.T) {
	repo := newMemBooks()
	uc := NewBookUseCase(repo, ownerOrAdmin{})

	out, err := uc.Create(context.Background(), admin, dto.CreateBookRequest{Title: " Clean Code ", Author: "Robert C. Martin"})
	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.Equal(t, "Clean Code", out.Title)

	stored, _ := repo.GetByID(context.Background(), out.ID)
	require.NotNil(t, stored)
}

func TestBookUseCase_ClienteNoPuedeEscribir(t *testing.T) {
	repo := newMemBooks(&entity.Book{ID: "b1", Title: "DDD", Available: true})
	uc := NewBookUseCase(repo, ownerOrAdmin{})
	ctx := context.Background()

	_, err := uc.Create(ctx, client, dto.CreateBookRequest{Title: "x", Author: "y"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Update(ctx, client, "b1", dto.UpdateBookRequest{Title: strPtr("z")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, client, "b1"), domain.ErrForbidden)

	got, err := uc.GetByID(ctx, client, "b1")
	require.NoError(t, err)
	assert.Equal(t, "DDD", got.Title)
}

func TestBookUseCase_UpdateNoTocaDisponibilidad(t *testing.T) {
	repo := newMemBooks(&entity.Book{ID: "b1", Title: "DDD", Author: "Evans", Available: false})
	uc := NewBookUseCase(repo, ownerOrAdmin{})

	out, err := uc.Update(context.Background(), admin, "b1", dto.UpdateBookRequest{Title: strPtr("Domain-Driven Design")})
	require.NoError(t, err)
	assert.Equal(t, "Domain-Driven Design", out.Title)
	assert.Equal(t, "Evans", out.Author)
	assert.False(t, out.Available)
}

func TestBookUseCase_DeletePrestadoRechazado(t *testing.T) {
	repo := newMemBooks(&entity.Book{ID: "b1", Available: false}, &entity.Book{ID: "b2", Available: true})
	uc := NewBookUseCase(repo, ownerOrAdmin{})
	ctx := context.Background()

	err := uc.Delete(ctx, admin, "b1")
	assert.ErrorIs(t, err, domain.ErrBookOnLoan)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, uc.Delete(ctx, admin, "b2"))
	b, _ := repo.GetByID(ctx, "b2")
	assert.Nil(t, b)
}

func TestBookUseCase_NoEncontrado(t *testing.T) {
	uc := NewBookUseCase(newMemBooks(), ownerOrAdmin{})
	_, err := uc.GetByID(context.Background(), client, "nope")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), admin, "nope"), domain.ErrNotFound)
}

func TestBookUseCase_ListPaginaPorDefecto(t *testing.T) {
	uc := NewBookUseCase(newMemBooks(&entity.Book{ID: "b1"}, &entity.Book{ID: "b2"}), ownerOrAdmin{})
	out, err := uc.List(context.Background(), client, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)
}
