package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Biblioteca-api/internal/application/dto"
	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

// BookUseCase casos de uso del catálogo. La disponibilidad solo la cambia el motor de préstamos.
type BookUseCase struct {
	repo  repository.BookRepository
	authz ports.Authorizer
	now   func() time.Time
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(repo repository.BookRepository, authz ports.Authorizer) *BookUseCase {
	return &BookUseCase{repo: repo, authz: authz, now: time.Now}
}

// Create da de alta un libro disponible.
func (uc *BookUseCase) Create(ctx context.Context, sub ports.Subject, in dto.CreateBookRequest) (*dto.BookResponse, error) {
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceBook, ports.ActionCreate, ""); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	book := &entity.Book{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: in.Description,
		CoverURL:    in.CoverURL,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return dto.ToBookResponse(book), nil
}

// GetByID obtiene un libro; ErrBookNotFound si no existe.
func (uc *BookUseCase) GetByID(ctx context.Context, sub ports.Subject, id string) (*dto.BookResponse, error) {
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceBook, ports.ActionRead, ""); err != nil {
		return nil, err
	}
	book, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToBookResponse(book), nil
}

// List lista el catálogo paginado.
func (uc *BookUseCase) List(ctx context.Context, sub ports.Subject, page dto.PageRequest) (*dto.BookListResponse, error) {
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceBook, ports.ActionList, ""); err != nil {
		return nil, err
	}
	page.DefaultPage()
	books, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, *dto.ToBookResponse(b))
	}
	return &dto.BookListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update modifica título, autor, descripción o portada.
func (uc *BookUseCase) Update(ctx context.Context, sub ports.Subject, id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceBook, ports.ActionUpdate, ""); err != nil {
		return nil, err
	}
	book, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		book.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		book.Author = strings.TrimSpace(*in.Author)
	}
	if in.Description != nil {
		book.Description = in.Description
	}
	if in.CoverURL != nil {
		book.CoverURL = in.CoverURL
	}
	book.UpdatedAt = uc.now().UTC()
	if err := uc.repo.UpdateDetails(ctx, book); err != nil {
		return nil, err
	}
	return dto.ToBookResponse(book), nil
}

// Delete elimina un libro. No se permite mientras esté prestado.
func (uc *BookUseCase) Delete(ctx context.Context, sub ports.Subject, id string) error {
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceBook, ports.ActionDelete, ""); err != nil {
		return err
	}
	book, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !book.Available {
		return domain.ErrBookOnLoan
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *BookUseCase) get(ctx context.Context, id string) (*entity.Book, error) {
	book, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}
