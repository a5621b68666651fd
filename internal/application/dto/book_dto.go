package dto

import "time"

// CreateBookRequest alta de un libro (solo ADMIN). La disponibilidad inicia en true.
type CreateBookRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Author      string  `json:"author" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	CoverURL    *string `json:"cover_url" validate:"omitempty,url"`
}

// UpdateBookRequest cambios parciales del contenido de un libro.
// La disponibilidad no se puede modificar por esta vía.
type UpdateBookRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Author      *string `json:"author" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	CoverURL    *string `json:"cover_url" validate:"omitempty,url"`
}

// BookResponse salida de un libro.
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookListResponse listado paginado del catálogo.
type BookListResponse struct {
	Items []BookResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
