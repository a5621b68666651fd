package dto

import "time"

// RegisterRequest entrada para registro (auth). El CPF se acepta con o sin puntuación.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	CPF      string `json:"cpf" validate:"required,cpf"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

// UpdateUserRequest cambios de perfil; CurrentPassword es obligatorio para cualquier cambio.
type UpdateUserRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Password        *string `json:"password" validate:"omitempty,min=6,max=20"`
	CurrentPassword string  `json:"current_password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary datos mínimos del usuario embebidos en otras respuestas.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string      `json:"access_token"`
	User  UserSummary `json:"user"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
