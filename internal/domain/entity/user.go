package entity

import "time"

// Roles válidos para User.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// User representa un lector o administrador de la biblioteca.
type User struct {
	ID           string
	Name         string
	CPF          string // formato canónico 000.000.000-00
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // CLIENT, ADMIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario puede actuar sobre registros de terceros.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
