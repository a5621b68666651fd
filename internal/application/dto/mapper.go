package dto

import "github.com/jhoicas/Biblioteca-api/internal/domain/entity"

// ToUserResponse convierte la entidad a DTO (sin hash de password).
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		CPF:       u.CPF,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserSummary datos mínimos del usuario.
func ToUserSummary(u *entity.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// ToBookResponse convierte un libro a DTO.
func ToBookResponse(b *entity.Book) *BookResponse {
	if b == nil {
		return nil
	}
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CoverURL:    b.CoverURL,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToReservationResponse convierte una reserva sin relaciones.
func ToReservationResponse(r *entity.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}
	return &ReservationResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		StartDate:  r.StartDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
		Status:     r.Status,
		DaysLate:   r.DaysLate,
		FineAmount: Money(r.FineAmount),
	}
}

// ToReservationDetailResponse incluye usuario y libro.
func ToReservationDetailResponse(d *entity.ReservationDetail) *ReservationResponse {
	if d == nil {
		return nil
	}
	out := ToReservationResponse(&d.Reservation)
	out.User = ToUserSummary(&d.User)
	out.Book = ToBookResponse(&d.Book)
	return out
}
