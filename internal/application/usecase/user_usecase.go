package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Biblioteca-api/internal/application/dto"
	"github.com/jhoicas/Biblioteca-api/internal/application/ports"
	"github.com/jhoicas/Biblioteca-api/internal/domain"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/Biblioteca-api/internal/domain/repository"
)

// AccountTxRunner ejecuta fn en una transacción con repos de usuarios y reservas atados a ella.
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		reservationRepo repository.ReservationRepository,
	) error) error
}

// UserUseCase casos de uso de perfil de usuario.
type UserUseCase struct {
	userRepo repository.UserRepository
	txRunner AccountTxRunner
	authz    ports.Authorizer
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, txRunner AccountTxRunner, authz ports.Authorizer) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, txRunner: txRunner, authz: authz, now: time.Now}
}

// GetByID obtiene un usuario (propio o cualquiera si ADMIN).
func (uc *UserUseCase) GetByID(ctx context.Context, sub ports.Subject, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceUser, ports.ActionRead, user.ID); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// List lista usuarios paginados (solo ADMIN).
func (uc *UserUseCase) List(ctx context.Context, sub ports.Subject, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceUser, ports.ActionList, ""); err != nil {
		return nil, err
	}
	page.DefaultPage()
	users, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update modifica nombre, email o password del propio perfil.
// Exige el password actual; un email ya usado por otro usuario devuelve ErrEmailAlreadyExists.
func (uc *UserUseCase) Update(ctx context.Context, sub ports.Subject, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceUser, ports.ActionUpdate, user.ID); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = uc.now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Delete elimina una cuenta (propia o cualquiera si ADMIN).
// No se permite mientras el usuario tenga reservas activas. La fila del usuario queda
// bloqueada entre el conteo y el borrado para que ninguna reserva nueva se cuele.
func (uc *UserUseCase) Delete(ctx context.Context, sub ports.Subject, id string) error {
	user, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.authz.Authorize(ctx, sub, ports.ResourceUser, ports.ActionDelete, user.ID); err != nil {
		return err
	}
	return uc.txRunner.RunAccount(ctx, func(users repository.UserRepository, reservations repository.ReservationRepository) error {
		locked, err := users.GetForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrUserNotFound
		}
		active, err := reservations.CountActiveByUser(ctx, locked.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrUserHasActiveLoans
		}
		return users.Delete(ctx, locked.ID)
	})
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
