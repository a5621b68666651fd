package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Biblioteca-api/internal/application/auth"
	"github.com/jhoicas/Biblioteca-api/internal/application/usecase"
	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	BookUC       *usecase.BookUseCase
	Reservations ReservationService
	JWTSecret    string
	LoginLimiter AttemptLimiter // nil desactiva el límite de intentos
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", RateLimit(deps.LoginLimiter), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	authenticated := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleClient, entity.RoleAdmin)}

	users := api.Group("/users", authenticated...)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	books := api.Group("/books", authenticated...)
	bookHandler := NewBookHandler(deps.BookUC)
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.GetByID)
	books.Post("/", RequireRole(entity.RoleAdmin), bookHandler.Create)
	books.Patch("/:id", RequireRole(entity.RoleAdmin), bookHandler.Update)
	books.Delete("/:id", RequireRole(entity.RoleAdmin), bookHandler.Delete)

	reservations := api.Group("/reservations", authenticated...)
	reservationHandler := NewReservationHandler(deps.Reservations)
	reservations.Post("/", reservationHandler.Create)
	reservations.Get("/", reservationHandler.List)
	reservations.Get("/:id", reservationHandler.GetByID)
	reservations.Post("/:id/return", reservationHandler.Return)
	reservations.Delete("/:id", reservationHandler.Cancel)
}
