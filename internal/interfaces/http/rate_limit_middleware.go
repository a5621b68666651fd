package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Biblioteca-api/internal/application/dto"
)

// AttemptLimiter lo implementa *redis.LoginLimiter.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) bool
	Window() time.Duration
}

// RateLimit limita peticiones por IP del cliente. Con limiter nil no limita.
func RateLimit(limiter AttemptLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		if !limiter.Allow(c.UserContext(), c.IP()) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(limiter.Window().Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos, intente más tarde",
			})
		}
		return c.Next()
	}
}
