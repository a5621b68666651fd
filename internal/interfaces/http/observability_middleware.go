package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestObserver lo implementa *metrics.HTTPMetrics.
type RequestObserver interface {
	Observe(method, route string, status int, elapsed time.Duration)
}

// RequestLogger asigna un request id, deja el logger en el contexto de la petición
// y registra método, ruta, estado y latencia al terminar.
func RequestLogger(log zerolog.Logger, obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(fiber.HeaderXRequestID, reqID)

		reqLog := log.With().Str("request_id", reqID).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path
		if obs != nil {
			obs.Observe(c.Method(), route, status, elapsed)
		}

		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}
