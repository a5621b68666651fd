package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Biblioteca-api/internal/interfaces/http"
)

type recordedRequest struct {
	method, route string
	status        int
}

type fakeObserver struct{ calls []recordedRequest }

func (o *fakeObserver) Observe(method, route string, status int, _ time.Duration) {
	o.calls = append(o.calls, recordedRequest{method, route, status})
}

func TestRequestLogger_RegistraRutaYRequestID(t *testing.T) {
	var buf bytes.Buffer
	obs := &fakeObserver{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.New(&buf), obs))
	app.Get("/api/books/:id", func(c *fiber.Ctx) error {
		zerolog.Ctx(c.UserContext()).Info().Msg("dentro del handler")
		return c.SendStatus(fiber.StatusNotFound)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/books/123", nil), -1)
	require.NoError(t, err)

	reqID := resp.Header.Get(fiber.HeaderXRequestID)
	assert.NotEmpty(t, reqID)
	require.Len(t, obs.calls, 1)
	assert.Equal(t, recordedRequest{"GET", "/api/books/:id", http.StatusNotFound}, obs.calls[0])
	assert.Contains(t, buf.String(), reqID)
	assert.Contains(t, buf.String(), "dentro del handler")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestRequestLogger_RespetaRequestIDEntrante(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop(), nil))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))
}
