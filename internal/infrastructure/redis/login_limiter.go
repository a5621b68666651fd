// Package redis contiene el limitador de intentos de login respaldado por Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// INCR + PEXPIRE atómicos: la primera petición de la ventana fija la expiración.
var fixedWindowScript = goredis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// LoginLimiter limita intentos por clave (IP del cliente) en una ventana fija.
// Si Redis falla, niega el intento.
type LoginLimiter struct {
	client *goredis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

// NewLoginLimiter crea el limitador y su cliente Redis.
func NewLoginLimiter(addr, password, prefix string, limit int, window time.Duration, log zerolog.Logger) (*LoginLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.New("limitador de login: límite y ventana deben ser positivos")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("limitador de login: REDIS_ADDR vacío")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "biblioteca:login"
	}
	return &LoginLimiter{
		client: goredis.NewClient(&goredis.Options{Addr: addr, Password: password}),
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
		log:    log,
	}, nil
}

// Ping verifica la conexión con Redis.
func (l *LoginLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Allow indica si la clave aún tiene cupo en la ventana actual.
func (l *LoginLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	windowMs := l.window.Milliseconds()
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		l.log.Error().Err(err).Str("key", key).Msg("limitador de login sin Redis; intento denegado")
		return false
	}
	return count <= int64(l.limit)
}

// Window devuelve la duración de la ventana (para la cabecera Retry-After).
func (l *LoginLimiter) Window() time.Duration {
	return l.window
}

// Close libera el cliente Redis.
func (l *LoginLimiter) Close() error {
	return l.client.Close()
}
