package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Biblioteca-api/internal/application/auth"
	"github.com/jhoicas/Biblioteca-api/internal/application/lending"
	"github.com/jhoicas/Biblioteca-api/internal/application/usecase"
	"github.com/jhoicas/Biblioteca-api/internal/infrastructure/authz"
	"github.com/jhoicas/Biblioteca-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Biblioteca-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Biblioteca-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Biblioteca-api/internal/interfaces/http"
	"github.com/jhoicas/Biblioteca-api/pkg/config"
	"github.com/jhoicas/Biblioteca-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	lendingMetrics := metrics.NewLendingMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	enforcer, err := authz.NewEnforcer(cfg.Authz.PolicyPath, log.Component("authz"))
	if err != nil {
		log.Fatal().Err(err).Msg("cargar política de autorización")
	}

	userRepo := postgres.NewUserRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := lending.NewEngine(txRunner, userRepo, reservationRepo,
		lending.WithMetrics(lendingMetrics),
		lending.WithLogger(log.Component("lending")),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, txRunner, enforcer)
	bookUC := usecase.NewBookUseCase(bookRepo, enforcer)

	deps := httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		BookUC:       bookUC,
		Reservations: lending.NewAuthorizedEngine(engine, enforcer),
		JWTSecret:    cfg.JWT.Secret,
	}

	// Límite de intentos de login: solo con Redis configurado.
	if cfg.Redis.Enabled() {
		limiter, err := infraredis.NewLoginLimiter(
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.LoginKeyspace,
			cfg.Redis.LoginLimit, cfg.Redis.LoginWindow, log.Component("login-limiter"),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("limitador de login")
		}
		defer limiter.Close()
		if err := limiter.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no responde; los intentos de login se rechazarán hasta que vuelva")
		}
		deps.LoginLimiter = limiter
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), httpMetrics))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.AllowOrigins}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Biblioteca API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
