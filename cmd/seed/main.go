// Command seed crea el administrador inicial y el catálogo técnico.
// Es idempotente: no duplica el admin (por email) ni libros ya cargados (por título).
package main

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/Biblioteca-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Biblioteca-api/pkg/config"
	"github.com/jhoicas/Biblioteca-api/pkg/cpf"
	"github.com/jhoicas/Biblioteca-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	if err := seedAdmin(ctx, postgres.NewUserRepository(pool), cfg.Seed, log.Component("seed")); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	added, err := seedCatalog(ctx, postgres.NewBookRepository(pool))
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	log.Info().Int("libros_nuevos", added).Msg("seed finalizado")
}

func seedAdmin(ctx context.Context, repo *postgres.UserRepo, in config.SeedConfig, log zerolog.Logger) error {
	if in.AdminPassword == "" || in.AdminCPF == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD o SEED_ADMIN_CPF vacíos; se omite el administrador")
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(in.AdminEmail))
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("administrador ya existe")
		return nil
	}
	taxID, err := cpf.Format(in.AdminCPF)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return repo.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Name:         in.AdminName,
		CPF:          taxID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func seedCatalog(ctx context.Context, repo *postgres.BookRepo) (int, error) {
	current, err := repo.List(ctx, 1000, 0)
	if err != nil {
		return 0, err
	}
	titles := make(map[string]struct{}, len(current))
	for _, b := range current {
		titles[b.Title] = struct{}{}
	}

	added := 0
	now := time.Now().UTC()
	for _, sb := range catalog {
		if _, ok := titles[sb.Title]; ok {
			continue
		}
		desc, cover := sb.Description, sb.CoverURL
		book := &entity.Book{
			ID:          uuid.New().String(),
			Title:       sb.Title,
			Author:      sb.Author,
			Description: &desc,
			CoverURL:    &cover,
			Available:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(ctx, book); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
