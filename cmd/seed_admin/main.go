// seed_admin crea el primer usuario ADMIN si todavía no existe ninguno.
//
// Uso: go run ./cmd/seed_admin
// Lee SEED_ADMIN_USERNAME, SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD (por defecto admin,
// admin@example.com y admin123) además de la configuración de base de datos habitual.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/multitenant-inventory/pkg/config"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	username := envOr("SEED_ADMIN_USERNAME", "admin")
	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")

	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	created, err := users.BootstrapAdmin(ctx, username, email, envOr("SEED_ADMIN_PASSWORD", "admin123"))
	if err != nil {
		log.Error().Err(err).Msg("crear administrador")
		pool.Close()
		os.Exit(1)
	}
	if !created {
		log.Info().Msg("ya existe un administrador, no se crea otro")
		return
	}
	log.Info().Str("username", username).Str("email", email).Msg("administrador creado")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
