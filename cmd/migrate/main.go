package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/infrastructure/postgres"
	"github.com/medisupply/authenticator-api/pkg/config"
	"github.com/medisupply/authenticator-api/pkg/logger"
)

// Runner de migraciones. Aplica el esquema base y la migración de status
// sobre users_medisupply; es seguro re-ejecutarlo las veces que haga falta.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Options{
		Env:     cfg.App.Env,
		Debug:   cfg.App.Debug,
		Service: cfg.App.Name + "-migrate",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	migrator := postgres.NewMigrator(pool, log)

	if err := migrator.EnsureBaseSchema(ctx); err != nil {
		log.Error().Err(err).Msg("esquema base")
		os.Exit(1)
	}

	info, err := migrator.AddStatusColumn(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTableMissing):
			log.Error().Err(err).Msg("la tabla de usuarios no existe; nada que migrar")
		case errors.Is(err, domain.ErrVerificationMismatch):
			// La transacción quedó aplicada pero la columna no coincide con la
			// definición esperada; requiere revisión manual del esquema.
			log.Error().Err(err).Msg("verificación post-migración fallida")
		default:
			log.Error().Err(err).Msg("migración de status")
		}
		os.Exit(1)
	}

	log.Info().
		Str("column", info.Name).
		Str("data_type", info.DataType).
		Bool("is_nullable", info.IsNullable).
		Msg("migración de status aplicada y verificada")
}
