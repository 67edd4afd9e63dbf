package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/medisupply/authenticator-api/internal/application/auth"
	"github.com/medisupply/authenticator-api/internal/application/usecase"
	"github.com/medisupply/authenticator-api/internal/infrastructure/keycloak"
	"github.com/medisupply/authenticator-api/internal/infrastructure/postgres"
	"github.com/medisupply/authenticator-api/internal/infrastructure/storage"
	httpRouter "github.com/medisupply/authenticator-api/internal/interfaces/http"
	"github.com/medisupply/authenticator-api/pkg/config"
	"github.com/medisupply/authenticator-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Options{
		Env:     cfg.App.Env,
		Debug:   cfg.App.Debug,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Las migraciones corren en el arranque; son idempotentes, así que varios
	// réplicas pueden arrancar a la vez sin pisarse.
	migrator := postgres.NewMigrator(pool, log)
	if err := migrator.EnsureBaseSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("esquema base")
	}
	if _, err := migrator.AddStatusColumn(ctx); err != nil {
		log.Fatal().Err(err).Msg("migración de status")
	}

	userRepo := postgres.NewUserRepository(pool)
	assignedRepo := postgres.NewAssignedClientRepository(pool)

	identity := keycloak.NewClient(cfg.Keycloak)

	logoStorage, err := storage.NewMinioStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("bucket de logos")
	}

	authUC := auth.NewUseCase(userRepo, identity, log)
	userUC := usecase.NewUserUseCase(userRepo, identity, logoStorage, cfg.Storage.MaxLogoBytes, log)
	assignedUC := usecase.NewAssignedClientUseCase(assignedRepo, userRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MediSupply Authenticator API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		App:              cfg.App,
		AuthUC:           authUC,
		UserUC:           userUC,
		AssignedClientUC: assignedUC,
		JWKSURL:          cfg.Keycloak.JWKSURL(),
		Log:              log,
	})

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
