package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medisupply/authenticator-api/internal/application/auth"
	"github.com/medisupply/authenticator-api/internal/application/usecase"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/medisupply/authenticator-api/pkg/config"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	App              config.AppConfig
	AuthUC           *auth.UseCase
	UserUC           *usecase.UserUseCase
	AssignedClientUC *usecase.AssignedClientUseCase
	JWKSURL          string
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.App, deps.Log)
	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	assignedHandler := NewAssignedClientHandler(deps.AssignedClientUC)
	authMiddleware := NewAuthMiddleware(deps.JWKSURL, deps.Log)

	// Salud (público, sin dependencias externas)
	app.Get("/health", healthHandler.Health)

	authGroup := app.Group("/auth")
	authGroup.Get("/ping", healthHandler.Ping)

	// Autenticación (público)
	authGroup.Post("/token", authHandler.Token)
	authGroup.Post("/logout", authHandler.Logout)

	// Usuarios (público: el registro precede a cualquier credencial)
	authGroup.Post("/user", userHandler.Register)
	authGroup.Get("/user", userHandler.List)
	authGroup.Delete("/user/all", userHandler.DeleteAll)
	authGroup.Get("/user/:id", userHandler.GetByID)

	// Administración (requiere Bearer con rol Administrador)
	admin := authGroup.Group("/admin", authMiddleware.Handler(), RequireRole(entity.RoleAdministrador))
	admin.Post("/users", userHandler.AdminCreate)
	admin.Put("/users/:id/status", userHandler.UpdateStatus)

	// Asignaciones vendedor-cliente (requiere Bearer Token)
	assigned := authGroup.Group("/assigned-clients", authMiddleware.Handler())
	assigned.Post("/", assignedHandler.Create)
	assigned.Get("/:user_id", assignedHandler.GetBySellerID)
}
