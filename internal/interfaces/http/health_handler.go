package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/medisupply/authenticator-api/pkg/config"
	"github.com/rs/zerolog"
)

// HealthHandler expone la salud del servicio. El reporte no toca base de
// datos, Keycloak ni el bucket de logos: refleja únicamente que el proceso
// atiende peticiones.
type HealthHandler struct {
	app config.AppConfig
	log zerolog.Logger
}

// NewHealthHandler construye el handler de salud.
func NewHealthHandler(app config.AppConfig, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{app: app, log: log}
}

func (h *HealthHandler) report(status string) dto.HealthResponse {
	return dto.HealthResponse{
		Status: status,
		// Precisión de nanosegundos: dos sondas consecutivas nunca comparten
		// timestamp.
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Service:     h.app.Name,
		Version:     h.app.Version,
		Environment: h.app.Env,
	}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("fallo al construir el reporte de salud")
			err = c.Status(fiber.StatusInternalServerError).JSON(h.report("unhealthy"))
		}
	}()
	return c.JSON(h.report("healthy"))
}

// Ping godoc
// @Summary      Verificación mínima de vida
// @Tags         health
// @Produce      json
// @Success      200  {string}  string  "pong"
// @Router       /auth/ping [get]
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return c.JSON("pong")
}
