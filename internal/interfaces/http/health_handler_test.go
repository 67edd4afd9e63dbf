package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/medisupply/authenticator-api/internal/interfaces/http"
	"github.com/medisupply/authenticator-api/pkg/config"
)

func healthApp() *fiber.App {
	app := fiber.New()
	h := apphttp.NewHealthHandler(config.AppConfig{
		Env:     "test",
		Name:    "medisupply-authenticator",
		Version: "1.0.0",
	}, zerolog.Nop())
	app.Get("/health", h.Health)
	app.Get("/auth/ping", h.Ping)
	return app
}

func getBody(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// El reporte no depende de base de datos ni de Keycloak: el handler se monta
// aquí sin ninguna de esas dependencias y aun así responde completo.
func TestHealth_ReporteCompleto(t *testing.T) {
	app := healthApp()
	status, body := getBody(t, app, "/health")

	assert.Equal(t, http.StatusOK, status)

	var report map[string]any
	require.NoError(t, json.Unmarshal(body, &report))

	assert.Equal(t, "healthy", report["status"])
	assert.Equal(t, "medisupply-authenticator", report["service"])
	assert.Equal(t, "1.0.0", report["version"])
	assert.Equal(t, "test", report["environment"])
	assert.NotEmpty(t, report["timestamp"])
}

func TestHealth_TimestampsDistintosEnSondasConsecutivas(t *testing.T) {
	app := healthApp()

	_, body1 := getBody(t, app, "/health")
	_, body2 := getBody(t, app, "/health")

	var r1, r2 map[string]any
	require.NoError(t, json.Unmarshal(body1, &r1))
	require.NoError(t, json.Unmarshal(body2, &r2))

	assert.NotEqual(t, r1["timestamp"], r2["timestamp"],
		"dos sondas consecutivas deben reflejar instantes distintos")
}

func TestPing_RespondePong(t *testing.T) {
	app := healthApp()
	status, body := getBody(t, app, "/auth/ping")

	assert.Equal(t, http.StatusOK, status)

	var msg string
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "pong", msg)
}
