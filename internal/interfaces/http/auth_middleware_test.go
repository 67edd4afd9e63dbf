package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisupply/authenticator-api/internal/domain/entity"
	apphttp "github.com/medisupply/authenticator-api/internal/interfaces/http"
)

func protectedApp(jwksURL string) *fiber.App {
	app := fiber.New()
	mw := apphttp.NewAuthMiddleware(jwksURL, zerolog.Nop())
	app.Get("/protegida", mw.Handler(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := protectedApp("http://localhost:0/certs")
	resp := doProtected(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_EsquemaDistintoDeBearerRetorna401(t *testing.T) {
	app := protectedApp("http://localhost:0/certs")
	resp := doProtected(t, app, "Basic dXN1YXJpbzpjbGF2ZQ==")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// El JWKS se resuelve perezosamente: si el realm no está disponible la ruta
// protegida responde 503, pero el resto de la aplicación sigue viva.
func TestAuthMiddleware_JWKSInalcanzableRetorna503(t *testing.T) {
	app := protectedApp("http://127.0.0.1:1/certs")
	resp := doProtected(t, app, "Bearer token.cualquiera.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequireRole_SinRolesEnContextoRetorna403(t *testing.T) {
	app := fiber.New()
	// RequireRole montado sin el middleware de autenticación: no hay roles en
	// el contexto y el acceso se niega.
	app.Get("/admin", apphttp.RequireRole(entity.RoleAdministrador), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_ConRolPermitidoPasa(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			c.Locals(apphttp.LocalRoles, []string{entity.RoleAdministrador})
			return c.Next()
		},
		apphttp.RequireRole(entity.RoleAdministrador),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ConOtroRolRetorna403(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			c.Locals(apphttp.LocalRoles, []string{entity.RoleVentas})
			return c.Next()
		},
		apphttp.RequireRole(entity.RoleAdministrador),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
