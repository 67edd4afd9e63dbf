package http

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/rs/zerolog"
)

// Claves bajo las que el middleware deja la identidad en el contexto Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRoles  = "roles"
)

// AuthMiddleware valida tokens Bearer emitidos por el realm contra su JWKS.
// El JWKS se descarga en el primer uso, no en el arranque: el proceso levanta
// y responde /health aunque Keycloak todavía no esté disponible.
type AuthMiddleware struct {
	jwksURL string
	log     zerolog.Logger

	mu   sync.Mutex
	jwks *keyfunc.JWKS
}

// NewAuthMiddleware construye el middleware de autenticación.
func NewAuthMiddleware(jwksURL string, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwksURL: jwksURL, log: log}
}

func (m *AuthMiddleware) keyfunc(ctx context.Context) (jwt.Keyfunc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.jwks == nil {
		jwks, err := keyfunc.Get(m.jwksURL, keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				m.log.Warn().Err(err).Msg("no se pudo refrescar el JWKS del realm")
			},
		})
		if err != nil {
			return nil, err
		}
		m.jwks = jwks
	}
	return m.jwks.Keyfunc, nil
}

// Handler exige un token Bearer válido y deja user_id, email y roles en
// c.Locals para los handlers protegidos.
func (m *AuthMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token de autorización requerido"})
		}
		rawToken := strings.TrimPrefix(header, "Bearer ")

		kf, err := m.keyfunc(c.UserContext())
		if err != nil {
			m.log.Error().Err(err).Msg("JWKS del realm no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDP_UNAVAILABLE", Message: "el proveedor de identidad no está disponible"})
		}

		token, err := jwt.Parse(rawToken, kf, jwt.WithValidMethods([]string{"RS256"}))
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido o expirado"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido o expirado"})
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals(LocalUserID, sub)
		}
		if email, _ := claims["email"].(string); email != "" {
			c.Locals(LocalEmail, email)
		}
		c.Locals(LocalRoles, realmRoles(claims))

		return c.Next()
	}
}

// realmRoles extrae los roles de realm del claim realm_access.roles.
func realmRoles(claims jwt.MapClaims) []string {
	access, ok := claims["realm_access"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := access["roles"].([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

// RequireRole exige que el token traiga el rol de realm indicado. Debe
// montarse después de Handler.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals(LocalRoles).([]string)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere el rol " + role})
	}
}
