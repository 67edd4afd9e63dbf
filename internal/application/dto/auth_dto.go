package dto

import "github.com/medisupply/authenticator-api/internal/application/ports"

// LoginRequest credenciales de autenticación. El campo user es el email.
type LoginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// LoginResponse respuesta de login: los tokens de Keycloak tal cual, más la
// información local del usuario.
type LoginResponse struct {
	ports.TokenResponse
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LogoutRequest cierre de sesión.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
