package ports

import "context"

// TokenResponse respuesta de autenticación del proveedor de identidad.
// La forma replica la respuesta token de Keycloak, que se retorna tal cual
// al cliente HTTP.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	NotBeforePolicy  int    `json:"not-before-policy"`
	SessionState     string `json:"session_state"`
	Scope            string `json:"scope"`
}

// IdentityProvider puerto de salida hacia el proveedor de identidad
// (Keycloak). Las credenciales de los usuarios viven únicamente allí.
type IdentityProvider interface {
	// CreateUser da de alta el usuario y devuelve su ID en el realm.
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	// AssignRealmRole asigna un rol de realm al usuario.
	AssignRealmRole(ctx context.Context, userID, role string) error
	// DeleteUser elimina el usuario del realm.
	DeleteUser(ctx context.Context, userID string) error
	// Authenticate ejecuta el password grant y devuelve los tokens.
	Authenticate(ctx context.Context, username, password string) (*TokenResponse, error)
	// Logout invalida el refresh token.
	Logout(ctx context.Context, refreshToken string) error
	// UserRole devuelve el rol de realm del usuario identificado por email.
	UserRole(ctx context.Context, email string) (string, error)
	// AvailableRoles roles de realm reconocidos.
	AvailableRoles() []string
}
