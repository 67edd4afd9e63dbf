package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/medisupply/authenticator-api/internal/application/ports"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/medisupply/authenticator-api/pkg/config"
)

var _ ports.IdentityProvider = (*Client)(nil)

// tokenMargin margen restado a la expiración del token admin para no usar
// tokens a punto de vencer.
const tokenMargin = 60 * time.Second

// APIError error devuelto por Keycloak (ej. invalid_grant en credenciales
// incorrectas). Se propaga para que la capa HTTP retorne el payload original.
type APIError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
	Status      int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("keycloak: %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("keycloak: %s", e.Code)
}

// Client cliente del realm de Keycloak: autenticación de usuarios y
// administración (alta, roles, baja). El token de admin se cachea hasta poco
// antes de su expiración; el acceso al caché está protegido porque los
// handlers de Fiber invocan el cliente concurrentemente.
type Client struct {
	baseURL   string
	realm     string
	adminUser string
	adminPass string
	clientID  string
	http      *http.Client

	mu            sync.Mutex
	adminToken    string
	adminTokenExp time.Time
}

// NewClient construye el cliente con un timeout de red de 30 s.
func NewClient(cfg config.KeycloakConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		realm:     cfg.Realm,
		adminUser: cfg.AdminUser,
		adminPass: cfg.AdminPass,
		clientID:  cfg.ClientID,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// AvailableRoles roles de realm reconocidos.
func (c *Client) AvailableRoles() []string {
	return entity.ValidRoles
}

// Authenticate ejecuta el password grant contra el realm. Si Keycloak
// responde con error (credenciales inválidas, usuario deshabilitado) se
// devuelve *APIError con el payload original.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*ports.TokenResponse, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {c.clientID},
		"username":   {username},
		"password":   {password},
	}
	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.baseURL, c.realm)

	var token ports.TokenResponse
	if err := c.postForm(ctx, endpoint, form, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Logout invalida el refresh token en Keycloak.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"client_id":     {c.clientID},
		"refresh_token": {refreshToken},
	}
	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/logout", c.baseURL, c.realm)
	return c.postForm(ctx, endpoint, form, nil)
}

// CreateUser da de alta el usuario en el realm con email verificado y
// contraseña no temporal. Devuelve el ID asignado por Keycloak (tomado del
// header Location).
func (c *Client) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	body := map[string]any{
		"username":      email,
		"email":         email,
		"firstName":     displayName,
		"enabled":       true,
		"emailVerified": true,
		"credentials": []map[string]any{
			{"type": "password", "value": password, "temporary": false},
		},
	}
	endpoint := fmt.Sprintf("%s/admin/realms/%s/users", c.baseURL, c.realm)

	resp, err := c.adminRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("keycloak: no se pudo obtener el ID del usuario creado")
	}
	parts := strings.Split(location, "/")
	return parts[len(parts)-1], nil
}

// AssignRealmRole asigna un rol de realm al usuario. El rol se consulta por
// nombre en el realm en lugar de fijar IDs del import.
func (c *Client) AssignRealmRole(ctx context.Context, userID, role string) error {
	roleEndpoint := fmt.Sprintf("%s/admin/realms/%s/roles/%s", c.baseURL, c.realm, url.PathEscape(role))
	resp, err := c.adminRequest(ctx, http.MethodGet, roleEndpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("rol %q: %w", role, err)
	}

	var rep map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return fmt.Errorf("decode role representation: %w", err)
	}

	mappingEndpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s/role-mappings/realm", c.baseURL, c.realm, url.PathEscape(userID))
	resp2, err := c.adminRequest(ctx, http.MethodPost, mappingEndpoint, []map[string]any{rep})
	if err != nil {
		return err
	}
	defer resp2.Body.Close()
	return checkStatus(resp2)
}

// DeleteUser elimina el usuario del realm.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s", c.baseURL, c.realm, url.PathEscape(userID))
	resp, err := c.adminRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// UserRole devuelve el rol de realm del usuario identificado por email.
// Si el usuario no tiene ningún rol reconocido devuelve Cliente.
func (c *Client) UserRole(ctx context.Context, email string) (string, error) {
	usersEndpoint := fmt.Sprintf("%s/admin/realms/%s/users?email=%s&exact=true", c.baseURL, c.realm, url.QueryEscape(email))
	resp, err := c.adminRequest(ctx, http.MethodGet, usersEndpoint, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var users []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return "", fmt.Errorf("decode users: %w", err)
	}
	if len(users) == 0 {
		return "", fmt.Errorf("keycloak: usuario %s no encontrado en el realm", email)
	}

	rolesEndpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s/role-mappings/realm", c.baseURL, c.realm, url.PathEscape(users[0].ID))
	resp2, err := c.adminRequest(ctx, http.MethodGet, rolesEndpoint, nil)
	if err != nil {
		return "", err
	}
	defer resp2.Body.Close()
	if err := checkStatus(resp2); err != nil {
		return "", err
	}

	var roles []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&roles); err != nil {
		return "", fmt.Errorf("decode role mappings: %w", err)
	}
	for _, r := range roles {
		for _, valid := range entity.ValidRoles {
			if r.Name == valid {
				return r.Name, nil
			}
		}
	}
	return entity.RoleCliente, nil
}

// adminToken devuelve un token de admin vigente, pidiendo uno nuevo solo
// cuando el cacheado expiró.
func (c *Client) getAdminToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.adminToken != "" && time.Now().Before(c.adminTokenExp) {
		return c.adminToken, nil
	}

	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {"admin-cli"},
		"username":   {c.adminUser},
		"password":   {c.adminPass},
	}
	endpoint := fmt.Sprintf("%s/realms/master/protocol/openid-connect/token", c.baseURL)

	var token ports.TokenResponse
	if err := c.postForm(ctx, endpoint, form, &token); err != nil {
		return "", fmt.Errorf("obtener token admin: %w", err)
	}

	c.adminToken = token.AccessToken
	c.adminTokenExp = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenMargin)
	return c.adminToken, nil
}

// adminRequest ejecuta una petición a la API de administración con el token
// admin. body nil envía la petición sin cuerpo.
func (c *Client) adminRequest(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	token, err := c.getAdminToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = strings.NewReader(string(raw))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// postForm envía un formulario url-encoded y decodifica la respuesta JSON en
// out (si out no es nil). Errores de Keycloak se devuelven como *APIError.
func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkStatus convierte respuestas no exitosas en *APIError con el payload
// de error de Keycloak cuando está disponible.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{Code: http.StatusText(resp.StatusCode), Status: resp.StatusCode}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, apiErr)
	}
	return apiErr
}
