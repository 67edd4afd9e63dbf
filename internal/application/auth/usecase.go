package auth

import (
	"context"
	"strings"

	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/medisupply/authenticator-api/internal/application/ports"
	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/medisupply/authenticator-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UseCase orquesta login y logout contra el proveedor de identidad.
// El usuario debe existir localmente: un alta directa en Keycloak no basta
// para autenticarse en MediSupply.
type UseCase struct {
	users    repository.UserRepository
	identity ports.IdentityProvider
	log      zerolog.Logger
}

// NewUseCase crea el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, identity ports.IdentityProvider, log zerolog.Logger) *UseCase {
	return &UseCase{users: users, identity: identity, log: log}
}

// Login valida las credenciales, ejecuta el password grant y enriquece la
// respuesta con la información local del usuario.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.User)
	password := req.Password

	var errores []string
	switch {
	case email == "":
		errores = append(errores, "El campo 'user' es obligatorio")
	case !entity.IsValidEmail(email):
		errores = append(errores, "El campo 'user' debe ser un email válido")
	}
	if strings.TrimSpace(password) == "" {
		errores = append(errores, "El campo 'password' es obligatorio")
	}
	if len(errores) > 0 {
		return nil, domain.NewValidationError(errores...)
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Str("email", email).Msg("intento de login de usuario no registrado")
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := uc.identity.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	role, err := uc.identity.UserRole(ctx, email)
	if err != nil {
		// El rol es informativo; un fallo aquí no invalida los tokens.
		uc.log.Warn().Err(err).Str("email", email).Msg("no se pudo consultar el rol del usuario")
		role = entity.RoleCliente
	}

	return &dto.LoginResponse{
		TokenResponse: *tokens,
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.InstitutionName,
		Role:          role,
	}, nil
}

// Logout invalida el refresh token en el proveedor de identidad.
func (uc *UseCase) Logout(ctx context.Context, req dto.LogoutRequest) error {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return domain.NewValidationError("El campo 'refresh_token' es obligatorio")
	}
	return uc.identity.Logout(ctx, req.RefreshToken)
}
