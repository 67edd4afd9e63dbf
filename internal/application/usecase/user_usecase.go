package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/medisupply/authenticator-api/internal/application/ports"
	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/medisupply/authenticator-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Extensiones de logo aceptadas.
var allowedLogoExtensions = []string{"jpg", "jpeg", "png"}

// LogoUpload archivo de logo recibido en el registro multipart.
type LogoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UserUseCase orquesta el ciclo de vida de los usuarios institucionales:
// registro, listado, aprobación y altas administradas. La fila local y la
// cuenta en el proveedor de identidad se crean juntas; si la segunda falla
// se revierte la primera.
type UserUseCase struct {
	users        repository.UserRepository
	identity     ports.IdentityProvider
	storage      ports.LogoStorage
	maxLogoBytes int64
	log          zerolog.Logger
}

// NewUserUseCase crea el caso de uso de usuarios.
func NewUserUseCase(
	users repository.UserRepository,
	identity ports.IdentityProvider,
	storage ports.LogoStorage,
	maxLogoBytes int64,
	log zerolog.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:        users,
		identity:     identity,
		storage:      storage,
		maxLogoBytes: maxLogoBytes,
		log:          log,
	}
}

// Register da de alta un usuario institucional. El usuario nace con rol
// Cliente, cuenta deshabilitada y estado pendiente; queda a la espera de
// aprobación por asignación a un vendedor.
func (uc *UserUseCase) Register(ctx context.Context, input entity.RegistrationInput, logo *LogoUpload) (*entity.User, error) {
	input.Role = entity.RoleCliente
	if logo != nil {
		input.LogoFilename = logo.Filename
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	user := &entity.User{
		ID:              uuid.New().String(),
		InstitutionName: strings.TrimSpace(input.InstitutionName),
		TaxID:           strings.TrimSpace(input.TaxID),
		Email:           email,
		Address:         strings.TrimSpace(input.Address),
		Phone:           strings.TrimSpace(input.Phone),
		InstitutionType: strings.TrimSpace(input.InstitutionType),
		Specialty:       strings.TrimSpace(input.Specialty),
		ApplicantName:   strings.TrimSpace(input.ApplicantName),
		ApplicantEmail:  strings.TrimSpace(input.ApplicantEmail),
		Role:            entity.RoleCliente,
		Enabled:         false,
		Status:          entity.StatusPendiente,
	}

	if logo != nil {
		filename, url, err := uc.uploadLogo(ctx, logo)
		if err != nil {
			return nil, err
		}
		user.LogoFilename = filename
		user.LogoURL = url
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	kcID, err := uc.identity.CreateUser(ctx, user.Email, input.Password, user.InstitutionName)
	if err != nil {
		uc.compensateLocal(ctx, user.ID)
		return nil, fmt.Errorf("crear usuario en el proveedor de identidad: %w", err)
	}
	if err := uc.identity.AssignRealmRole(ctx, kcID, entity.RoleCliente); err != nil {
		if delErr := uc.identity.DeleteUser(ctx, kcID); delErr != nil {
			uc.log.Error().Err(delErr).Str("keycloak_id", kcID).Msg("no se pudo revertir el alta en el proveedor de identidad")
		}
		uc.compensateLocal(ctx, user.ID)
		return nil, fmt.Errorf("asignar rol al usuario: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("usuario institucional registrado")
	return user, nil
}

func roleAvailable(available []string, role string) bool {
	for _, r := range available {
		if r == role {
			return true
		}
	}
	return false
}

func (uc *UserUseCase) compensateLocal(ctx context.Context, userID string) {
	if err := uc.users.Delete(ctx, userID); err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("no se pudo revertir el registro local")
	}
}

func (uc *UserUseCase) uploadLogo(ctx context.Context, logo *LogoUpload) (string, string, error) {
	idx := strings.LastIndex(logo.Filename, ".")
	if idx < 0 || idx == len(logo.Filename)-1 {
		return "", "", domain.NewValidationError("El archivo de logo debe tener extensión jpg, jpeg o png")
	}
	ext := strings.ToLower(logo.Filename[idx+1:])
	valid := false
	for _, allowed := range allowedLogoExtensions {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return "", "", domain.NewValidationError("El archivo de logo debe tener extensión jpg, jpeg o png")
	}
	if logo.Size > uc.maxLogoBytes {
		return "", "", domain.NewValidationError(
			fmt.Sprintf("El archivo de logo no puede exceder %d bytes", uc.maxLogoBytes))
	}

	objectName := entity.GenerateLogoFilename(logo.Filename)
	url, err := uc.storage.UploadLogo(ctx, objectName, logo.ContentType, logo.Reader, logo.Size)
	if err != nil {
		return "", "", fmt.Errorf("subir logo: %w", err)
	}
	return objectName, url, nil
}

// GetByID devuelve un usuario o domain.ErrUserNotFound.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// List devuelve el listado paginado de usuarios.
func (uc *UserUseCase) List(ctx context.Context, page, perPage int, statusLabel string) (*dto.UserListResponse, error) {
	var statusFilter *entity.Status
	if strings.TrimSpace(statusLabel) != "" {
		status, err := entity.ParseStatus(statusLabel)
		if err != nil {
			return nil, err
		}
		statusFilter = &status
	}

	offset := (page - 1) * perPage
	users, err := uc.users.List(ctx, perPage, offset, statusFilter)
	if err != nil {
		return nil, err
	}
	total, err := uc.users.Count(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		s := dto.UserSummary{
			ID:              u.ID,
			InstitutionName: u.InstitutionName,
			Email:           u.Email,
			InstitutionType: u.InstitutionType,
			Phone:           u.Phone,
		}
		if u.Status != entity.StatusPendiente {
			label := string(u.Status)
			s.Status = &label
		}
		summaries = append(summaries, s)
	}

	return &dto.UserListResponse{
		Users:      summaries,
		Pagination: dto.NewPagination(page, perPage, total),
	}, nil
}

// UpdateStatus aprueba o rechaza un usuario. APROBADO habilita la cuenta,
// RECHAZADO la deshabilita. Devuelve el usuario actualizado.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, id, statusLabel string) (*entity.User, error) {
	status, err := entity.ParseStatus(statusLabel)
	if err != nil {
		return nil, err
	}

	enabled := status == entity.StatusAprobado
	if err := uc.users.UpdateStatus(ctx, id, status, enabled); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", id).Str("status", string(status)).Msg("estado de usuario actualizado")
	return uc.GetByID(ctx, id)
}

// DeleteAll elimina todos los usuarios locales y devuelve cuántos había.
func (uc *UserUseCase) DeleteAll(ctx context.Context) (int, error) {
	count, err := uc.users.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Int("deleted", count).Msg("borrado masivo de usuarios")
	return count, nil
}

// AdminCreate da de alta un usuario operativo directamente en el proveedor
// de identidad, con el rol indicado y la cuenta habilitada. Los usuarios
// operativos no tienen fila institucional local.
func (uc *UserUseCase) AdminCreate(ctx context.Context, input entity.AdminUserInput) (*dto.AdminUserResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	role := strings.TrimSpace(input.Role)
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)

	// El rol además debe existir en el realm del proveedor de identidad; un
	// realm recortado puede reconocer menos roles que el catálogo local.
	if !roleAvailable(uc.identity.AvailableRoles(), role) {
		return nil, domain.NewValidationError(
			fmt.Sprintf("El rol %q no está disponible en el proveedor de identidad", role))
	}

	kcID, err := uc.identity.CreateUser(ctx, email, input.Password, name)
	if err != nil {
		return nil, fmt.Errorf("crear usuario en el proveedor de identidad: %w", err)
	}
	if err := uc.identity.AssignRealmRole(ctx, kcID, role); err != nil {
		if delErr := uc.identity.DeleteUser(ctx, kcID); delErr != nil {
			uc.log.Error().Err(delErr).Str("keycloak_id", kcID).Msg("no se pudo revertir el alta en el proveedor de identidad")
		}
		return nil, fmt.Errorf("asignar rol al usuario: %w", err)
	}

	uc.log.Info().Str("keycloak_id", kcID).Str("role", role).Msg("usuario operativo creado por administrador")
	return &dto.AdminUserResponse{ID: kcID, Name: name, Email: email, Role: role}, nil
}
