package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medisupply/authenticator-api/internal/domain"
)

// Status es el estado de aprobación de un usuario institucional.
// En la base de datos la columna status es VARCHAR(50) NULL: el estado
// pendiente se persiste como NULL para mantener compatibilidad con filas
// anteriores a la migración; APROBADO y RECHAZADO son los únicos valores
// escribibles.
type Status string

const (
	// StatusPendiente usuario sin evaluar (NULL en la columna).
	StatusPendiente Status = ""
	// StatusAprobado usuario asignado a un vendedor.
	StatusAprobado Status = "APROBADO"
	// StatusRechazado usuario rechazado por un administrador.
	StatusRechazado Status = "RECHAZADO"
)

// ParseStatus valida una etiqueta de estado escribible (APROBADO o RECHAZADO).
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusAprobado:
		return StatusAprobado, nil
	case StatusRechazado:
		return StatusRechazado, nil
	default:
		return StatusPendiente, domain.NewValidationError(
			fmt.Sprintf("El campo 'status' debe ser %s o %s", StatusAprobado, StatusRechazado))
	}
}

// Roles válidos del realm.
const (
	RoleAdministrador = "Administrador"
	RoleCompras       = "Compras"
	RoleVentas        = "Ventas"
	RoleLogistica     = "Logistica"
	RoleCliente       = "Cliente"
)

// ValidRoles roles aceptados para cualquier usuario.
var ValidRoles = []string{RoleAdministrador, RoleCompras, RoleVentas, RoleLogistica, RoleCliente}

// Catálogos de institución.
var (
	ValidInstitutionTypes = []string{"Clínica", "Hospital", "Laboratorio"}
	ValidSpecialties      = []string{"Cadena de frío", "Alto valor", "Seguridad"}
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var digitsPattern = regexp.MustCompile(`^\d+$`)

// IsValidEmail valida el formato de un correo electrónico.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// User representa un usuario institucional de MediSupply.
// Las credenciales viven únicamente en Keycloak; aquí nunca se persiste
// contraseña alguna.
type User struct {
	ID              string
	InstitutionName string
	TaxID           string
	Email           string
	Address         string
	Phone           string
	InstitutionType string
	LogoFilename    string
	LogoURL         string
	Specialty       string
	ApplicantName   string
	ApplicantEmail  string
	Role            string
	Enabled         bool
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RegistrationInput datos de registro de un usuario institucional.
// Password y ConfirmPassword se validan y se entregan a Keycloak; nunca
// llegan al repositorio.
type RegistrationInput struct {
	InstitutionName string
	TaxID           string
	Email           string
	Address         string
	Phone           string
	InstitutionType string
	LogoFilename    string
	Specialty       string
	ApplicantName   string
	ApplicantEmail  string
	Password        string
	ConfirmPassword string
	Role            string
}

// Validate aplica las reglas de negocio del registro institucional.
func (in *RegistrationInput) Validate() error {
	var errores []string

	name := strings.TrimSpace(in.InstitutionName)
	if name == "" {
		errores = append(errores, "El campo 'Nombre de la institución' es obligatorio")
	} else if len([]rune(name)) > 100 {
		errores = append(errores, "El campo 'Nombre de la institución' no puede exceder 100 caracteres")
	}

	taxID := strings.TrimSpace(in.TaxID)
	if taxID == "" {
		errores = append(errores, "El campo 'Número de identificación tributaria' es obligatorio")
	} else if len([]rune(taxID)) > 50 {
		errores = append(errores, "El campo 'Número de identificación tributaria' no puede exceder 50 caracteres")
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errores = append(errores, "El campo 'Correo electrónico' es obligatorio")
	case len([]rune(email)) > 100:
		errores = append(errores, "El campo 'Correo electrónico' no puede exceder 100 caracteres")
	case !IsValidEmail(email):
		errores = append(errores, "El campo 'Correo electrónico' debe tener un formato válido")
	}

	address := strings.TrimSpace(in.Address)
	if address == "" {
		errores = append(errores, "El campo 'Dirección' es obligatorio")
	} else if len([]rune(address)) > 200 {
		errores = append(errores, "El campo 'Dirección' no puede exceder 200 caracteres")
	}

	phone := strings.TrimSpace(in.Phone)
	switch {
	case phone == "":
		errores = append(errores, "El campo 'Teléfono de contacto' es obligatorio")
	case len([]rune(phone)) > 20:
		errores = append(errores, "El campo 'Teléfono de contacto' no puede exceder 20 caracteres")
	case !digitsPattern.MatchString(phone):
		errores = append(errores, "El campo 'Teléfono de contacto' debe contener solo números")
	}

	instType := strings.TrimSpace(in.InstitutionType)
	if instType == "" {
		errores = append(errores, "El campo 'Tipo de institución' es obligatorio")
	} else if !contains(ValidInstitutionTypes, instType) {
		errores = append(errores, "El campo 'Tipo de institución' debe ser: Clínica, Hospital o Laboratorio")
	}

	if logo := strings.TrimSpace(in.LogoFilename); len([]rune(logo)) > 255 {
		errores = append(errores, "El campo 'Logo' no puede exceder 255 caracteres")
	}

	specialty := strings.TrimSpace(in.Specialty)
	if specialty == "" {
		errores = append(errores, "El campo 'Especialidad' es obligatorio")
	} else if !contains(ValidSpecialties, specialty) {
		errores = append(errores, "El campo 'Especialidad' debe ser: Cadena de frío, Alto valor o Seguridad")
	}

	applicantName := strings.TrimSpace(in.ApplicantName)
	if applicantName == "" {
		errores = append(errores, "El campo 'Nombre del solicitante' es obligatorio")
	} else if len([]rune(applicantName)) > 80 {
		errores = append(errores, "El campo 'Nombre del solicitante' no puede exceder 80 caracteres")
	}

	applicantEmail := strings.TrimSpace(in.ApplicantEmail)
	switch {
	case applicantEmail == "":
		errores = append(errores, "El campo 'Email del solicitante' es obligatorio")
	case len([]rune(applicantEmail)) > 100:
		errores = append(errores, "El campo 'Email del solicitante' no puede exceder 100 caracteres")
	case !IsValidEmail(applicantEmail):
		errores = append(errores, "El campo 'Email del solicitante' debe tener un formato válido")
	}

	password := strings.TrimSpace(in.Password)
	if password == "" {
		errores = append(errores, "El campo 'Contraseña' es obligatorio")
	} else if len(password) < 8 {
		errores = append(errores, "El campo 'Contraseña' debe tener al menos 8 caracteres")
	}

	confirm := strings.TrimSpace(in.ConfirmPassword)
	if confirm == "" {
		errores = append(errores, "El campo 'Confirmar contraseña' es obligatorio")
	}
	if password != "" && confirm != "" && in.Password != in.ConfirmPassword {
		errores = append(errores, "Los campos 'Contraseña' y 'Confirmar contraseña' deben ser iguales")
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		errores = append(errores, "El campo 'Rol' es obligatorio")
	} else if !contains(ValidRoles, role) {
		errores = append(errores, fmt.Sprintf("El campo 'Rol' debe ser uno de los siguientes: %s", strings.Join(ValidRoles, ", ")))
	}

	if len(errores) > 0 {
		return domain.NewValidationError(errores...)
	}
	return nil
}

// AdminUserInput datos para creación de usuario por un administrador.
type AdminUserInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// Validate aplica las reglas de negocio de la creación administrada.
func (in *AdminUserInput) Validate() error {
	var errores []string

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errores = append(errores, "El campo 'name' es obligatorio")
	} else if len([]rune(name)) > 100 {
		errores = append(errores, "El campo 'name' no puede exceder 100 caracteres")
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errores = append(errores, "El campo 'email' es obligatorio")
	case len([]rune(email)) > 100:
		errores = append(errores, "El campo 'email' no puede exceder 100 caracteres")
	case !IsValidEmail(email):
		errores = append(errores, "El campo 'email' debe ser un email válido")
	}

	password := strings.TrimSpace(in.Password)
	if password == "" {
		errores = append(errores, "El campo 'password' es obligatorio")
	} else if len(password) < 8 {
		errores = append(errores, "El campo 'password' debe tener al menos 8 caracteres")
	}

	if strings.TrimSpace(in.ConfirmPassword) == "" {
		errores = append(errores, "El campo 'confirm_password' es obligatorio")
	} else if password != "" && in.Password != in.ConfirmPassword {
		errores = append(errores, "Los campos 'password' y 'confirm_password' deben ser iguales")
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		errores = append(errores, "El campo 'role' es obligatorio")
	} else if !contains(ValidRoles, role) {
		errores = append(errores, fmt.Sprintf("El campo 'role' debe ser uno de los siguientes: %s", strings.Join(ValidRoles, ", ")))
	}

	if len(errores) > 0 {
		return domain.NewValidationError(errores...)
	}
	return nil
}

// GenerateLogoFilename genera un nombre único para el archivo de logo
// conservando la extensión original. Devuelve vacío si el nombre no trae
// extensión.
func GenerateLogoFilename(originalFilename string) string {
	if originalFilename == "" {
		return ""
	}
	idx := strings.LastIndex(originalFilename, ".")
	if idx < 0 || idx == len(originalFilename)-1 {
		return ""
	}
	ext := strings.ToLower(originalFilename[idx+1:])
	return fmt.Sprintf("logo_%s.%s", uuid.New().String(), ext)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
