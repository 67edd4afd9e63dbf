package entity_test

import (
	"strings"
	"testing"

	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registro válido de referencia; cada test muta solo lo que necesita.
func validRegistration() entity.RegistrationInput {
	return entity.RegistrationInput{
		InstitutionName: "Clínica del Norte",
		TaxID:           "900123456-7",
		Email:           "contacto@clinicadelnorte.co",
		Address:         "Calle 45 # 12-34",
		Phone:           "6015551234",
		InstitutionType: "Clínica",
		Specialty:       "Cadena de frío",
		ApplicantName:   "Ana Pérez",
		ApplicantEmail:  "ana.perez@clinicadelnorte.co",
		Password:        "secreto123",
		ConfirmPassword: "secreto123",
		Role:            entity.RoleCliente,
	}
}

func TestParseStatus_ValoresEscribibles(t *testing.T) {
	s, err := entity.ParseStatus("APROBADO")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAprobado, s)

	// Se normaliza mayúsculas y espacios
	s, err = entity.ParseStatus("  rechazado ")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRechazado, s)
}

func TestParseStatus_RechazaValoresInvalidos(t *testing.T) {
	for _, invalid := range []string{"", "PENDIENTE", "aprobado!", "NULL"} {
		_, err := entity.ParseStatus(invalid)
		assert.Error(t, err, "valor %q debe rechazarse", invalid)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestRegistrationInput_Valido(t *testing.T) {
	in := validRegistration()
	assert.NoError(t, in.Validate())
}

func TestRegistrationInput_CamposObligatorios(t *testing.T) {
	in := entity.RegistrationInput{}
	err := in.Validate()
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errores, "El campo 'Nombre de la institución' es obligatorio")
	assert.Contains(t, ve.Errores, "El campo 'Correo electrónico' es obligatorio")
	assert.Contains(t, ve.Errores, "El campo 'Contraseña' es obligatorio")
}

func TestRegistrationInput_EmailInvalido(t *testing.T) {
	in := validRegistration()
	in.Email = "no-es-un-email"
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El campo 'Correo electrónico' debe tener un formato válido")
}

func TestRegistrationInput_TelefonoSoloNumeros(t *testing.T) {
	in := validRegistration()
	in.Phone = "601-555-1234"
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El campo 'Teléfono de contacto' debe contener solo números")
}

func TestRegistrationInput_TipoInstitucionFueraDeCatalogo(t *testing.T) {
	in := validRegistration()
	in.InstitutionType = "Farmacia"
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El campo 'Tipo de institución' debe ser: Clínica, Hospital o Laboratorio")
}

func TestRegistrationInput_EspecialidadFueraDeCatalogo(t *testing.T) {
	in := validRegistration()
	in.Specialty = "Cardiología"
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El campo 'Especialidad' debe ser: Cadena de frío, Alto valor o Seguridad")
}

func TestRegistrationInput_PasswordsDistintos(t *testing.T) {
	in := validRegistration()
	in.ConfirmPassword = "otra-clave-123"
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Los campos 'Contraseña' y 'Confirmar contraseña' deben ser iguales")
}

func TestRegistrationInput_NombreExcedeLimite(t *testing.T) {
	in := validRegistration()
	in.InstitutionName = strings.Repeat("a", 101)
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no puede exceder 100 caracteres")
}

func TestAdminUserInput_Valido(t *testing.T) {
	in := entity.AdminUserInput{
		Name:            "Carlos Ruiz",
		Email:           "carlos.ruiz@medisupply.co",
		Password:        "clave-segura-1",
		ConfirmPassword: "clave-segura-1",
		Role:            entity.RoleVentas,
	}
	assert.NoError(t, in.Validate())
}

func TestAdminUserInput_RolFueraDeCatalogo(t *testing.T) {
	in := entity.AdminUserInput{
		Name:            "Carlos Ruiz",
		Email:           "carlos.ruiz@medisupply.co",
		Password:        "clave-segura-1",
		ConfirmPassword: "clave-segura-1",
		Role:            "SuperUsuario",
	}
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El campo 'role' debe ser uno de los siguientes")
}

func TestGenerateLogoFilename(t *testing.T) {
	name := entity.GenerateLogoFilename("Mi Logo.PNG")
	assert.True(t, strings.HasPrefix(name, "logo_"))
	assert.True(t, strings.HasSuffix(name, ".png"), "la extensión se normaliza a minúsculas")

	// Dos llamadas nunca colisionan
	assert.NotEqual(t, name, entity.GenerateLogoFilename("Mi Logo.PNG"))

	// Sin extensión no hay nombre
	assert.Empty(t, entity.GenerateLogoFilename("logo"))
	assert.Empty(t, entity.GenerateLogoFilename("logo."))
	assert.Empty(t, entity.GenerateLogoFilename(""))
}
