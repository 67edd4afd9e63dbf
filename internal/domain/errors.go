package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrSellerNotFound       = errors.New("vendedor no encontrado")
	ErrEmailAlreadyExists   = errors.New("ya existe un usuario con este correo electrónico")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrTableMissing         = errors.New("la tabla destino no existe en el esquema")
	ErrVerificationMismatch = errors.New("la verificación post-migración no coincide con la definición esperada")
)

// ValidationError acumula mensajes de validación de negocio.
// El mensaje final une todos los errores con "; ".
type ValidationError struct {
	Errores []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errores, "; ")
}

// NewValidationError construye un error de validación a partir de mensajes.
func NewValidationError(mensajes ...string) *ValidationError {
	return &ValidationError{Errores: mensajes}
}

// IsValidation indica si err (o su cadena) es un error de validación.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
