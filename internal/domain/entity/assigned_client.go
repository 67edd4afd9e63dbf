package entity

import (
	"strings"
	"time"

	"github.com/medisupply/authenticator-api/internal/domain"
)

// AssignedClient asignación vendedor-cliente. Crear una asignación es el
// evento que aprueba al cliente (status APROBADO + cuenta habilitada).
type AssignedClient struct {
	ID        string
	SellerID  string
	ClientID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate aplica las reglas de negocio de la asignación.
func (a *AssignedClient) Validate() error {
	var errores []string

	if strings.TrimSpace(a.SellerID) == "" {
		errores = append(errores, "El campo 'seller_id' es obligatorio")
	}
	if strings.TrimSpace(a.ClientID) == "" {
		errores = append(errores, "El campo 'client_id' es obligatorio")
	}
	if a.SellerID != "" && a.ClientID != "" && a.SellerID == a.ClientID {
		errores = append(errores, "El vendedor no puede ser asignado como su propio cliente")
	}

	if len(errores) > 0 {
		return domain.NewValidationError(errores...)
	}
	return nil
}
