package dto

import (
	"time"

	"github.com/medisupply/authenticator-api/internal/domain/entity"
)

// AssignmentRequest creación de una asignación vendedor-cliente.
type AssignmentRequest struct {
	SellerID string `json:"seller_id"`
	ClientID string `json:"client_id"`
}

// AssignmentResponse asignación creada.
type AssignmentResponse struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"seller_id"`
	ClientID  string    `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAssignmentResponse convierte la entidad a su representación HTTP.
func ToAssignmentResponse(a *entity.AssignedClient) *AssignmentResponse {
	return &AssignmentResponse{
		ID:        a.ID,
		SellerID:  a.SellerID,
		ClientID:  a.ClientID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AssignedClientDetail cliente asignado con su información institucional.
type AssignedClientDetail struct {
	AssignmentID    string    `json:"assignment_id"`
	ClientID        string    `json:"client_id"`
	InstitutionName string    `json:"institution_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	InstitutionType string    `json:"institution_type"`
	Specialty       string    `json:"specialty"`
	Address         string    `json:"address"`
	AssignedAt      time.Time `json:"assigned_at"`
}

// AssignedClientsResponse clientes asignados a un vendedor.
type AssignedClientsResponse struct {
	SellerID        string                 `json:"seller_id"`
	AssignedClients []AssignedClientDetail `json:"assigned_clients"`
	Total           int                    `json:"total"`
}
