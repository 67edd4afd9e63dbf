package repository

import (
	"context"

	"github.com/medisupply/authenticator-api/internal/domain/entity"
)

// AssignedClientRepository puerto de persistencia para asignaciones vendedor-cliente.
type AssignedClientRepository interface {
	Create(ctx context.Context, assignment *entity.AssignedClient) error
	GetBySellerID(ctx context.Context, sellerID string) ([]*entity.AssignedClient, error)
}
