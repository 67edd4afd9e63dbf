package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/medisupply/authenticator-api/internal/domain/repository"
)

var _ repository.AssignedClientRepository = (*AssignedClientRepo)(nil)

// AssignedClientRepo implementación del puerto AssignedClientRepository sobre PostgreSQL.
type AssignedClientRepo struct {
	db Querier
}

// NewAssignedClientRepository construye el adaptador de persistencia para asignaciones.
func NewAssignedClientRepository(db Querier) *AssignedClientRepo {
	return &AssignedClientRepo{db: db}
}

// Create persiste una asignación vendedor-cliente.
func (r *AssignedClientRepo) Create(ctx context.Context, a *entity.AssignedClient) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	query := `
		INSERT INTO assigned_clients (id, seller_id, client_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, a.ID, a.SellerID, a.ClientID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert assigned client: %w", err)
	}
	return nil
}

// GetBySellerID lista las asignaciones de un vendedor, más recientes primero.
func (r *AssignedClientRepo) GetBySellerID(ctx context.Context, sellerID string) ([]*entity.AssignedClient, error) {
	query := `
		SELECT id, seller_id, client_id, created_at, updated_at
		FROM assigned_clients WHERE seller_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list assigned clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.AssignedClient
	for rows.Next() {
		var a entity.AssignedClient
		if err := rows.Scan(&a.ID, &a.SellerID, &a.ClientID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assigned client: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
