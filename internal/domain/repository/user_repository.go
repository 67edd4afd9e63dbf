package repository

import (
	"context"

	"github.com/medisupply/authenticator-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios institucionales.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve usuarios ordenados por nombre de institución. Si status
	// no es nil filtra por esa etiqueta (consulta servida por el índice de
	// status).
	List(ctx context.Context, limit, offset int, status *entity.Status) ([]*entity.User, error)
	// Count devuelve el total de usuarios, con el mismo filtro opcional por
	// status que List para que la paginación describa el conjunto filtrado.
	Count(ctx context.Context, status *entity.Status) (int, error)
	// UpdateStatus fija status y enabled de un usuario. Devuelve
	// domain.ErrUserNotFound si no existe.
	UpdateStatus(ctx context.Context, id string, status entity.Status, enabled bool) error
	Delete(ctx context.Context, id string) error
	// DeleteAll elimina todos los usuarios y devuelve cuántos había.
	DeleteAll(ctx context.Context) (int, error)
}
