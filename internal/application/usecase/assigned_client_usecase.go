package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/medisupply/authenticator-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// AssignedClientUseCase orquesta las asignaciones vendedor-cliente. Asignar
// un cliente es el evento que lo aprueba: la asignación deja al cliente con
// status APROBADO y la cuenta habilitada.
type AssignedClientUseCase struct {
	assignments repository.AssignedClientRepository
	users       repository.UserRepository
	log         zerolog.Logger
}

// NewAssignedClientUseCase crea el caso de uso de asignaciones.
func NewAssignedClientUseCase(
	assignments repository.AssignedClientRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *AssignedClientUseCase {
	return &AssignedClientUseCase{assignments: assignments, users: users, log: log}
}

// Create registra la asignación y aprueba al cliente.
func (uc *AssignedClientUseCase) Create(ctx context.Context, req dto.AssignmentRequest) (*entity.AssignedClient, error) {
	assignment := &entity.AssignedClient{
		ID:       uuid.New().String(),
		SellerID: req.SellerID,
		ClientID: req.ClientID,
	}
	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	seller, err := uc.users.GetByID(ctx, assignment.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrSellerNotFound
	}

	client, err := uc.users.GetByID(ctx, assignment.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrUserNotFound
	}

	if err := uc.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	// La asignación aprueba al cliente y habilita su cuenta.
	if err := uc.users.UpdateStatus(ctx, assignment.ClientID, entity.StatusAprobado, true); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("assignment_id", assignment.ID).
		Str("seller_id", assignment.SellerID).
		Str("client_id", assignment.ClientID).
		Msg("cliente asignado y aprobado")
	return assignment, nil
}

// GetBySellerID devuelve los clientes asignados a un vendedor con su
// información institucional. Devuelve domain.ErrSellerNotFound si el
// vendedor no existe.
func (uc *AssignedClientUseCase) GetBySellerID(ctx context.Context, sellerID string) (*dto.AssignedClientsResponse, error) {
	seller, err := uc.users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrSellerNotFound
	}

	assignments, err := uc.assignments.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	details := make([]dto.AssignedClientDetail, 0, len(assignments))
	for _, a := range assignments {
		detail := dto.AssignedClientDetail{
			AssignmentID: a.ID,
			ClientID:     a.ClientID,
			AssignedAt:   a.CreatedAt,
		}
		client, err := uc.users.GetByID(ctx, a.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			detail.InstitutionName = client.InstitutionName
			detail.Email = client.Email
			detail.Phone = client.Phone
			detail.InstitutionType = client.InstitutionType
			detail.Specialty = client.Specialty
			detail.Address = client.Address
		}
		details = append(details, detail)
	}

	return &dto.AssignedClientsResponse{
		SellerID:        sellerID,
		AssignedClients: details,
		Total:           len(details),
	}, nil
}
