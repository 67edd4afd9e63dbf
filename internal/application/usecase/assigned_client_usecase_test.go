package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/medisupply/authenticator-api/internal/application/usecase"
	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
)

// fakeAssignedRepo repositorio de asignaciones en memoria.
type fakeAssignedRepo struct {
	assignments []*entity.AssignedClient
	createErr   error
}

func (r *fakeAssignedRepo) Create(_ context.Context, a *entity.AssignedClient) error {
	if r.createErr != nil {
		return r.createErr
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *fakeAssignedRepo) GetBySellerID(_ context.Context, sellerID string) ([]*entity.AssignedClient, error) {
	var out []*entity.AssignedClient
	for _, a := range r.assignments {
		if a.SellerID == sellerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func sellerAndClient() (*entity.User, *entity.User) {
	seller := &entity.User{ID: "seller-1", Email: "vendedor@medisupply.co", Role: entity.RoleVentas}
	client := &entity.User{
		ID:              "client-1",
		InstitutionName: "Clínica del Norte",
		Email:           "contacto@clinica.co",
		Phone:           "6015551234",
		InstitutionType: "Clínica",
		Specialty:       "Cadena de frío",
		Address:         "Calle 45 # 12-34",
		Role:            entity.RoleCliente,
	}
	return seller, client
}

func TestAssignedClientCreate_ApruebaYHabilitaAlCliente(t *testing.T) {
	seller, client := sellerAndClient()
	users := newFakeUserRepo(seller, client)
	assignments := &fakeAssignedRepo{}
	uc := usecase.NewAssignedClientUseCase(assignments, users, zerolog.Nop())

	out, err := uc.Create(context.Background(), dto.AssignmentRequest{
		SellerID: "seller-1",
		ClientID: "client-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Len(t, assignments.assignments, 1)

	// El evento de asignación aprueba al cliente
	assert.Equal(t, entity.StatusAprobado, client.Status)
	assert.True(t, client.Enabled)
}

func TestAssignedClientCreate_VendedorInexistente(t *testing.T) {
	_, client := sellerAndClient()
	uc := usecase.NewAssignedClientUseCase(&fakeAssignedRepo{}, newFakeUserRepo(client), zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.AssignmentRequest{
		SellerID: "no-existe",
		ClientID: "client-1",
	})
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)
}

func TestAssignedClientCreate_ClienteInexistente(t *testing.T) {
	seller, _ := sellerAndClient()
	uc := usecase.NewAssignedClientUseCase(&fakeAssignedRepo{}, newFakeUserRepo(seller), zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.AssignmentRequest{
		SellerID: "seller-1",
		ClientID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAssignedClientCreate_AutoAsignacionInvalida(t *testing.T) {
	seller, _ := sellerAndClient()
	uc := usecase.NewAssignedClientUseCase(&fakeAssignedRepo{}, newFakeUserRepo(seller), zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.AssignmentRequest{
		SellerID: "seller-1",
		ClientID: "seller-1",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestGetBySellerID_DevuelveDetalleInstitucional(t *testing.T) {
	seller, client := sellerAndClient()
	users := newFakeUserRepo(seller, client)
	assignments := &fakeAssignedRepo{}
	uc := usecase.NewAssignedClientUseCase(assignments, users, zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.AssignmentRequest{
		SellerID: "seller-1",
		ClientID: "client-1",
	})
	require.NoError(t, err)

	out, err := uc.GetBySellerID(context.Background(), "seller-1")
	require.NoError(t, err)

	assert.Equal(t, "seller-1", out.SellerID)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.AssignedClients, 1)

	detail := out.AssignedClients[0]
	assert.Equal(t, "client-1", detail.ClientID)
	assert.Equal(t, "Clínica del Norte", detail.InstitutionName)
	assert.Equal(t, "Cadena de frío", detail.Specialty)
	assert.False(t, detail.AssignedAt.IsZero())
}

func TestGetBySellerID_VendedorInexistente(t *testing.T) {
	uc := usecase.NewAssignedClientUseCase(&fakeAssignedRepo{}, newFakeUserRepo(), zerolog.Nop())

	_, err := uc.GetBySellerID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)
}

func TestGetBySellerID_SinAsignaciones(t *testing.T) {
	seller, _ := sellerAndClient()
	uc := usecase.NewAssignedClientUseCase(&fakeAssignedRepo{}, newFakeUserRepo(seller), zerolog.Nop())

	out, err := uc.GetBySellerID(context.Background(), "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total)
	assert.Empty(t, out.AssignedClients)
}
