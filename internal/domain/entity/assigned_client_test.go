package entity_test

import (
	"testing"

	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignedClient_Valido(t *testing.T) {
	a := entity.AssignedClient{
		ID:       "a1",
		SellerID: "seller-1",
		ClientID: "client-1",
	}
	assert.NoError(t, a.Validate())
}

func TestAssignedClient_CamposObligatorios(t *testing.T) {
	a := entity.AssignedClient{}
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El campo 'seller_id' es obligatorio")
	assert.Contains(t, err.Error(), "El campo 'client_id' es obligatorio")
}

func TestAssignedClient_VendedorNoPuedeSerSuPropioCliente(t *testing.T) {
	a := entity.AssignedClient{SellerID: "u1", ClientID: "u1"}
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El vendedor no puede ser asignado como su propio cliente")
}
