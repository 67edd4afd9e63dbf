package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/medisupply/authenticator-api/internal/application/usecase"
)

// AssignedClientHandler maneja las asignaciones vendedor-cliente.
type AssignedClientHandler struct {
	uc *usecase.AssignedClientUseCase
}

// NewAssignedClientHandler construye el handler de asignaciones.
func NewAssignedClientHandler(uc *usecase.AssignedClientUseCase) *AssignedClientHandler {
	return &AssignedClientHandler{uc: uc}
}

// Create godoc
// @Summary      Asignar cliente a vendedor
// @Description  La asignación aprueba al cliente y habilita su cuenta.
// @Tags         assigned-clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignmentRequest  true  "seller_id, client_id"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/assigned-clients [post]
func (h *AssignedClientHandler) Create(c *fiber.Ctx) error {
	var in dto.AssignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	assignment, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAssignmentResponse(assignment))
}

// GetBySellerID godoc
// @Summary      Clientes asignados a un vendedor
// @Tags         assigned-clients
// @Produce      json
// @Param        user_id  path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.AssignedClientsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/assigned-clients/{user_id} [get]
func (h *AssignedClientHandler) GetBySellerID(c *fiber.Ctx) error {
	out, err := h.uc.GetBySellerID(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
