package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/medisupply/authenticator-api/internal/application/dto"
	"github.com/medisupply/authenticator-api/internal/application/usecase"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
)

// UserHandler maneja registro, consulta y administración de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario institucional
// @Description  Acepta JSON o multipart/form-data; en multipart el campo logo lleva el archivo.
// @Tags         users
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos de registro"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/user [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := entity.RegistrationInput{
		InstitutionName: in.InstitutionName,
		TaxID:           in.TaxID,
		Email:           in.Email,
		Address:         in.Address,
		Phone:           in.Phone,
		InstitutionType: in.InstitutionType,
		LogoFilename:    in.LogoFilename,
		Specialty:       in.Specialty,
		ApplicantName:   in.ApplicantName,
		ApplicantEmail:  in.ApplicantEmail,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}

	var logo *usecase.LogoUpload
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fileHeader, err := c.FormFile("logo")
		if err == nil && fileHeader != nil {
			f, err := fileHeader.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo de logo"})
			}
			defer f.Close()
			logo = &usecase.LogoUpload{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
				Size:        fileHeader.Size,
				Reader:      f,
			}
		}
	}

	user, err := h.uc.Register(c.UserContext(), input, logo)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(user))
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Param        page      query  int     false  "página (>= 1)"
// @Param        per_page  query  int     false  "tamaño de página (1-100)"
// @Param        status    query  string  false  "APROBADO o RECHAZADO"
// @Success      200  {object}  dto.UserListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /auth/user [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)
	if page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "El parámetro 'page' debe ser mayor o igual a 1"})
	}
	if perPage < 1 || perPage > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "El parámetro 'per_page' debe estar entre 1 y 100"})
	}

	out, err := h.uc.List(c.UserContext(), page, perPage, c.Query("status"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar usuario por ID
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /auth/user/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToUserResponse(user))
}

// DeleteAll godoc
// @Summary      Eliminar todos los usuarios
// @Description  Operación de limpieza para ambientes de prueba.
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.DeleteAllResponse
// @Router       /auth/user/all [delete]
func (h *UserHandler) DeleteAll(c *fiber.Ctx) error {
	count, err := h.uc.DeleteAll(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.DeleteAllResponse{DeletedCount: count})
}

// AdminCreate godoc
// @Summary      Crear usuario operativo
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminUserRequest  true  "name, email, password, confirm_password, role"
// @Success      201   {object}  dto.AdminUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/admin/users [post]
func (h *UserHandler) AdminCreate(c *fiber.Ctx) error {
	var in dto.AdminUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdminCreate(c.UserContext(), entity.AdminUserInput{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		Role:            in.Role,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar usuario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateStatusRequest  true  "APROBADO o RECHAZADO"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/admin/users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToUserResponse(user))
}
