package dto

import (
	"time"

	"github.com/medisupply/authenticator-api/internal/domain/entity"
)

// RegisterRequest registro de un usuario institucional.
type RegisterRequest struct {
	InstitutionName string `json:"institution_name" form:"institution_name"`
	TaxID           string `json:"tax_id" form:"tax_id"`
	Email           string `json:"email" form:"email"`
	Address         string `json:"address" form:"address"`
	Phone           string `json:"phone" form:"phone"`
	InstitutionType string `json:"institution_type" form:"institution_type"`
	LogoFilename    string `json:"logo_filename" form:"logo_filename"`
	Specialty       string `json:"specialty" form:"specialty"`
	ApplicantName   string `json:"applicant_name" form:"applicant_name"`
	ApplicantEmail  string `json:"applicant_email" form:"applicant_email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// UserResponse representación completa de un usuario (sin credenciales).
type UserResponse struct {
	ID              string    `json:"id"`
	InstitutionName string    `json:"institution_name"`
	TaxID           string    `json:"tax_id"`
	Email           string    `json:"email"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	InstitutionType string    `json:"institution_type"`
	LogoFilename    string    `json:"logo_filename"`
	LogoURL         string    `json:"logo_url"`
	Specialty       string    `json:"specialty"`
	ApplicantName   string    `json:"applicant_name"`
	ApplicantEmail  string    `json:"applicant_email"`
	Role            string    `json:"role"`
	Enabled         bool      `json:"enabled"`
	Status          *string   `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToUserResponse convierte la entidad a su representación HTTP. El estado
// Pendiente se serializa como null, igual que en la columna.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:              u.ID,
		InstitutionName: u.InstitutionName,
		TaxID:           u.TaxID,
		Email:           u.Email,
		Address:         u.Address,
		Phone:           u.Phone,
		InstitutionType: u.InstitutionType,
		LogoFilename:    u.LogoFilename,
		LogoURL:         u.LogoURL,
		Specialty:       u.Specialty,
		ApplicantName:   u.ApplicantName,
		ApplicantEmail:  u.ApplicantEmail,
		Role:            u.Role,
		Enabled:         u.Enabled,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.Status != entity.StatusPendiente {
		s := string(u.Status)
		resp.Status = &s
	}
	return resp
}

// UserSummary entrada resumida para el listado paginado.
type UserSummary struct {
	ID              string  `json:"id"`
	InstitutionName string  `json:"institution_name"`
	Email           string  `json:"email"`
	InstitutionType string  `json:"institution_type"`
	Phone           string  `json:"phone"`
	Status          *string `json:"status"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Users      []UserSummary `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// AdminUserRequest creación de usuario por un administrador.
type AdminUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// AdminUserResponse respuesta de la creación administrada (sin credenciales).
type AdminUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateStatusRequest aprobación o rechazo de un usuario.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DeleteAllResponse resultado del borrado masivo.
type DeleteAllResponse struct {
	DeletedCount int `json:"deleted_count"`
}
