package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
	"github.com/medisupply/authenticator-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, institution_name, tax_id, email, address, phone, institution_type,
		logo_filename, logo_url, specialty, applicant_name, applicant_email, enabled, status,
		created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario. El estado Pendiente se guarda como NULL.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	query := `
		INSERT INTO users_medisupply (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.InstitutionName, user.TaxID, user.Email, user.Address, user.Phone,
		user.InstitutionType, user.LogoFilename, user.LogoURL, user.Specialty,
		user.ApplicantName, user.ApplicantEmail, user.Enabled, statusToDB(user.Status),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users_medisupply WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id), "get user by id")
}

// GetByEmail obtiene un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users_medisupply WHERE email = $1 LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, email), "get user by email")
}

// List devuelve usuarios ordenados por nombre de institución, con filtro
// opcional por status.
func (r *UserRepo) List(ctx context.Context, limit, offset int, status *entity.Status) ([]*entity.User, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		query := `SELECT ` + userColumns + `
			FROM users_medisupply WHERE status = $1
			ORDER BY institution_name ASC LIMIT $2 OFFSET $3`
		rows, err = r.db.Query(ctx, query, string(*status), limit, offset)
	} else {
		query := `SELECT ` + userColumns + `
			FROM users_medisupply
			ORDER BY institution_name ASC LIMIT $1 OFFSET $2`
		rows, err = r.db.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Count devuelve el total de usuarios, filtrado por status si se indica.
func (r *UserRepo) Count(ctx context.Context, status *entity.Status) (int, error) {
	var (
		total int
		err   error
	)
	if status != nil {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM users_medisupply WHERE status = $1`, string(*status)).Scan(&total)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users_medisupply`).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// UpdateStatus fija el estado de aprobación y la bandera enabled.
func (r *UserRepo) UpdateStatus(ctx context.Context, id string, status entity.Status, enabled bool) error {
	query := `UPDATE users_medisupply SET status = $2, enabled = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, statusToDB(status), enabled)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users_medisupply WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// DeleteAll elimina todos los usuarios y devuelve cuántos había.
func (r *UserRepo) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users_medisupply`)
	if err != nil {
		return 0, fmt.Errorf("delete all users: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// scanUser lee una fila de users_medisupply. Todas las columnas opcionales
// del DDL son nullable (las filas previas a la migración pueden traer NULL en
// cualquiera de ellas), así que se leen vía puntero y NULL queda como vacío.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var taxID, address, phone, institutionType, logoFilename, logoURL,
		specialty, applicantName, applicantEmail, status *string
	err := row.Scan(
		&u.ID, &u.InstitutionName, &taxID, &u.Email, &address, &phone,
		&institutionType, &logoFilename, &logoURL, &specialty,
		&applicantName, &applicantEmail, &u.Enabled, &status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.TaxID = fromNullable(taxID)
	u.Address = fromNullable(address)
	u.Phone = fromNullable(phone)
	u.InstitutionType = fromNullable(institutionType)
	u.LogoFilename = fromNullable(logoFilename)
	u.LogoURL = fromNullable(logoURL)
	u.Specialty = fromNullable(specialty)
	u.ApplicantName = fromNullable(applicantName)
	u.ApplicantEmail = fromNullable(applicantEmail)
	if status != nil {
		u.Status = entity.Status(*status)
	}
	return &u, nil
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// statusToDB mapea Pendiente a NULL; el resto se persiste literal.
func statusToDB(s entity.Status) *string {
	if s == entity.StatusPendiente {
		return nil
	}
	v := string(s)
	return &v
}
