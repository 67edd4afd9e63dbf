package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/rs/zerolog"
)

// Identificadores de la migración de status sobre la tabla de usuarios.
const (
	UsersTable   = "users_medisupply"
	StatusColumn = "status"
	StatusIndex  = "idx_users_medisupply_status"

	statusComment = "Estado del usuario: NULL=pendiente de evaluación, " +
		"APROBADO=asignado a un vendedor, RECHAZADO=rechazado por un administrador"
)

// identPattern identificadores SQL admitidos en sentencias DDL (no se pueden
// parametrizar, así que se validan antes de interpolar).
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ColumnInfo definición de una columna según el catálogo del esquema
// (information_schema.columns).
type ColumnInfo struct {
	Name       string
	DataType   string
	MaxLength  *int
	IsNullable bool
	Default    *string
}

// Migrator aplica cambios de esquema idempotentes y verificables.
// Cada migración corre completa dentro de una transacción: o se aplica todo
// o no se aplica nada. Re-ejecutar contra un esquema ya migrado es un no-op
// gracias a las guardas IF NOT EXISTS; ejecuciones concurrentes las serializa
// el lock de esquema de PostgreSQL.
type Migrator struct {
	db  PoolIface
	log zerolog.Logger
}

// NewMigrator construye el runner de migraciones.
func NewMigrator(db PoolIface, log zerolog.Logger) *Migrator {
	return &Migrator{db: db, log: log}
}

// EnsureBaseSchema crea las tablas base si no existen. La columna status NO
// se crea aquí: la agrega la migración versionada AddStatusColumn, de modo
// que las filas previas a esa migración queden en NULL (pendiente).
func (m *Migrator) EnsureBaseSchema(ctx context.Context) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users_medisupply (
			id VARCHAR(36) PRIMARY KEY,
			institution_name VARCHAR(100) NOT NULL,
			tax_id VARCHAR(50),
			email VARCHAR(100) NOT NULL UNIQUE,
			address VARCHAR(200),
			phone VARCHAR(20),
			institution_type VARCHAR(20),
			logo_filename VARCHAR(255),
			logo_url TEXT,
			specialty VARCHAR(20),
			applicant_name VARCHAR(80),
			applicant_email VARCHAR(100),
			enabled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS assigned_clients (
			id VARCHAR(36) PRIMARY KEY,
			seller_id VARCHAR(36) NOT NULL,
			client_id VARCHAR(36) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assigned_clients_seller_id ON assigned_clients (seller_id)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure base schema: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	m.log.Info().Msg("esquema base verificado")
	return nil
}

// AddStatusColumn aplica la migración de status: agrega la columna
// VARCHAR(50) NULL si no existe, fija el comentario documental y crea el
// índice de búsqueda por status, todo en una sola transacción. Tras el
// commit verifica la columna contra el catálogo del esquema y devuelve su
// definición; una discrepancia se reporta como error distinto
// (domain.ErrVerificationMismatch) porque la transacción ya quedó aplicada.
func (m *Migrator) AddStatusColumn(ctx context.Context) (*ColumnInfo, error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	exists, err := tableExists(ctx, tx, UsersTable)
	if err != nil {
		return nil, fmt.Errorf("check table: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrTableMissing, UsersTable)
	}

	if err := ensureColumn(ctx, tx, UsersTable, StatusColumn, "VARCHAR(50)"); err != nil {
		return nil, err
	}
	if err := setColumnComment(ctx, tx, UsersTable, StatusColumn, statusComment); err != nil {
		return nil, err
	}
	if err := ensureIndex(ctx, tx, StatusIndex, UsersTable, StatusColumn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	m.log.Info().
		Str("table", UsersTable).
		Str("column", StatusColumn).
		Msg("migración de status aplicada")

	return m.verifyStatusColumn(ctx)
}

// VerifyColumn consulta el catálogo del esquema y devuelve la definición de
// la columna, o nil si no existe.
func (m *Migrator) VerifyColumn(ctx context.Context, table, column string) (*ColumnInfo, error) {
	query := `
		SELECT column_name, data_type, character_maximum_length, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = $1 AND column_name = $2`

	var (
		info       ColumnInfo
		isNullable string
	)
	err := m.db.QueryRow(ctx, query, table, column).Scan(
		&info.Name, &info.DataType, &info.MaxLength, &isNullable, &info.Default,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query schema catalog: %w", err)
	}
	info.IsNullable = isNullable == "YES"
	return &info, nil
}

// verifyStatusColumn valida nombre, tipo, longitud, nulabilidad y default de
// la columna status tras el commit.
func (m *Migrator) verifyStatusColumn(ctx context.Context) (*ColumnInfo, error) {
	info, err := m.VerifyColumn(ctx, UsersTable, StatusColumn)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%w: la columna %s.%s no existe tras la migración",
			domain.ErrVerificationMismatch, UsersTable, StatusColumn)
	}

	var problemas []string
	if info.DataType != "character varying" {
		problemas = append(problemas, fmt.Sprintf("tipo %q (se esperaba character varying)", info.DataType))
	}
	if info.MaxLength == nil || *info.MaxLength != 50 {
		problemas = append(problemas, "longitud máxima distinta de 50")
	}
	if !info.IsNullable {
		problemas = append(problemas, "la columna no admite NULL")
	}
	if info.Default != nil {
		problemas = append(problemas, fmt.Sprintf("default inesperado %q", *info.Default))
	}
	if len(problemas) > 0 {
		return info, fmt.Errorf("%w: %s", domain.ErrVerificationMismatch, strings.Join(problemas, "; "))
	}
	return info, nil
}

// tableExists consulta el catálogo dentro de la transacción.
func tableExists(ctx context.Context, tx pgx.Tx, table string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)`, table).Scan(&exists)
	return exists, err
}

// ensureColumn agrega la columna solo si no existe (idempotente).
func ensureColumn(ctx context.Context, tx pgx.Tx, table, column, sqlType string) error {
	if err := validIdent(table, column); err != nil {
		return err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s NULL", table, column, sqlType)
	if _, err := tx.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

// setColumnComment fija el comentario documental de la columna. COMMENT ON no
// acepta parámetros, por lo que el texto se escapa manualmente.
func setColumnComment(ctx context.Context, tx pgx.Tx, table, column, comment string) error {
	if err := validIdent(table, column); err != nil {
		return err
	}
	escaped := strings.ReplaceAll(comment, "'", "''")
	stmt := fmt.Sprintf("COMMENT ON COLUMN %s.%s IS '%s'", table, column, escaped)
	if _, err := tx.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("comment on %s.%s: %w", table, column, err)
	}
	return nil
}

// ensureIndex crea un índice no único sobre la columna si no existe.
func ensureIndex(ctx context.Context, tx pgx.Tx, name, table, column string) error {
	if err := validIdent(name, table, column); err != nil {
		return err
	}
	stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, column)
	if _, err := tx.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

func validIdent(idents ...string) error {
	for _, id := range idents {
		if !identPattern.MatchString(id) {
			return fmt.Errorf("identificador SQL inválido: %q", id)
		}
	}
	return nil
}
