package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema creates the leads table used by PostgresRepository.
const Schema = `
CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	phone         TEXT NOT NULL,
	message       TEXT NOT NULL DEFAULT '',
	postal_code   TEXT NOT NULL DEFAULT '',
	street        TEXT NOT NULL DEFAULT '',
	neighborhood  TEXT NOT NULL DEFAULT '',
	city          TEXT NOT NULL DEFAULT '',
	state         TEXT NOT NULL DEFAULT '',
	property_id   TEXT NOT NULL DEFAULT '',
	source        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS leads_created_at_idx ON leads (created_at DESC);
`

// DB is the subset of *pgxpool.Pool used by PostgresRepository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const leadColumns = `id, name, email, phone, message, postal_code, street,
	neighborhood, city, state, property_id, source, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (*Lead, error) {
	var l Lead
	var source string
	if err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.PostalCode, &l.Street,
		&l.Neighborhood, &l.City, &l.State, &l.PropertyID, &source, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Source = Source(source)
	return &l, nil
}

// PostgresRepository stores leads in PostgreSQL.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository creates a repository on db.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the table if it does not exist.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate leads: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, lead *Lead) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leads (id, name, email, phone, message, postal_code, street,
			neighborhood, city, state, property_id, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, lead.ID, lead.Name, lead.Email, lead.Phone, lead.Message, lead.PostalCode, lead.Street,
		lead.Neighborhood, lead.City, lead.State, lead.PropertyID, string(lead.Source), lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// Compile-time interface check
var _ Repository = (*PostgresRepository)(nil)
