package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore stores leads in a Postgres table shaped like the hosted one.
type PostgresStore struct {
	db    pgQuerier
	table string
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore initializes a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool, table string) *PostgresStore {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return newPostgresStoreWithDB(pool, table)
}

func newPostgresStoreWithDB(db pgQuerier, table string) *PostgresStore {
	if db == nil {
		panic("leads: db required")
	}
	if strings.TrimSpace(table) == "" {
		table = "leads"
	}
	return &PostgresStore{db: db, table: pgx.Identifier{table}.Sanitize()}
}

// ListOrdered selects every row, newest first.
func (s *PostgresStore) ListOrdered(ctx context.Context) ([]Lead, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, leadsource, createdat
		FROM %s
		ORDER BY createdat DESC
	`, s.table)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	defer rows.Close()

	out := []Lead{}
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.LeadSource, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return out, nil
}

// FindIDByEmail probes for an exact email match.
func (s *PostgresStore) FindIDByEmail(ctx context.Context, email string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE email = $1 LIMIT 1`, s.table)
	var id string
	if err := s.db.QueryRow(ctx, query, email).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("leads: email probe failed: %w", err)
	}
	return id, true, nil
}

// Insert adds a row and lets the database assign id and createdat.
func (s *PostgresStore) Insert(ctx context.Context, form LeadFormData) (*Lead, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, email, phone, leadsource)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone, leadsource, createdat
	`, s.table)
	var lead Lead
	if err := s.db.QueryRow(ctx, query, form.Name, form.Email, form.Phone, form.LeadSource).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.LeadSource,
		&lead.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}
	return &lead, nil
}

// DeleteByID removes the row. Zero affected rows is fine.
func (s *PostgresStore) DeleteByID(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	if _, err := s.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("leads: delete failed: %w", err)
	}
	return nil
}
