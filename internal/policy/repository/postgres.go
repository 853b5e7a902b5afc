package repository

import (
	"context"
	"database/sql"

	"account-console/backend/internal/policy/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a policy repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const policyColumns = `id, realm_id, name, rules, enabled, created_at`

// ListByRealm returns all policies of the realm ordered by name.
func (r *PostgresRepository) ListByRealm(ctx context.Context, realmID string) ([]*domain.Policy, error) {
	return r.list(ctx, `SELECT `+policyColumns+` FROM credential_policies WHERE realm_id = $1 ORDER BY name`, realmID)
}

// GetEnabledByRealm returns the realm's enabled policies ordered by name.
func (r *PostgresRepository) GetEnabledByRealm(ctx context.Context, realmID string) ([]*domain.Policy, error) {
	return r.list(ctx, `SELECT `+policyColumns+` FROM credential_policies WHERE realm_id = $1 AND enabled ORDER BY name`, realmID)
}

// Upsert inserts the policy or updates the existing row with the same realm and name.
func (r *PostgresRepository) Upsert(ctx context.Context, p *domain.Policy) (*domain.Policy, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO credential_policies (`+policyColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (realm_id, name) DO UPDATE SET rules = EXCLUDED.rules, enabled = EXCLUDED.enabled
		 RETURNING `+policyColumns,
		p.ID, p.RealmID, p.Name, p.Rules, p.Enabled, p.CreatedAt)
	return scanPolicy(row)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Policy, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPolicy(s interface{ Scan(dest ...any) error }) (*domain.Policy, error) {
	var p domain.Policy
	if err := s.Scan(&p.ID, &p.RealmID, &p.Name, &p.Rules, &p.Enabled, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
