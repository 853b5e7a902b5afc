package repository

import (
	"context"
	"database/sql"
	"errors"

	"account-console/backend/internal/membership/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a membership repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetMembershipByUserAndRealm returns the membership for the given user and realm, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetMembershipByUserAndRealm(ctx context.Context, userID, realmID string) (*domain.Membership, error) {
	var (
		m    domain.Membership
		role string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, realm_id, role, created_at FROM memberships WHERE user_id = $1 AND realm_id = $2`,
		userID, realmID).Scan(&m.ID, &m.UserID, &m.RealmID, &role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m.Role = domain.Role(role)
	return &m, nil
}

// CreateMembership persists the membership to the database. The membership must have ID set.
func (r *PostgresRepository) CreateMembership(ctx context.Context, m *domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (id, user_id, realm_id, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.UserID, m.RealmID, string(m.Role), m.CreatedAt)
	return err
}
