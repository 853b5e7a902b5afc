package repository

import (
	"context"
	"database/sql"
	"errors"

	"account-console/backend/internal/realm/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a realm repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the realm for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Realm, error) {
	return r.get(ctx, `SELECT id, name, password_policy, created_at FROM realms WHERE id = $1`, id)
}

// GetByName returns the realm named name, or nil if not found.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*domain.Realm, error) {
	return r.get(ctx, `SELECT id, name, password_policy, created_at FROM realms WHERE name = $1`, name)
}

func (r *PostgresRepository) get(ctx context.Context, query, arg string) (*domain.Realm, error) {
	var realm domain.Realm
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&realm.ID, &realm.Name, &realm.PasswordPolicy, &realm.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &realm, nil
}

// Create persists the realm. The realm must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, realm *domain.Realm) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO realms (id, name, password_policy, created_at) VALUES ($1, $2, $3, $4)`,
		realm.ID, realm.Name, realm.PasswordPolicy, realm.CreatedAt)
	return err
}
