package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"account-console/backend/internal/credential/domain"
	"account-console/backend/internal/db"
)

// ErrNotFound is returned by writes that match no row.
var ErrNotFound = errors.New("credential not found")

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a credential repository that uses the given db for persistence.
// It implements both Repository and OrderRepository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const credentialColumns = `id, user_id, type, user_label, secret_data, credential_data, created_at`

// GetByID returns the credential for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE id = $1`, id)
	c, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// ListByUser returns the user's credentials ordered by creation time.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Credential, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create persists the credential. The credential must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Credential) error {
	label := sql.NullString{String: c.UserLabel, Valid: c.UserLabel != ""}
	data := c.CredentialData
	if data == "" {
		data = "{}"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (`+credentialColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, string(c.Type), label, c.SecretData, data, c.CreatedAt)
	return err
}

// UpdateSecret replaces the secret and credential data of the credential with id.
func (r *PostgresRepository) UpdateSecret(ctx context.Context, id, secretData, credentialData string) error {
	if credentialData == "" {
		credentialData = "{}"
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE credentials SET secret_data = $2, credential_data = $3 WHERE id = $1`,
		id, secretData, credentialData)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// Delete removes the credential with id owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// GetOrder returns the stored credential type order for userID, or nil if none.
func (r *PostgresRepository) GetOrder(ctx context.Context, userID string) ([]domain.TypeID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type FROM credential_order WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.TypeID
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, domain.TypeID(t))
	}
	return out, rows.Err()
}

// SaveOrder replaces the stored order in one transaction; on failure the previous order is kept.
func (r *PostgresRepository) SaveOrder(ctx context.Context, userID string, order []domain.TypeID) error {
	return db.InTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credential_order WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for i, t := range order {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO credential_order (user_id, type, position) VALUES ($1, $2, $3)`,
				userID, string(t), i); err != nil {
				return fmt.Errorf("insert %s: %w", t, err)
			}
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCredential(s scanner) (*domain.Credential, error) {
	var (
		c     domain.Credential
		typ   string
		label sql.NullString
	)
	if err := s.Scan(&c.ID, &c.UserID, &typ, &label, &c.SecretData, &c.CredentialData, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Type = domain.TypeID(typ)
	if label.Valid {
		c.UserLabel = label.String
	}
	return &c, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
