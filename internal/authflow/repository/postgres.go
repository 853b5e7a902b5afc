package repository

import (
	"context"
	"database/sql"
	"errors"

	"account-console/backend/internal/authflow/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an execution repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const executionColumns = `id, realm_id, flow_alias, provider_id, display_name, requirement, priority`

// ListByFlow returns the executions of flowAlias in realmID ordered by priority.
func (r *PostgresRepository) ListByFlow(ctx context.Context, realmID, flowAlias string) ([]*domain.Execution, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+executionColumns+` FROM authentication_executions WHERE realm_id = $1 AND flow_alias = $2 ORDER BY priority, id`,
		realmID, flowAlias)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Execution
	for rows.Next() {
		e, err := scanExecution(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID returns the execution for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Execution, error) {
	e, err := scanExecution(r.db.QueryRowContext(ctx, `SELECT `+executionColumns+` FROM authentication_executions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// Create persists the execution. The execution must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Execution) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO authentication_executions (`+executionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.RealmID, e.FlowAlias, e.ProviderID, e.DisplayName, string(e.Requirement), e.Priority)
	return err
}

// UpdateRequirement sets the requirement and returns the updated execution, or nil if not found.
func (r *PostgresRepository) UpdateRequirement(ctx context.Context, realmID, id string, req domain.Requirement) (*domain.Execution, error) {
	e, err := scanExecution(r.db.QueryRowContext(ctx,
		`UPDATE authentication_executions SET requirement = $3 WHERE id = $1 AND realm_id = $2 RETURNING `+executionColumns,
		id, realmID, string(req)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExecution(s scanner) (*domain.Execution, error) {
	var (
		e   domain.Execution
		req string
	)
	if err := s.Scan(&e.ID, &e.RealmID, &e.FlowAlias, &e.ProviderID, &e.DisplayName, &req, &e.Priority); err != nil {
		return nil, err
	}
	e.Requirement = domain.Requirement(req)
	return &e, nil
}
