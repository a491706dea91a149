package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Amos-136/maditrack/internal/domain"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations (duplicate email on principals_email_lower_key).
const uniqueViolation = "23505"

// PostgresPrincipalsRepository principals repository backed by the
// principals table.
type PostgresPrincipalsRepository struct {
	db *sql.DB
}

// NewPostgresPrincipalsRepository creates the principals repository.
func NewPostgresPrincipalsRepository(db *sql.DB) *PostgresPrincipalsRepository {
	return &PostgresPrincipalsRepository{db: db}
}

var _ PrincipalsRepository = (*PostgresPrincipalsRepository)(nil)

// CreatePrincipal inserts a new principal and returns its id.
// The unique index on lower(email) makes this the race-safety backstop
// for the advisory duplicate-signup guard.
func (r *PostgresPrincipalsRepository) CreatePrincipal(ctx context.Context, p *domain.Principal) (string, error) {
	if p == nil {
		return "", fmt.Errorf("principal is required")
	}
	if p.Email == "" {
		return "", fmt.Errorf("email is required")
	}
	if p.OrgID == "" {
		return "", fmt.Errorf("org_id is required")
	}

	var principalID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO principals (org_id, email, password_hash, full_name, email_confirmed)
		 VALUES ($1::uuid, $2, $3, $4, $5)
		 RETURNING principal_id::text`,
		p.OrgID,
		p.Email,
		p.PasswordHash,
		p.FullName,
		p.EmailConfirmed,
	).Scan(&principalID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return "", ErrEmailAlreadyUsed
		}
		return "", fmt.Errorf("failed to create principal: %w", err)
	}

	return principalID, nil
}

// GetPrincipalByEmail fetches one principal by its lowercased email.
func (r *PostgresPrincipalsRepository) GetPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	query := `
		SELECT
			principal_id::text,
			org_id::text,
			email,
			COALESCE(password_hash, '') as password_hash,
			COALESCE(full_name, '') as full_name,
			email_confirmed,
			created_at
		FROM principals
		WHERE lower(email) = lower($1)
	`

	var p domain.Principal
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&p.PrincipalID,
		&p.OrgID,
		&p.Email,
		&p.PasswordHash,
		&p.FullName,
		&p.EmailConfirmed,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}

	return &p, nil
}
