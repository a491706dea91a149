package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amos-136/maditrack/internal/domain"
)

// PostgresOrganizationsRepository organizations repository backed by the
// organizations table.
type PostgresOrganizationsRepository struct {
	db *sql.DB
}

// NewPostgresOrganizationsRepository creates the organizations repository.
func NewPostgresOrganizationsRepository(db *sql.DB) *PostgresOrganizationsRepository {
	return &PostgresOrganizationsRepository{db: db}
}

var _ OrganizationsRepository = (*PostgresOrganizationsRepository)(nil)

// CreateOrganization inserts a new organization and returns its id.
func (r *PostgresOrganizationsRepository) CreateOrganization(ctx context.Context, org *domain.Organization) (string, error) {
	if org == nil {
		return "", fmt.Errorf("organization is required")
	}
	if org.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if org.Category == "" {
		return "", fmt.Errorf("category is required")
	}

	var orgID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO organizations (name, category, email)
		 VALUES ($1, $2, $3)
		 RETURNING org_id::text`,
		org.Name,
		org.Category,
		org.Email,
	).Scan(&orgID)
	if err != nil {
		return "", fmt.Errorf("failed to create organization: %w", err)
	}

	return orgID, nil
}

// GetOrganization fetches one organization by id.
func (r *PostgresOrganizationsRepository) GetOrganization(ctx context.Context, orgID string) (*domain.Organization, error) {
	if orgID == "" {
		return nil, fmt.Errorf("org_id is required")
	}

	query := `
		SELECT
			org_id::text,
			name,
			category,
			COALESCE(email, '') as email,
			created_at
		FROM organizations
		WHERE org_id = $1::uuid
	`

	var org domain.Organization
	err := r.db.QueryRowContext(ctx, query, orgID).Scan(
		&org.OrgID,
		&org.Name,
		&org.Category,
		&org.Email,
		&org.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &org, nil
}

// CountRecentByEmail counts organizations created with this contact email
// since the given instant.
func (r *PostgresOrganizationsRepository) CountRecentByEmail(ctx context.Context, email string, since time.Time) (int, error) {
	if email == "" {
		return 0, fmt.Errorf("email is required")
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organizations WHERE email = $1 AND created_at >= $2`,
		email, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent organizations: %w", err)
	}

	return count, nil
}

// DeleteOrganization hard-deletes an organization row.
func (r *PostgresOrganizationsRepository) DeleteOrganization(ctx context.Context, orgID string) error {
	if orgID == "" {
		return fmt.Errorf("org_id is required")
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM organizations WHERE org_id = $1::uuid`,
		orgID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListOrphans returns organizations created before the cutoff that no
// principal references, oldest first.
func (r *PostgresOrganizationsRepository) ListOrphans(ctx context.Context, before time.Time, limit int) ([]*domain.Organization, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			o.org_id::text,
			o.name,
			o.category,
			COALESCE(o.email, '') as email,
			o.created_at
		FROM organizations o
		LEFT JOIN principals p ON p.org_id = o.org_id
		WHERE p.principal_id IS NULL
		  AND o.created_at < $1
		ORDER BY o.created_at
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphan organizations: %w", err)
	}
	defer rows.Close()

	orgs := []*domain.Organization{}
	for rows.Next() {
		var org domain.Organization
		err := rows.Scan(
			&org.OrgID,
			&org.Name,
			&org.Category,
			&org.Email,
			&org.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, &org)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organizations: %w", err)
	}

	return orgs, nil
}
