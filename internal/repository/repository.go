package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Amos-136/maditrack/internal/domain"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailAlreadyUsed is returned when the unique lower(email)
	// constraint on principals rejects an insert. This constraint is the
	// hard duplicate guarantee behind the advisory 24h signup guard.
	ErrEmailAlreadyUsed = errors.New("email already used")
)

// OrganizationsRepository persists tenant records.
type OrganizationsRepository interface {
	// CreateOrganization inserts the organization and returns the DB-assigned id.
	CreateOrganization(ctx context.Context, org *domain.Organization) (string, error)

	// GetOrganization returns ErrNotFound when the id does not exist.
	GetOrganization(ctx context.Context, orgID string) (*domain.Organization, error)

	// CountRecentByEmail counts organizations created with the given
	// contact email since the given instant (duplicate-signup guard).
	CountRecentByEmail(ctx context.Context, email string, since time.Time) (int, error)

	// DeleteOrganization hard-deletes the organization (signup compensation
	// and orphan sweep only; tenants have no regular teardown).
	DeleteOrganization(ctx context.Context, orgID string) error

	// ListOrphans returns organizations created before the cutoff that no
	// principal references.
	ListOrphans(ctx context.Context, before time.Time, limit int) ([]*domain.Organization, error)
}

// PrincipalsRepository persists authentication principals.
type PrincipalsRepository interface {
	// CreatePrincipal inserts the principal and returns the DB-assigned id.
	// Returns ErrEmailAlreadyUsed on a duplicate email.
	CreatePrincipal(ctx context.Context, p *domain.Principal) (string, error)

	// GetPrincipalByEmail returns ErrNotFound when no principal has the
	// given (lowercased) email.
	GetPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error)
}
