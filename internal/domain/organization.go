package domain

import "time"

// Organization categories accepted at signup. Values come from the
// front-end signup form and are stored as-is.
const (
	CategoryHopital     = "hopital"
	CategoryClinique    = "clinique"
	CategoryPharmacie   = "pharmacie"
	CategoryParticulier = "particulier"
)

// ValidCategories lists the accepted organization categories.
var ValidCategories = []string{
	CategoryHopital,
	CategoryClinique,
	CategoryPharmacie,
	CategoryParticulier,
}

// Organization is the tenant record (organizations table).
// An organization must never outlive a signup request without at least
// one principal referencing it; the signup compensation and the orphan
// reconciler enforce that together.
type Organization struct {
	OrgID     string    `db:"org_id"`     // UUID, PRIMARY KEY (DB-assigned)
	Name      string    `db:"name"`       // VARCHAR(200), NOT NULL
	Category  string    `db:"category"`   // VARCHAR(50), NOT NULL
	Email     string    `db:"email"`      // VARCHAR(255), NOT NULL, lowercased
	CreatedAt time.Time `db:"created_at"` // TIMESTAMPTZ, DEFAULT now()
}
