package domain

import "time"

// Principal is an authenticated identity (principals table), bound to
// exactly one organization at creation time.
type Principal struct {
	PrincipalID string `db:"principal_id"` // UUID, PRIMARY KEY
	OrgID       string `db:"org_id"`       // UUID, NOT NULL, FK organizations

	Email        string `db:"email"`         // VARCHAR(255), UNIQUE on lower(email)
	PasswordHash string `db:"password_hash"` // argon2id PHC string, never plaintext
	FullName     string `db:"full_name"`     // VARCHAR(100), NOT NULL

	// EmailConfirmed is pre-set at signup (no confirmation email is sent).
	EmailConfirmed bool      `db:"email_confirmed"`
	CreatedAt      time.Time `db:"created_at"`
}
