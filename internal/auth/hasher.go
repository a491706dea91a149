package auth

import "context"

// PasswordHasher hashes and verifies signup credentials. The raw password
// never leaves this boundary in any other form.
type PasswordHasher interface {
	HashPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, password, encodedHash string) (bool, error)
}
