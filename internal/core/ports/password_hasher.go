package ports

import "context"

// PasswordHasher derives and checks one-way password hashes. Hashing is
// intentionally CPU-expensive; implementations bound concurrency so one slow
// derivation cannot stall unrelated request handling.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Compare returns a non-nil error when password does not match hash.
	Compare(ctx context.Context, hash, password string) error
}
