package ports

import "github.com/agenciapet/petpal-manager/internal/core/domain"

// TokenCodec mints and verifies signed, time-bounded session tokens.
// Verify returns domain.ErrTokenExpired, domain.ErrTokenSignature, or
// domain.ErrTokenMalformed on failure.
type TokenCodec interface {
	Issue(subjectID string, role domain.Role) (string, error)
	Verify(token string) (domain.Claims, error)
}
