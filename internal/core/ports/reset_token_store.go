package ports

import "context"

// ResetTokenStore issues and consumes single-use, time-bounded password reset
// tokens. Consume atomically invalidates the token; a second Consume of the
// same token fails with domain.ErrResetTokenInvalid, as does an expired or
// unknown one.
type ResetTokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	Consume(ctx context.Context, token string) (userID string, err error)
}
