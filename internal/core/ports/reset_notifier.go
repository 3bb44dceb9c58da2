package ports

import "context"

// ResetNotifier delivers a password reset token out-of-band. Delivery is an
// external collaborator; the service only requires the hand-off.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}
