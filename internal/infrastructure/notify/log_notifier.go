// Package notify holds reset-token delivery implementations. Real delivery
// (mail, SMS) is an external collaborator; LogNotifier is the development
// stand-in that records the hand-off without exposing the token itself.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier logs that a reset token was issued. The token value is never
// written to the log stream.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	n.log.Info().
		Str("email", email).
		Int("token_len", len(token)).
		Msg("password reset token issued for out-of-band delivery")
	return nil
}
