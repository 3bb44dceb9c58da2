package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

const resetTTL = time.Hour

// ResetTokenStore keeps single-use password reset tokens in Redis.
// Key format: pwreset:<token> → user id. The TTL enforces expiry and GETDEL
// enforces single use in one atomic step each.
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a ResetTokenStore wrapping the given Redis client.
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Issue mints an opaque token bound to userID, valid for one hour.
func (s *ResetTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, s.key(token), userID, resetTTL).Result()
	if err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("store reset token: key collision")
	}
	return token, nil
}

// Consume resolves and atomically invalidates the token. Unknown, expired,
// and already-consumed tokens fail uniformly.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrResetTokenInvalid
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func (s *ResetTokenStore) key(token string) string {
	return "pwreset:" + token
}
