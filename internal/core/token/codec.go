// Package token implements the session token codec: HS256-signed JWTs
// carrying the subject id and role, bounded by a fixed TTL set at issuance.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Codec issues and verifies session tokens against a single shared secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New builds a Codec. A non-positive ttl falls back to 24 hours.
func New(secret string, ttl time.Duration) *Codec {
	return NewWithClock(secret, ttl, time.Now)
}

// NewWithClock builds a Codec with an injected clock, used to simulate the
// passage of time in tests.
func NewWithClock(secret string, ttl time.Duration, now func() time.Time) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: now}
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue mints a token for subjectID with the given role. The expiry is fixed
// at issuance and never extended.
func (c *Codec) Issue(subjectID string, role domain.Role) (string, error) {
	now := c.now().UTC()
	claims := sessionClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry of raw and returns its claims.
// Failures map onto exactly three kinds: domain.ErrTokenSignature,
// domain.ErrTokenExpired, and domain.ErrTokenMalformed. All checks run before
// the result is reported, so the failure kind never shortcuts verification.
// Expiry uses no leeway: a token is already invalid the instant now equals
// its expiry.
func (c *Codec) Verify(raw string) (domain.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	var claims sessionClaims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Claims{}, domain.ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Claims{}, domain.ErrTokenExpired
		default:
			return domain.Claims{}, domain.ErrTokenMalformed
		}
	}

	return toDomain(claims)
}

// Peek decodes claims without verifying the signature. It exists solely for
// the client's optimistic local-expiry check; it must never feed an
// authorization decision.
func Peek(raw string) (domain.Claims, error) {
	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return domain.Claims{}, domain.ErrTokenMalformed
	}
	return toDomain(claims)
}

func toDomain(claims sessionClaims) (domain.Claims, error) {
	role, err := domain.ParseRole(claims.Role)
	if err != nil || claims.Subject == "" || claims.ExpiresAt == nil {
		return domain.Claims{}, domain.ErrTokenMalformed
	}

	out := domain.Claims{
		SubjectID: claims.Subject,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
