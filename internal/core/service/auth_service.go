package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
	"github.com/agenciapet/petpal-manager/internal/core/ports"
)

// sentinelHash is a valid bcrypt digest of a throwaway value. Login runs a
// compare against it when the email is unknown so both failure paths cost one
// hash comparison.
const sentinelHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService orchestrates login, registration, password reset, and profile
// retrieval. It keeps no state of its own; every request is resolved against
// the injected collaborators.
type AuthService struct {
	users    ports.UserDirectory
	codec    ports.TokenCodec
	hasher   ports.PasswordHasher
	resets   ports.ResetTokenStore
	notifier ports.ResetNotifier
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserDirectory,
	codec ports.TokenCodec,
	hasher ports.PasswordHasher,
	resets ports.ResetTokenStore,
	notifier ports.ResetNotifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		codec:    codec,
		hasher:   hasher,
		resets:   resets,
		notifier: notifier,
		log:      log,
	}
}

// Login validates the credentials and mints a session token carrying the
// user's current role. Unknown email and wrong password are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.hasher.Compare(ctx, sentinelHash, password)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if s.hasher.Compare(ctx, user.PasswordHash, password) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Register creates the user and returns a freshly issued token, identical in
// shape to Login's. An omitted role falls back to domain.DefaultRole.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	} else if _, err := domain.ParseRole(string(role)); err != nil {
		return "", nil, err
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.codec.Issue(created.ID, created.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, created, nil
}

// ForgotPassword acknowledges regardless of whether the email resolves, so
// responses cannot be used to enumerate accounts. When the user exists a
// single-use reset token is issued and handed to the notifier.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	resetToken, err := s.resets.Issue(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, resetToken); err != nil {
		return fmt.Errorf("deliver reset token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

// ResetPassword consumes the single-use token and overwrites the password
// hash. A consumed, expired, or unknown token fails uniformly.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" || newPassword == "" {
		return domain.ErrResetTokenInvalid
	}

	userID, err := s.resets.Consume(ctx, resetToken)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

// Profile resolves the subject behind a verified token. The id may have
// stopped resolving between issuance and use.
func (s *AuthService) Profile(ctx context.Context, subjectID string) (*domain.User, error) {
	return s.users.FindByID(ctx, subjectID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
