package ports

import (
	"context"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

// RegisterInput carries the optional registration fields with their named
// defaults: a zero Role becomes domain.DefaultRole, an empty Name stays empty.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Register(ctx context.Context, in RegisterInput) (token string, user *domain.User, err error)
	// ForgotPassword acknowledges regardless of whether the email exists.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	Profile(ctx context.Context, subjectID string) (*domain.User, error)
}
