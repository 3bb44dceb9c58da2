package ports

import (
	"context"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

// UserDirectory is the credential-store lookup contract. Emails are compared
// case-insensitively; implementations must guarantee at most one user per
// email.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, newHash string) error
}
