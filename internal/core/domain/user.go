package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of access levels. Authorization decisions match on
// this type exhaustively; adding a role is a compile-visible change.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleFinanceiro  Role = "financeiro"
	RoleColaborador Role = "colaborador"
	RoleCliente     Role = "cliente"
)

// DefaultRole is assigned when registration does not request a role.
const DefaultRole = RoleColaborador

// ParseRole validates a wire-level role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleFinanceiro, RoleColaborador, RoleCliente:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// User models an identity record in the credential store.
// PasswordHash is one-way derived and never serialized or logged.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
