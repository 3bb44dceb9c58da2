package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password at
	// login; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken signals a registration against an already-registered
	// email (case-insensitive).
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound signals a lookup for a subject that no longer resolves.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole signals a role string outside the closed set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrForbidden signals a valid token with insufficient role.
	ErrForbidden = errors.New("forbidden")

	// ErrResetTokenInvalid covers unknown, expired, and already-consumed
	// reset tokens alike.
	ErrResetTokenInvalid = errors.New("invalid reset token")
)

// Token verification failures. The HTTP boundary collapses all three into a
// single 401 so the response does not reveal which check failed.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)
