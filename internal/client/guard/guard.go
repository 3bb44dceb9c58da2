// Package guard holds the client-side navigation guards. They are pure
// decision functions mirroring the server's role checks for UX routing only;
// the authoritative rejection always happens server-side.
package guard

import "github.com/agenciapet/petpal-manager/internal/core/domain"

const (
	// LoginPath is the public login surface.
	LoginPath = "/login"
	// HomePath is the neutral landing page used when a role mismatch makes a
	// destination unavailable.
	HomePath = "/"
)

// State is a snapshot of the client session at navigation time.
type State struct {
	Authenticated bool
	Role          domain.Role
	// ReturnTo is the path remembered from a previously blocked navigation.
	ReturnTo string
}

// Decision is the outcome of evaluating a guard.
type Decision struct {
	Allow      bool
	RedirectTo string
	// RememberPath carries the originally requested path so it can be
	// restored after login.
	RememberPath string
}

// Protected gates navigation to an authenticated surface. Without a session
// it redirects to login, remembering the requested path. With a session but a
// mismatched cached role it redirects to the neutral home path — advisory
// routing, not an error.
func Protected(s State, path string, requiredRoles ...domain.Role) Decision {
	if !s.Authenticated {
		return Decision{RedirectTo: LoginPath, RememberPath: path}
	}

	if len(requiredRoles) > 0 {
		for _, r := range requiredRoles {
			if s.Role == r {
				return Decision{Allow: true}
			}
		}
		return Decision{RedirectTo: HomePath}
	}

	return Decision{Allow: true}
}

// Public gates navigation to public-only surfaces such as login: an
// authenticated session is sent back to its remembered destination, or home.
func Public(s State) Decision {
	if !s.Authenticated {
		return Decision{Allow: true}
	}

	to := s.ReturnTo
	if to == "" {
		to = HomePath
	}
	return Decision{RedirectTo: to}
}
