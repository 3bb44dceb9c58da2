package guard

import (
	"testing"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

func TestProtected_NoSessionRedirectsToLogin(t *testing.T) {
	d := Protected(State{}, "/contracts")
	if d.Allow {
		t.Fatalf("expected redirect")
	}
	if d.RedirectTo != LoginPath {
		t.Fatalf("expected login redirect, got %q", d.RedirectTo)
	}
	if d.RememberPath != "/contracts" {
		t.Fatalf("requested path not remembered: %q", d.RememberPath)
	}
}

func TestProtected_AuthenticatedNoRoleRequirement(t *testing.T) {
	d := Protected(State{Authenticated: true, Role: domain.RoleCliente}, "/dashboard")
	if !d.Allow {
		t.Fatalf("expected allow, got redirect to %q", d.RedirectTo)
	}
}

func TestProtected_RoleMatch(t *testing.T) {
	s := State{Authenticated: true, Role: domain.RoleFinanceiro}
	d := Protected(s, "/billing", domain.RoleAdmin, domain.RoleFinanceiro)
	if !d.Allow {
		t.Fatalf("expected allow for financeiro, got redirect to %q", d.RedirectTo)
	}
}

func TestProtected_RoleMismatchRedirectsHome(t *testing.T) {
	s := State{Authenticated: true, Role: domain.RoleCliente}
	d := Protected(s, "/billing", domain.RoleAdmin, domain.RoleFinanceiro)
	if d.Allow {
		t.Fatalf("expected redirect")
	}
	// Advisory UX routing: a neutral page, not an error surface.
	if d.RedirectTo != HomePath {
		t.Fatalf("expected home redirect, got %q", d.RedirectTo)
	}
	if d.RememberPath != "" {
		t.Fatalf("role mismatch should not remember a path")
	}
}

func TestPublic_UnauthenticatedAllowed(t *testing.T) {
	if d := Public(State{}); !d.Allow {
		t.Fatalf("expected allow on public surface")
	}
}

func TestPublic_AuthenticatedReturnsToRememberedPath(t *testing.T) {
	d := Public(State{Authenticated: true, Role: domain.RoleAdmin, ReturnTo: "/contracts"})
	if d.Allow {
		t.Fatalf("expected redirect away from public surface")
	}
	if d.RedirectTo != "/contracts" {
		t.Fatalf("expected remembered destination, got %q", d.RedirectTo)
	}
}

func TestPublic_AuthenticatedDefaultsHome(t *testing.T) {
	d := Public(State{Authenticated: true, Role: domain.RoleAdmin})
	if d.RedirectTo != HomePath {
		t.Fatalf("expected home, got %q", d.RedirectTo)
	}
}
