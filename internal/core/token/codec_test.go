package token

import (
	"errors"
	"testing"
	"time"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	c := New("secret", time.Hour)

	raw, err := c.Issue("user-1", domain.RoleFinanceiro)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != "user-1" {
		t.Fatalf("unexpected subject: %s", claims.SubjectID)
	}
	if claims.Role != domain.RoleFinanceiro {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %s", got)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	c := New("secret", time.Hour)
	raw, err := c.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := c.Verify(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Verify_ExpiryInstantIsExpired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New("secret", time.Hour)
	c.now = func() time.Time { return issued }

	raw, err := c.Issue("user-1", domain.RoleCliente)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// now == expiresAt: no leeway is granted.
	c.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := c.Verify(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at the expiry instant, got %v", err)
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	raw, err := New("secret-a", time.Hour).Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := New("secret-b", time.Hour).Verify(raw); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	c := New("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := c.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", raw, err)
		}
	}
}

func TestCodec_Verify_UnknownRoleClaim(t *testing.T) {
	c := New("secret", time.Hour)
	raw, err := c.Issue("user-1", domain.Role("intruso"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := c.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for unknown role, got %v", err)
	}
}

func TestPeek_DecodesWithoutVerifying(t *testing.T) {
	raw, err := New("secret", time.Hour).Issue("user-9", domain.RoleColaborador)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Peek must work even where Verify would reject: no secret is involved.
	claims, err := Peek(raw)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if claims.SubjectID != "user-9" || claims.Role != domain.RoleColaborador {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := Peek("garbage"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
