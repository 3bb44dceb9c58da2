package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

func newRBACContext(role any) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(ContextRole, role)
	}
	return c, rec
}

func TestRequireRoles_Allows(t *testing.T) {
	c, rec := newRBACContext(domain.RoleFinanceiro)

	called := false
	handler := RequireRoles(domain.RoleAdmin, domain.RoleFinanceiro)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoles_RejectsMismatch(t *testing.T) {
	c, _ := newRBACContext(domain.RoleCliente)

	handler := RequireRoles(domain.RoleAdmin)(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRoles_MissingClaims(t *testing.T) {
	c, _ := newRBACContext(nil)

	handler := RequireRoles(domain.RoleAdmin)(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
