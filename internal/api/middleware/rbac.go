package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

// RequireRoles enforces role-based access control against the closed role
// set. It must run after Auth: the role is trusted from the verified token,
// never re-read from the credential store.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(domain.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
