package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agenciapet/petpal-manager/internal/api/middleware"
	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware and fast-fails
// before any service call: a non-empty subject proves the middleware ran.
func ctxClaims(c echo.Context) (subjectID string, role domain.Role, err error) {
	subjectID, _ = c.Get(middleware.ContextSubjectID).(string)
	role, _ = c.Get(middleware.ContextRole).(domain.Role)
	if subjectID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return subjectID, role, nil
}
