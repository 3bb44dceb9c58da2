package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/agenciapet/petpal-manager/internal/api/metrics"
	"github.com/agenciapet/petpal-manager/internal/core/domain"
	"github.com/agenciapet/petpal-manager/internal/core/ports"
)

// Context keys under which the Auth middleware stores verified claims.
// Downstream handlers must read identity from these keys only, never from
// client-supplied data.
const (
	ContextSubjectID = "subject_id"
	ContextRole      = "role"
)

// Auth validates the bearer token and injects the verified claims into the
// request context. Expired, forged, and malformed tokens are all rejected
// with the same 401 body; the failure kind is recorded only in metrics.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyFailureLabel(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(ContextSubjectID, claims.SubjectID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}

func verifyFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignature):
		return "signature"
	default:
		return "malformed"
	}
}
