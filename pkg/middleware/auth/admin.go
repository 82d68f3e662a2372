package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/retailtrove/storefront/pkg/logging"
	"github.com/retailtrove/storefront/pkg/tokens"
)

type AdminMiddleware struct {
	JWTSecret []byte
}

func NewAdminMiddleware(secret []byte) *AdminMiddleware {
	return &AdminMiddleware{JWTSecret: secret}
}

// RequireAdmin accepts "Authorization: Bearer <jwt>" whose isAdmin claim is true.
func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth.require_admin")

		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			l.Warn("require_admin_failed", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		claims, err := tokens.AdminClaimsFromToken(token, m.JWTSecret)
		if err != nil {
			if errors.Is(err, tokens.ErrNotAdmin) {
				l.Warn("require_admin_failed", "status", 403, "reason", "not an admin")
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden: Admin access required")
			}
			l.Warn("require_admin_failed", "status", 403, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
		}

		c.Set("admin_subject", claims.Subject)
		return next(c)
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
