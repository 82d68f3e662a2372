package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retailtrove/storefront/internal/service"
	"github.com/retailtrove/storefront/internal/transport"
	"github.com/retailtrove/storefront/pkg/logging"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.login")

	var req transport.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_login_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("Invalid login data", nil)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("admin_login_error", "status", 400, "reason", "validation failed", "error", err)
		return badRequest("Invalid login data", FieldErrors(err))
	}

	token, exp, err := h.Svc.Login(ctx, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("admin_login_error", "status", 401, "reason", "rejected", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		l.Error("admin_login_error", "status", 500, "reason", "cannot issue token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to log in")
	}

	l.Info("admin_login_success")
	return c.JSON(http.StatusOK, transport.AdminLoginResponse{Token: token, ExpiresAt: exp})
}
