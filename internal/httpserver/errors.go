package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retailtrove/storefront/internal/transport"
	"github.com/retailtrove/storefront/pkg/logging"
)

func badRequest(message string, fields map[string]string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, transport.ErrorResponse{Message: message, Errors: fields})
}

// ErrorHandler renders every failure as {"message": ..., "errors": ...}.
// Errors that are not *echo.HTTPError become a bare 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := transport.ErrorResponse{Message: http.StatusText(code)}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case transport.ErrorResponse:
			body = m
		case string:
			body = transport.ErrorResponse{Message: m}
		case error:
			body = transport.ErrorResponse{Message: m.Error()}
		default:
			body = transport.ErrorResponse{Message: fmt.Sprint(m)}
		}
		if code >= http.StatusInternalServerError && he.Internal != nil {
			logging.FromContext(c.Request().Context()).Error("internal_error", "error", he.Internal)
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response", "error", err)
	}
}
