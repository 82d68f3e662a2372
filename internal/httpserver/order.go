package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/service"
	"github.com/retailtrove/storefront/internal/transport"
	"github.com/retailtrove/storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

// orderValidationMessage names the part of the request that failed.
func orderValidationMessage(fields map[string]string) string {
	for k := range fields {
		if k == "order" || strings.HasPrefix(k, "order.") {
			return "Invalid order data"
		}
	}
	return "Invalid order items data"
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("Invalid order data", nil)
	}
	if err := c.Validate(&req); err != nil {
		fields := FieldErrors(err)
		l.Warn("create_order_error", "status", 400, "reason", "validation failed", "error", err)
		return badRequest(orderValidationMessage(fields), fields)
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return badRequest("Invalid order items data", nil)
		}
		l.Error("create_order_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create order")
	}

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("get_order_error", "status", 500, "reason", "cannot load order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	offset, limit := pageParams(c)
	orders, err := h.Svc.ListOrders(ctx, repo.Page{Offset: offset, Limit: limit})
	if err != nil {
		l.Error("list_orders_error", "status", 500, "reason", "cannot load orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, orders)
}
