package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retailtrove/storefront/internal/service"
	"github.com/retailtrove/storefront/internal/transport"
	"github.com/retailtrove/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	cartID, err := pathParam(c, "cartId")
	if err != nil {
		l.Warn("get_cart_error", "status", 400, "reason", "bad escape", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid cart ID")
	}

	items, err := h.Svc.GetCart(ctx, cartID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "reason", "cannot load cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch cart items")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) GetSummary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_summary")

	cartID, err := pathParam(c, "cartId")
	if err != nil {
		l.Warn("get_cart_summary_error", "status", 400, "reason", "bad escape", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid cart ID")
	}

	summary, err := h.Svc.Summary(ctx, cartID)
	if err != nil {
		l.Error("get_cart_summary_error", "status", 500, "reason", "cannot load cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch cart summary")
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("Invalid cart item data", nil)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "validation failed", "error", err)
		return badRequest("Invalid cart item data", FieldErrors(err))
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.Svc.AddToCart(ctx, req.CartID, req.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
			return badRequest("Invalid cart item data", nil)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("add_to_cart_error", "status", 500, "reason", "cannot add item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	l.Info("add_to_cart_success", "cart_id", item.CartID, "item_id", item.ID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_cart_item_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid cart item ID")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_item_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("Invalid quantity", nil)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_cart_item_error", "status", 400, "reason", "validation failed", "error", err)
		return badRequest("Invalid quantity", FieldErrors(err))
	}

	item, removed, err := h.Svc.UpdateQuantity(ctx, id, *req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_cart_item_error", "status", 400, "reason", "quantity out of range", "error", err)
			return badRequest("Invalid quantity", nil)
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_cart_item_error", "status", 404, "reason", "item not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		l.Error("update_cart_item_error", "status", 500, "reason", "cannot update item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update cart item")
	}

	if removed {
		l.Info("cart_item_removed", "item_id", id)
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	id, err := parseID(c)
	if err != nil {
		l.Warn("remove_cart_item_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid cart item ID")
	}

	ok, err := h.Svc.RemoveItem(ctx, id)
	if err != nil {
		l.Error("remove_cart_item_error", "status", 500, "reason", "cannot remove item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove cart item")
	}
	if !ok {
		l.Warn("remove_cart_item_error", "status", 404, "reason", "item not found")
		return echo.NewHTTPError(http.StatusNotFound, "Cart item not found")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear_cart")

	cartID, err := pathParam(c, "cartId")
	if err != nil {
		l.Warn("clear_cart_error", "status", 400, "reason", "bad escape", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid cart ID")
	}

	n, err := h.Svc.ClearCart(ctx, cartID)
	if err != nil {
		l.Error("clear_cart_error", "status", 500, "reason", "cannot clear cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to clear cart")
	}

	l.Info("clear_cart_success", "cart_id", cartID, "removed", n)
	return c.JSON(http.StatusOK, transport.ClearCartResponse{Removed: n})
}
