package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/internal/service"
	"github.com/retailtrove/storefront/internal/transport"
	"github.com/retailtrove/storefront/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("id is not a positive integer")
	}
	return uint(id), nil
}

func (h *CatalogHTTP) listed(c echo.Context, handler string, items []models.Product, err error) error {
	if err != nil {
		l := logging.FromContext(c.Request().Context()).With("handler", handler)
		l.Error("list_products_error", "status", 500, "reason", "cannot load products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	items, err := h.Svc.ListProducts(c.Request().Context())
	return h.listed(c, "product.get_products", items, err)
}

func (h *CatalogHTTP) GetFeatured(c echo.Context) error {
	items, err := h.Svc.ListFeatured(c.Request().Context())
	return h.listed(c, "product.get_featured", items, err)
}

func (h *CatalogHTTP) GetNewArrivals(c echo.Context) error {
	items, err := h.Svc.ListNewArrivals(c.Request().Context())
	return h.listed(c, "product.get_new_arrivals", items, err)
}

// pathParam returns the decoded segment. echo routes on URL.RawPath when it
// is set, and then hands back params still escaped.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func (h *CatalogHTTP) GetByCategory(c echo.Context) error {
	category, err := pathParam(c, "category")
	if err != nil {
		l := logging.FromContext(c.Request().Context()).With("handler", "product.get_by_category")
		l.Warn("get_by_category_error", "status", 400, "reason", "bad escape", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category")
	}
	items, err := h.Svc.ListByCategory(c.Request().Context(), category)
	return h.listed(c, "product.get_by_category", items, err)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"))
	return h.listed(c, "product.search", items, err)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("Invalid product data", nil)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "validation failed", "error", err)
		return badRequest("Invalid product data", FieldErrors(err))
	}

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
			return badRequest("Invalid product data", nil)
		}
		l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("Invalid product data", nil)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "validation failed", "error", err)
		return badRequest("Invalid product data", FieldErrors(err))
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req.Patch())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("product_update_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
			return badRequest("Invalid product data", nil)
		}
		l.Error("product_update_error", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	l.Info("update_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("product_delete_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("product_delete_error", "status", 409, "reason", "product is referenced", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "Product is referenced by carts or orders")
		}
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
