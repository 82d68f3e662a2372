package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retailtrove/storefront/pkg/logging"
	middleware "github.com/retailtrove/storefront/pkg/middleware/auth"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	AdminHandler   *AdminHTTP
	JWTSecret      []byte

	// Ready backs /health/ready; nil means always ready.
	Ready   func(ctx context.Context) error
	Metrics http.Handler
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Warn("readiness_failed", "error", err)
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	adminMW := middleware.NewAdminMiddleware(d.JWTSecret)
	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/featured", d.CatalogHandler.GetFeatured)
	products.GET("/new-arrivals", d.CatalogHandler.GetNewArrivals)
	products.GET("/category/:category", d.CatalogHandler.GetByCategory)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	products.POST("", d.CatalogHandler.CreateProduct, adminMW.RequireAdmin)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct, adminMW.RequireAdmin)
	products.PATCH("/:id", d.CatalogHandler.UpdateProduct, adminMW.RequireAdmin)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, adminMW.RequireAdmin)

	cart := api.Group("/cart")
	cart.POST("", d.CartHandler.AddToCart)
	cart.GET("/:cartId", d.CartHandler.GetCart)
	cart.GET("/:cartId/summary", d.CartHandler.GetSummary)
	cart.DELETE("/:cartId/items", d.CartHandler.ClearCart)
	cart.PUT("/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/:id", d.CartHandler.RemoveCartItem)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.GET("", d.OrderHandler.ListOrders, adminMW.RequireAdmin)

	if d.AdminHandler != nil {
		api.POST("/admin/login", d.AdminHandler.Login)
	}
}
