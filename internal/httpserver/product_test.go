package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/service"
	"github.com/retailtrove/storefront/pkg/tokens"
)

func TestGetProduct_Handler(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryRepo())
	p := env.seedProduct(t, "Premium Watch", "Accessories", "299.99", true, false)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: env.Store}}

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+strconv.Itoa(int(p.ID)), nil)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(p.ID)))

	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"299.99"`)
	assert.Contains(t, rec.Body.String(), `"imageUrl":`)

	resp := decode[models.Product](t, rec)
	assert.Equal(t, p.ID, resp.ID)
	assert.Equal(t, "Premium Watch", resp.Name)
	assert.True(t, resp.Featured)
}

func TestGetProduct_Errors(t *testing.T) {
	forEachStore(t, func(t *testing.T, env *testEnv) {
		rec := env.do(t, http.MethodGet, "/api/products/abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid product ID", decode[errorBody](t, rec).Message)

		rec = env.do(t, http.MethodGet, "/api/products/999", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product not found", decode[errorBody](t, rec).Message)
	})
}

func TestCatalogQueries(t *testing.T) {
	forEachStore(t, func(t *testing.T, env *testEnv) {
		watch := env.seedProduct(t, "Premium Watch", "Accessories", "299.99", true, false)
		bag := env.seedProduct(t, "Leather Backpack", "Bags", "159.99", false, true)
		env.seedProduct(t, "Yoga Mat", "Fitness", "49.99", false, false)

		rec := env.do(t, http.MethodGet, "/api/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]models.Product](t, rec), 3)

		rec = env.do(t, http.MethodGet, "/api/products/featured", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		featured := decode[[]models.Product](t, rec)
		require.Len(t, featured, 1)
		assert.Equal(t, watch.ID, featured[0].ID)

		rec = env.do(t, http.MethodGet, "/api/products/new-arrivals", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		arrivals := decode[[]models.Product](t, rec)
		require.Len(t, arrivals, 1)
		assert.Equal(t, bag.ID, arrivals[0].ID)

		rec = env.do(t, http.MethodGet, "/api/products/category/All%20Products", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]models.Product](t, rec), 3)

		rec = env.do(t, http.MethodGet, "/api/products/category/Bags", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]models.Product](t, rec), 1)

		rec = env.do(t, http.MethodGet, "/api/products/category/Nothing", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]models.Product](t, rec))

		upper := env.do(t, http.MethodGet, "/api/products/search?q=WATCH", nil)
		lower := env.do(t, http.MethodGet, "/api/products/search?q=watch", nil)
		require.Equal(t, http.StatusOK, upper.Code)
		assert.Equal(t, lower.Body.String(), upper.Body.String())
		assert.Len(t, decode[[]models.Product](t, lower), 1)

		rec = env.do(t, http.MethodGet, "/api/products/search", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]models.Product](t, rec), 3)
	})
}

func TestGetByCategory_EscapedName(t *testing.T) {
	forEachStore(t, func(t *testing.T, env *testEnv) {
		lamp := env.seedProduct(t, "Desk Lamp", "Home & Garden", "39.99", false, false)
		env.seedProduct(t, "Mug", "Home", "24.99", false, false)

		rec := env.do(t, http.MethodGet, "/api/products/category/Home%20%26%20Garden", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]models.Product](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, lamp.ID, got[0].ID)

		rec = env.do(t, http.MethodGet, "/api/products/category/100%25", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]models.Product](t, rec))
	})
}

func TestAdminProducts_RequireToken(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryRepo())
	body := map[string]any{
		"name": "Mug", "description": "Ceramic", "price": "24.99",
		"imageUrl": "https://img.example/mug", "category": "Home",
	}

	rec := env.do(t, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decode[errorBody](t, rec).Message)

	notAdmin, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokens.AdminClaims{
		IsAdmin:          false,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(testSecret)
	require.NoError(t, err)

	rec = env.do(t, http.MethodPost, "/api/products", body, echo.HeaderAuthorization, "Bearer "+notAdmin)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden: Admin access required", decode[errorBody](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/products", body, echo.HeaderAuthorization, "Bearer garbage")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid token", decode[errorBody](t, rec).Message)
}

func TestAdminProducts_CRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, env *testEnv) {
		auth := adminBearer(t)

		rec := env.do(t, http.MethodPost, "/api/products", map[string]any{
			"name": "Mug", "description": "Ceramic", "price": 24.99,
			"imageUrl": "https://img.example/mug", "category": "Home", "inStock": false,
		}, echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		created := decode[models.Product](t, rec)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "24.99", created.Price.String())
		assert.Equal(t, "5.00", created.Rating.String())
		assert.False(t, created.InStock)
		id := strconv.Itoa(int(created.ID))

		rec = env.do(t, http.MethodPost, "/api/products", map[string]any{
			"name": "", "price": "-1", "imageUrl": "not a url", "category": "All Products",
		}, echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		bad := decode[errorBody](t, rec)
		assert.Equal(t, "Invalid product data", bad.Message)
		assert.Contains(t, bad.Errors, "name")
		assert.Contains(t, bad.Errors, "price")
		assert.Contains(t, bad.Errors, "imageUrl")
		assert.Contains(t, bad.Errors, "category")

		rec = env.do(t, http.MethodPut, "/api/products/"+id, map[string]any{"price": "19.99", "badge": "Sale"},
			echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[models.Product](t, rec)
		assert.Equal(t, "19.99", updated.Price.String())
		require.NotNil(t, updated.Badge)
		assert.Equal(t, "Sale", *updated.Badge)
		assert.Equal(t, "Mug", updated.Name)

		rec = env.do(t, http.MethodPut, "/api/products/999", map[string]any{"name": "x"}, echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodPost, "/api/cart", map[string]any{"cartId": "c1", "productId": created.ID})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/products/"+id, nil, echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusConflict, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/cart/c1/items", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/products/"+id, nil, echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/products/"+id, nil, echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/products/abc", nil, echo.HeaderAuthorization, auth)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
