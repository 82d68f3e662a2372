package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/transport"
)

func orderForm() map[string]any {
	return map[string]any{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
		"phone": "+44 20 0000 0000", "address": "12 St James's Square",
		"city": "London", "state": "LDN", "postalCode": "SW1Y 4JH", "country": "UK",
		"total": "60.48",
	}
}

func TestCreateOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, env *testEnv) {
		mug := env.seedProduct(t, "Mug", "Home", "24.99", false, false)

		rec := env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{
				{"productId": mug.ID, "productName": "Mug", "price": "24.99", "quantity": 2},
				{"productId": mug.ID, "productName": "Mug", "price": 5},
			},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"total":"60.48"`)
		created := decode[models.Order](t, rec)
		require.NotZero(t, created.ID)
		require.Len(t, created.Items, 2)
		assert.Equal(t, 1, created.Items[1].Quantity)
		assert.Equal(t, created.ID, created.Items[0].OrderID)

		rec = env.do(t, http.MethodGet, "/api/orders/"+strconv.Itoa(int(created.ID)), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[models.Order](t, rec)
		assert.Equal(t, "ada@example.com", got.Email)
		assert.Len(t, got.Items, 2)

		rec = env.do(t, http.MethodGet, "/api/orders/999", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decode[errorBody](t, rec).Message)

		rec = env.do(t, http.MethodGet, "/api/orders/x", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateOrder_Validation(t *testing.T) {
	forEachStore(t, func(t *testing.T, env *testEnv) {
		mug := env.seedProduct(t, "Mug", "Home", "24.99", false, false)
		item := map[string]any{"productId": mug.ID, "productName": "Mug", "price": "24.99"}

		rec := env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid order items data", decode[errorBody](t, rec).Message)

		form := orderForm()
		form["email"] = "not-an-email"
		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": form,
			"items": []map[string]any{item},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorBody](t, rec)
		assert.Equal(t, "Invalid order data", body.Message)
		assert.Contains(t, body.Errors, "order.email")

		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"items": []map[string]any{item},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid order data", decode[errorBody](t, rec).Message)

		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{{"productId": mug.ID, "productName": "Mug"}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body = decode[errorBody](t, rec)
		assert.Equal(t, "Invalid order items data", body.Message)
		assert.Contains(t, body.Errors, "items[0].price")

		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{{"productId": 999, "productName": "Ghost", "price": "1"}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid order items data", decode[errorBody](t, rec).Message)

		form = orderForm()
		form["total"] = "99999999999"
		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": form,
			"items": []map[string]any{item},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body = decode[errorBody](t, rec)
		assert.Equal(t, "Invalid order data", body.Message)
		assert.Contains(t, body.Errors, "order.total")

		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{{"productId": mug.ID, "productName": "Mug", "price": "100000000"}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body = decode[errorBody](t, rec)
		assert.Equal(t, "Invalid order items data", body.Message)
		assert.Contains(t, body.Errors, "items[0].price")

		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{{"productId": mug.ID, "productName": "Mug", "price": "24.99", "quantity": 10001}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[errorBody](t, rec).Errors, "items[0].quantity")

		rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{{"productId": mug.ID, "productName": "Mug", "price": "10.005"}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/orders", nil, echo.HeaderAuthorization, adminBearer(t))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]models.Order](t, rec))
	})
}

func TestListOrders_Admin(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryRepo())
	mug := env.seedProduct(t, "Mug", "Home", "24.99", false, false)

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/api/orders", map[string]any{
			"order": orderForm(),
			"items": []map[string]any{{"productId": mug.ID, "productName": "Mug", "price": "24.99"}},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders", nil, echo.HeaderAuthorization, adminBearer(t))
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]models.Order](t, rec)
	require.Len(t, orders, 2)
	assert.Greater(t, orders[0].ID, orders[1].ID)

	rec = env.do(t, http.MethodGet, "/api/orders?page=2&size=1", nil, echo.HeaderAuthorization, adminBearer(t))
	require.Equal(t, http.StatusOK, rec.Code)
	paged := decode[[]models.Order](t, rec)
	require.Len(t, paged, 1)
	assert.Equal(t, orders[1].ID, paged[0].ID)

	rec = env.do(t, http.MethodGet, "/api/orders?page=3&size=1", nil, echo.HeaderAuthorization, adminBearer(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Order](t, rec))
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query         string
		offset, limit int
	}{
		{"", 0, 0},
		{"?page=2", defaultPageSize, defaultPageSize},
		{"?page=3&size=10", 20, 10},
		{"?page=0&size=5", 0, 5},
		{"?page=x&size=1000", 0, defaultPageSize},
	}
	e := echo.New()
	for _, tc := range cases {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/orders"+tc.query, nil), httptest.NewRecorder())
		offset, limit := pageParams(c)
		assert.Equal(t, tc.offset, offset, tc.query)
		assert.Equal(t, tc.limit, limit, tc.query)
	}
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryRepo())

	rec := env.do(t, http.MethodPost, "/api/admin/login", map[string]any{"password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decode[errorBody](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/admin/login", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorBody](t, rec).Errors, "password")

	rec = env.do(t, http.MethodPost, "/api/admin/login", map[string]any{"password": adminPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[transport.AdminLoginResponse](t, rec)
	require.NotEmpty(t, login.Token)
	assert.False(t, login.ExpiresAt.IsZero())

	rec = env.do(t, http.MethodGet, "/api/orders", nil, echo.HeaderAuthorization, "Bearer "+login.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
