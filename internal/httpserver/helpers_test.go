package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/retailtrove/storefront/internal/hash"
	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/service"
	pkgdb "github.com/retailtrove/storefront/pkg/db"
	"github.com/retailtrove/storefront/pkg/tokens"
)

const adminPassword = "letmein"

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	E     *echo.Echo
	Store repo.Store
	Ready error
}

func newTestEnv(t *testing.T, store repo.Store) *testEnv {
	t.Helper()

	pwHash, err := hash.HashPassword(adminPassword)
	require.NoError(t, err)

	env := &testEnv{Store: store}
	rate := decimal.RequireFromString("0.10")

	e := echo.New()
	Register(e, &Deps{
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: store}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: store, TaxRate: rate}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: store, TaxRate: rate}},
		AdminHandler: &AdminHTTP{Svc: &service.AdminService{
			PasswordHash: pwHash,
			JWTSecret:    testSecret,
			TokenTTL:     time.Hour,
		}},
		JWTSecret: testSecret,
		Ready:     func(ctx context.Context) error { return env.Ready },
	})
	env.E = e
	return env
}

func newSQLiteStore(t *testing.T) repo.Store {
	t.Helper()

	db, err := pkgdb.OpenSQLite("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.AutoMigrate(context.Background()))
	return r
}

func forEachStore(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	t.Helper()

	factories := map[string]func(t *testing.T) repo.Store{
		"gorm_sqlite": newSQLiteStore,
		"memory":      func(t *testing.T) repo.Store { return repo.NewMemoryRepo() },
	}
	for name, newStore := range factories {
		newStore := newStore
		t.Run(name, func(t *testing.T) {
			fn(t, newTestEnv(t, newStore(t)))
		})
	}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedProduct(t *testing.T, name, category, price string, featured, newArrival bool) models.Product {
	t.Helper()

	p := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       models.MustMoney(price),
		ImageURL:    "https://img.example/" + name,
		Category:    category,
		Featured:    featured,
		NewArrival:  newArrival,
		InStock:     true,
		Rating:      models.DefaultRating,
	}
	require.NoError(t, env.Store.CreateProduct(context.Background(), &p))
	return p
}

func adminBearer(t *testing.T) string {
	t.Helper()
	token, err := tokens.NewAdminToken(testSecret, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)
	return "Bearer " + token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
