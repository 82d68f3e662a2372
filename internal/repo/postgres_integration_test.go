//go:build integration

package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pkgdb "github.com/retailtrove/storefront/pkg/db"
)

func newPostgresRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("storefront"),
		tcpostgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pkgdb.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &GormRepo{DB: db}
	require.NoError(t, r.AutoMigrate(ctx))
	return r
}

func TestPostgres_ConcurrentAddCartItemKeepsOneRow(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, "Premium Watch", "Accessories", "299.99")

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.AddCartItem(ctx, "race", p.ID, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := r.ListCartItems(ctx, "race")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}

func TestPostgres_SearchIsCaseInsensitive(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()
	seedProduct(t, r, "Premium Watch", "Accessories", "299.99")
	seedProduct(t, r, "Yoga Mat", "Fitness", "49.99")

	upper, err := r.SearchProducts(ctx, "WATCH")
	require.NoError(t, err)
	lower, err := r.SearchProducts(ctx, "watch")
	require.NoError(t, err)
	assert.Equal(t, ids(upper), ids(lower))
	assert.Len(t, lower, 1)
}
