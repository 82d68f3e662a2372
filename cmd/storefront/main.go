package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/retailtrove/storefront/internal/config"
	"github.com/retailtrove/storefront/internal/httpserver"
	"github.com/retailtrove/storefront/internal/metrics"
	"github.com/retailtrove/storefront/internal/mykafka"
	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/search"
	"github.com/retailtrove/storefront/internal/seed"
	"github.com/retailtrove/storefront/internal/service"
	pkgdb "github.com/retailtrove/storefront/pkg/db"
	"github.com/retailtrove/storefront/pkg/logging"
	loggingmw "github.com/retailtrove/storefront/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	var index service.ProductIndex
	if cfg.ESURL != "" {
		ix, err := search.NewIndex(ctx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		if err := ix.EnsureIndex(ctx); err != nil {
			log.Fatalf("elasticsearch index: %v", err)
		}
		index = ix
	}

	var events service.EventPublisher = mykafka.Noop{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		topicsCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := mykafka.EnsureTopics(topicsCtx, cfg.KafkaBrokers[0],
			service.TopicCartEvents, service.TopicOrderEvents, service.TopicProductEvents)
		cancel()
		if err != nil {
			logger.Warn("kafka_topics_error", "error", err)
		}
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = producer
	}

	m := metrics.New("storefront")

	catalog := &service.CatalogService{Repo: store, Index: index, Events: events}
	if cfg.Storage == config.StorageMemory {
		if _, err := seed.Seed(ctx, store, index); err != nil {
			log.Fatalf("seed: %v", err)
		}
	} else if index != nil {
		if n, err := catalog.Reindex(ctx); err != nil {
			logger.Warn("reindex_error", "error", err)
		} else {
			logger.Info("reindex_done", "products", n)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(m.Middleware())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalog},
		CartHandler: &httpserver.CartHTTP{Svc: &service.CartService{
			Repo: store, TaxRate: cfg.TaxRate, Events: events, Metrics: m,
		}},
		OrderHandler: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Repo: store, TaxRate: cfg.TaxRate, Events: events, Metrics: m,
		}},
		AdminHandler: &httpserver.AdminHTTP{Svc: &service.AdminService{
			PasswordHash: cfg.AdminPasswordHash,
			JWTSecret:    cfg.JWTSecret,
			TokenTTL:     cfg.AdminTokenTTL,
		}},
		JWTSecret: cfg.JWTSecret,
		Ready:     store.Ping,
		Metrics:   m.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", "addr", srv.Addr, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}
	closeStore()

	logger.Info("storefront stopped")
}

// openStore builds the repository selected by STORAGE and returns its closer.
func openStore(ctx context.Context, cfg *config.Config) (repo.Store, func(), error) {
	l := logging.FromContext(ctx)

	switch cfg.Storage {
	case config.StorageMemory:
		return repo.NewMemoryRepo(), func() {}, nil

	case config.StorageSQLite:
		db, err := pkgdb.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		r := &repo.GormRepo{DB: db}
		if err := r.AutoMigrate(ctx); err != nil {
			return nil, nil, err
		}
		if _, err := seed.Seed(ctx, r, nil); err != nil {
			return nil, nil, err
		}
		return r, closer(l, r), nil
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	r := &repo.GormRepo{DB: db}
	if cfg.AutoMigrate {
		if err := r.AutoMigrate(ctx); err != nil {
			return nil, nil, err
		}
	}
	return r, closer(l, r), nil
}

func closer(l *slog.Logger, r *repo.GormRepo) func() {
	return func() {
		if err := pkgdb.Close(r.DB); err != nil {
			l.Error("db close error", "error", err)
		}
	}
}
