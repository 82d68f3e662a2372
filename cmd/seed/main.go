package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/search"
	"github.com/retailtrove/storefront/internal/seed"
	pkgconfig "github.com/retailtrove/storefront/pkg/config"
	pkgdb "github.com/retailtrove/storefront/pkg/db"
	"github.com/retailtrove/storefront/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := pkgconfig.Load()
	pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", "storefront-seed")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), time.Minute)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer pkgdb.Close(db)

	var index seed.Indexer
	if cfg.ESURL != "" {
		ix, err := search.NewIndex(ctx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    pkgconfig.EnvDefault("ES_INDEX", "products"),
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		if err := ix.EnsureIndex(ctx); err != nil {
			log.Fatalf("elasticsearch index: %v", err)
		}
		index = ix
	}

	n, err := seed.Seed(ctx, &repo.GormRepo{DB: db}, index)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger.Info("seed finished", "created", n)
}
