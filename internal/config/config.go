package config

import (
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	pkgconfig "github.com/retailtrove/storefront/pkg/config"
)

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

type Config struct {
	pkgconfig.Config

	Storage     string
	SQLitePath  string
	AutoMigrate bool

	AdminPasswordHash string
	AdminTokenTTL     time.Duration

	TaxRate decimal.Decimal

	ESIndex string
}

func Load() *Config {
	base := pkgconfig.Load()

	cfg := &Config{
		Config: base,

		Storage:     pkgconfig.EnvDefault("STORAGE", StoragePostgres),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		AutoMigrate: pkgconfig.EnvBoolDefault("DB_AUTO_MIGRATE", false),

		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTokenTTL:     time.Duration(pkgconfig.EnvIntDefault("ADMIN_TOKEN_TTL", 60)) * time.Minute,

		TaxRate: parseRate(os.Getenv("TAX_RATE")),

		ESIndex: pkgconfig.EnvDefault("ES_INDEX", "products"),
	}

	pkgconfig.MustOneOf(cfg.Storage, "STORAGE", StoragePostgres, StorageSQLite, StorageMemory)
	if cfg.Storage == StoragePostgres {
		pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	}
	if cfg.AdminPasswordHash != "" {
		pkgconfig.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	}
	return cfg
}

var defaultTaxRate = decimal.RequireFromString("0.10")

func parseRate(v string) decimal.Decimal {
	if v == "" {
		return defaultTaxRate
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		log.Printf("warning: invalid TAX_RATE %q, using %s", v, defaultTaxRate)
		return defaultTaxRate
	}
	return d
}
