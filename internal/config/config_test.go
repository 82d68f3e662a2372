package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("TAX_RATE", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_TOKEN_TTL", "")
	t.Setenv("ES_INDEX", "")

	cfg := Load()
	require.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "0.1", cfg.TaxRate.String())
	assert.Equal(t, time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Equal(t, "storefront", cfg.ServiceName)
}

func TestParseRate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.2", parseRate("0.2").String())
	assert.True(t, parseRate("abc").Equal(defaultTaxRate))
	assert.True(t, parseRate("-1").Equal(defaultTaxRate))
}
