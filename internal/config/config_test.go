package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "REDIS_ADDR", "JWT_TTL", "LOW_STOCK_THRESHOLD", "LEDGER_AUDIT_PURCHASES", "JWT_SECRET")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.True(t, cfg.LedgerAuditPurchases)
	assert.False(t, cfg.CacheEnabled())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "inv", DBPort: "5433", DBTimeZone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=inv port=5433 sslmode=disable TimeZone=UTC", cfg.DSN())

	cfg.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", cfg.DSN())
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "-1")

	_, _, err := Load()
	require.Error(t, err)
}
