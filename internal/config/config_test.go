package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv borra las variables durante el test; t.Setenv restaura el valor original al final
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "STORAGE_DRIVER", "MONGO_DB", "SEED_CATALOG", "CACHE_DRIVER", "CACHE_TTL",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "SMTP_HOST", "SMTP_PORT", "MAIL_TO", "SHUTDOWN_TIMEOUT")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "productCatalog", cfg.MongoDB)
	assert.True(t, cfg.SeedCatalog)
	assert.Equal(t, CacheMemory, cfg.CacheDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 1.0, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.MailEnabled())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "host=localhost user=catalog dbname=catalog")
	t.Setenv("SEED_CATALOG", "false")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("SMTP_HOST", "smtp.example.cl")
	t.Setenv("MAIL_TO", "ventas@example.cl")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.False(t, cfg.SeedCatalog)
	assert.Equal(t, CacheRedis, cfg.CacheDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.True(t, cfg.MailEnabled())
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{StorageDriver: StorageMemory, CacheDriver: CacheNone, ShutdownTimeout: time.Second}
	}

	cases := map[string]func(c *Config){
		"unknown storage":      func(c *Config) { c.StorageDriver = "oracle" },
		"mongo without uri":    func(c *Config) { c.StorageDriver = StorageMongo },
		"sqlite without dsn":   func(c *Config) { c.StorageDriver = StorageSQLite },
		"unknown cache":        func(c *Config) { c.CacheDriver = "memcached" },
		"redis without addr":   func(c *Config) { c.CacheDriver = CacheRedis },
		"negative rate":        func(c *Config) { c.RateLimitRPS = -1 },
		"zero shutdown window": func(c *Config) { c.ShutdownTimeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	c := valid()
	assert.NoError(t, c.Validate())
}
