package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const (
	StorageMemory   = "memory"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

type Config struct {
	Port    string
	GinMode string

	StorageDriver string
	MongoURI      string
	MongoDB       string
	DatabaseDSN   string

	SeedCatalog bool
	SeedFile    string

	CacheDriver string
	CacheTTL    time.Duration
	RedisAddr   string

	LogMode string
	LogFile string

	RateLimitRPS   float64
	RateLimitBurst int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string

	ShutdownTimeout time.Duration
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	// En producción esto se ignora automáticamente
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", ""),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDB:       getEnv("MONGO_DB", "productCatalog"),
		DatabaseDSN:   getEnv("DATABASE_DSN", ""),

		SeedCatalog: cast.ToBool(getEnv("SEED_CATALOG", "true")),
		SeedFile:    getEnv("SEED_FILE", ""),

		CacheDriver: strings.ToLower(getEnv("CACHE_DRIVER", CacheMemory)),
		CacheTTL:    cast.ToDuration(getEnv("CACHE_TTL", "5m")),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),

		LogMode: getEnv("LOG_MODE", "development"),
		LogFile: getEnv("LOG_FILE", ""),

		RateLimitRPS:   cast.ToFloat64(getEnv("RATE_LIMIT_RPS", "1")),
		RateLimitBurst: cast.ToInt(getEnv("RATE_LIMIT_BURST", "5")),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: cast.ToInt(getEnv("SMTP_PORT", "587")),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", ""),
		MailTo:   getEnv("MAIL_TO", ""),

		ShutdownTimeout: cast.ToDuration(getEnv("SHUTDOWN_TIMEOUT", "15s")),
	}
}

// Validate revisa drivers y cadenas de conexión antes de abrir nada
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StorageMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORAGE_DRIVER=mongo")
		}
	case StoragePostgres, StorageSQLite:
		if c.DatabaseDSN == "" {
			return errors.Errorf("DATABASE_DSN is required when STORAGE_DRIVER=%s", c.StorageDriver)
		}
	default:
		return errors.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.CacheDriver {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when CACHE_DRIVER=redis")
		}
	default:
		return errors.Errorf("unknown CACHE_DRIVER %q", c.CacheDriver)
	}

	if c.CacheTTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// MailEnabled indica si hay servidor SMTP configurado
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailTo != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
