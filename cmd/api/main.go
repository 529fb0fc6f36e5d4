package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"industrial-catalog/internal/cache"
	"industrial-catalog/internal/config"
	"industrial-catalog/internal/database"
	"industrial-catalog/internal/handlers"
	"industrial-catalog/internal/logger"
	"industrial-catalog/internal/middleware"
	"industrial-catalog/internal/models"
	"industrial-catalog/internal/notify"
	"industrial-catalog/internal/repository"
	"industrial-catalog/internal/routes"
	"industrial-catalog/internal/seed"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalln("❌ Invalid configuration:", err)
	}

	zlog, err := logger.Init(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalln("❌ Error creating logger:", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		zlog.Fatal("❌ Error opening store", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		zlog.Fatal("❌ Error opening cache", zap.String("driver", cfg.CacheDriver), zap.Error(err))
	}
	loader := cache.NewLoader(c, cfg.CacheTTL)

	if cfg.SeedCatalog {
		if err := seedCatalog(ctx, cfg, store); err != nil {
			zlog.Fatal("❌ Error seeding catalog", zap.Error(err))
		}
		// un caché compartido puede tener listados de un catálogo anterior
		if err := loader.Invalidate(ctx, handlers.ProductCachePrefix); err != nil {
			zlog.Warn("could not purge product cache", zap.Error(err))
		}
	}

	bus := notify.NewBus()
	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.MailEnabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}
	if err := bus.Subscribe(notify.NewNotifier(mailer, cfg.MailTo)); err != nil {
		zlog.Fatal("❌ Error subscribing notifier", zap.Error(err))
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(zlog), gin.Recovery())
	routes.RegisterRoutes(router, routes.Deps{
		Store:          store,
		Loader:         loader,
		Events:         bus,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("🚀 Server running", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("❌ Server error", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// en orden: dejar de aceptar peticiones, vaciar las notificaciones y cerrar conexiones
			"http-server": func(ctx context.Context) error {
				zlog.Info("graceful shutdown initiated")
				if err := server.Shutdown(ctx); err != nil {
					return err
				}
				bus.Wait()
				if err := c.Close(); err != nil {
					zlog.Warn("error closing cache", zap.Error(err))
				}
				return store.Close(ctx)
			},
		},
	)

	exitCode := <-wait
	zlog.Info("application exited", zap.Int("code", exitCode))
	_ = zlog.Sync()
	os.Exit(exitCode)
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		store := repository.NewMongoStore(client, client.Database(cfg.MongoDB))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StoragePostgres, config.StorageSQLite:
		db, err := database.OpenSQL(cfg.StorageDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		store := repository.NewGormStore(db)
		if err := store.AutoMigrate(); err != nil {
			return nil, err
		}
		return store, nil
	default:
		zap.L().Warn("using in-memory storage, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}
}

func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.CacheDriver {
	case config.CacheRedis:
		c := cache.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), "catalog:")
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, errors.Wrap(err, "pinging Redis")
		}
		return c, nil
	case config.CacheNone:
		return cache.Noop{}, nil
	default:
		return cache.NewMemory(time.Minute), nil
	}
}

func seedCatalog(ctx context.Context, cfg *config.Config, store repository.ProductStore) error {
	var (
		products []models.ProductInput
		err      error
	)
	if cfg.SeedFile != "" {
		products, err = seed.LoadFile(cfg.SeedFile)
	} else {
		products, err = seed.Default()
	}
	if err != nil {
		return err
	}
	_, err = seed.Catalog(ctx, store, products)
	return err
}
