package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"conferenceapi/docs"
	"conferenceapi/internal/config"
	"conferenceapi/internal/database"
	"conferenceapi/internal/database/migration"
	handlers "conferenceapi/internal/http/handler"
	"conferenceapi/internal/http/middleware"
	"conferenceapi/internal/keynote"
	"conferenceapi/internal/logger"
	"conferenceapi/internal/otel"
	"conferenceapi/internal/repository"
	"conferenceapi/internal/repository/memory"
	"conferenceapi/internal/repository/postgres"
	"conferenceapi/internal/service"
	"conferenceapi/internal/storage"
)

// @title Conference API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, repo := openStore(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}

	keynotes := newKeynoteLookup(ctx, cfg, log)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithKeynoteDegrade(cfg.Keynote.Degrade),
		service.WithMaxSaveAttempts(cfg.SaveAttempts),
	}
	if cfg.ArchiveEnabled() {
		// Initialize S3-compatible object storage for archived conferences (MinIO-supported)
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal("failed to initialize object storage", zap.Error(err))
		}
		opts = append(opts, service.WithArchive(objStore, cfg.MinIO.ArchivePrefix))
	}
	confSvc := service.NewConferenceService(repo, keynotes, opts...)

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handlers.RegisterRoutes(app, db, confSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// openStore returns the repository selected by STORE_DRIVER. db is nil for the memory store.
func openStore(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*sql.DB, repository.ConferenceRepository) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		repo := memory.NewConferenceMemory()
		if cfg.SeedDemo {
			n, err := service.SeedDemo(ctx, repo, time.Now().UTC())
			if err != nil {
				log.Fatal("failed to seed demo data", zap.Error(err))
			}
			log.Info("demo_data_seeded", zap.Int("conferences", n))
		}
		return nil, repo
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
		repo := postgres.NewConferencePostgres(db)
		if cfg.SeedDemo {
			if _, err := service.SeedDemo(ctx, repo, time.Now().UTC()); err != nil {
				log.Fatal("failed to seed demo data", zap.Error(err))
			}
		}
		return db, repo
	default:
		log.Fatal("unknown STORE_DRIVER", zap.String("driver", cfg.StoreDriver))
		return nil, nil
	}
}

// newKeynoteLookup builds HTTP client -> optional Redis cache -> metrics.
func newKeynoteLookup(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) keynote.Lookup {
	var lookup keynote.Lookup = keynote.NewHTTPClient(cfg.Keynote.BaseURL, cfg.Keynote.Timeout, nil)

	if cfg.Redis.Addr != "" {
		rdb, err := keynote.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn("keynote cache disabled", zap.Error(err))
		} else {
			lookup = keynote.NewCachedLookup(lookup, rdb, cfg.Keynote.CacheTTL, log)
		}
	}

	instrumented, err := keynote.NewInstrumentedLookup(lookup, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register keynote metrics", zap.Error(err))
	}
	return instrumented
}
