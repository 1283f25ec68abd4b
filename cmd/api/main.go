package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-lost-found/internal/adapters/auth/jwt"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/config"
	"pet-lost-found/internal/domain/geo"
	"pet-lost-found/internal/platform/cache"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
	"pet-lost-found/internal/platform/tracing"
	"pet-lost-found/internal/router"
)

// @title Pet Lost & Found API
// @version 1.0
// @description Mural de mascotas perdidas y encontradas: anuncios, comentarios y bairros.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.NewFromEnv()
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    "pet-lost-found",
	})

	table, err := geo.Load(cfg.GeoTableFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.GeoTableFile).Msg("load neighborhood table")
	}

	tp, shutdownTracing, err := tracing.Init(context.Background(), tracing.Options{
		ServiceName:  "pet-lost-found",
		Environment:  cfg.AppEnv,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRatio:  cfg.TracingSampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init tracing")
	}

	var db *sql.DB
	if dsn := cfg.DatabaseDSN(); dsn != "" {
		db, err = pg.Open(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		defer db.Close()

		if cfg.DBMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := pg.Migrate(ctx, db)
			cancel()
			if err != nil {
				log.Fatal().Err(err).Msg("migrate postgres")
			}
			log.Info().Msg("schema applied")
		}
	} else {
		log.Warn().Msg("no database configured, using in-memory storage")
	}

	var listCache *cache.Client
	if cfg.RedisAddr != "" {
		listCache = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		defer listCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := listCache.Ping(ctx); err != nil {
			// el cache es best-effort: sigue sirviendo desde el store
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
		cancel()
	}

	h, err := router.NewRouter(router.Options{
		Tokens:         jwt.New(cfg.JWTSecret, cfg.TokenTTL),
		DB:             db,
		Logger:         log,
		Cache:          listCache,
		CacheTTL:       cfg.CacheTTL,
		GeoTable:       table,
		MaxImageBytes:  cfg.MaxImageBytes(),
		ExposeDetails:  !cfg.IsProduction(),
		Metrics:        metrics.New(),
		TracerProvider: tp,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	srv := newHTTPServer(cfg.Port, h)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("flush traces")
	}
}

func newHTTPServer(port string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
