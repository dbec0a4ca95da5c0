package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"flightconnect/cfg"
	_ "flightconnect/cmd/connections/docs" // swagger docs
	"flightconnect/internal/connection"
	"flightconnect/internal/middleware"
	"flightconnect/internal/schedule"
	"flightconnect/pkg/cache"
	"flightconnect/pkg/db"
	"flightconnect/pkg/idgen"
	"flightconnect/pkg/logger"
	"flightconnect/pkg/telemetry"
)

// @title           Flight Connections API
// @version         1.0
// @description     One-stop connection search over the recurring flight schedule.
// @BasePath        /
// @schemes         http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:  config.Observability.ServiceName,
		Environment:  config.Observability.Environment,
		OTLPEndpoint: config.Observability.OTLPEndpoint,
	})
	if err != nil {
		zlogger.Warn("OpenTelemetry disabled", logger.Err(err))
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(sctx); err != nil {
				zlogger.Error("failed to shutdown OpenTelemetry", logger.Err(err))
			}
		}()
	}

	// ============
	// Cache
	// ============
	var responseCache cache.Cache = cache.NoOp{}
	if config.CacheEnabled {
		responseCache = cache.NewRedisCache(config.RedisConfig.Addr(), config.RedisConfig.Password)
		if err := cache.Ping(ctx, responseCache); err != nil {
			zlogger.Warn("redis unreachable, searches will run uncached until it recovers", logger.Err(err))
		}
	}

	// ============
	// Schedule
	// ============
	var (
		repo     schedule.Repository
		snapshot connection.SnapshotVersioner
		reloader *schedule.Reloader
	)
	switch config.Schedule.Source {
	case cfg.ScheduleSourceFile:
		store := schedule.NewStore(nil)
		reloader = schedule.NewReloader(schedule.NewFileSource(config.Schedule.File, zlogger), store, zlogger)
		repo, snapshot = store, store
	default:
		pg := config.PostgresConfig
		client, err := db.NewSQLClient(ctx, "postgres", pg.DSN(), db.Pool{
			MaxOpenConns:    pg.MaxConns,
			MaxIdleConns:    pg.MaxConns,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()

		pgRepo := schedule.NewPostgresRepository(client, zlogger)
		if config.Schedule.Source == cfg.ScheduleSourcePostgresDirect {
			repo = schedule.NewThrottledRepository(pgRepo, config.Search.RepositoryRPS, config.Search.RepositoryBurst)
		} else {
			store := schedule.NewStore(nil)
			reloader = schedule.NewReloader(pgRepo, store, zlogger)
			repo, snapshot = store, store
		}
	}

	if reloader != nil {
		if err := reloader.Reload(ctx); err != nil {
			log.Fatal(err)
		}

		var triggers <-chan struct{}
		if config.Schedule.RabbitMQURL != "" {
			listener := schedule.NewChangeListener(config.Schedule.RabbitMQURL, config.Schedule.ChangedQueue, zlogger)
			go listener.Run(ctx)
			triggers = listener.Triggers()
		}
		go reloader.Run(ctx, config.Schedule.RefreshInterval, triggers)
	}

	// ============
	// Internal Service
	// ============
	searcher := connection.NewSearcher(repo, config.Search.Workers, config.Search.Timeout, zlogger)
	connectionSvc := connection.NewService(searcher, responseCache, config.CacheTTLMinutes, snapshot, zlogger)
	validator := connection.NewRequestValidator(connection.Defaults{
		MinLayoverMinutes: config.Search.MinLayoverMinutes,
		MaxLayoverHours:   config.Search.MaxLayoverHours,
	})
	connectionHandler := connection.NewConnectionHandler(connectionSvc, validator, zlogger)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ids, err := idgen.NewSnowflakeGenerator(config.NodeID)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(config.Observability.ServiceName),
		middleware.RequestID(ids),
		middleware.TraceLogger(zlogger),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{"X-Cache", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	connectionHandler.RegisterRoutes(r)
	initSwagger(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.Search.Timeout + 5*time.Second,
	}

	go func() {
		zlogger.Info("server starting", logger.Field{Key: "addr", Value: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	zlogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlogger.Error("server forced to shutdown", logger.Err(err))
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
