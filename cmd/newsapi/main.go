package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"google.golang.org/grpc"

	_ "github.com/tair/spaceflight-news/docs"
	"github.com/tair/spaceflight-news/internal/article"
	grpcDelivery "github.com/tair/spaceflight-news/internal/article/delivery/grpc"
	httpDelivery "github.com/tair/spaceflight-news/internal/article/delivery/http"
	articlerepo "github.com/tair/spaceflight-news/internal/article/repository"
	"github.com/tair/spaceflight-news/internal/user"
	userhttp "github.com/tair/spaceflight-news/internal/user/delivery/http"
	userrepo "github.com/tair/spaceflight-news/internal/user/repository"
	"github.com/tair/spaceflight-news/kafka"
	"github.com/tair/spaceflight-news/pkg/auth"
	"github.com/tair/spaceflight-news/pkg/config"
	"github.com/tair/spaceflight-news/pkg/database"
	"github.com/tair/spaceflight-news/pkg/logger"
	"github.com/tair/spaceflight-news/pkg/ratelimit"
	"github.com/tair/spaceflight-news/pkg/tracing"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load("news-api")
	if err != nil {
		logger.Init("news-api", false)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting news API")

	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName, version, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations; users first since favorites reference them
	if err := userrepo.NewGormUserRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate users")
	}
	if err := articlerepo.NewGormArticleRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate articles")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional; without it the monthly report is computed on every request
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unavailable - report caching disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	publisher := startKafka(ctx, cfg, redisClient)
	if publisher != nil {
		defer publisher.Close()
	}

	// Initialize handlers with Wire DI
	userHandler, err := user.InitializeHTTPHandler(db, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}
	articleHandler, err := article.InitializeHTTPHandler(db, redisClient, publisher, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize article handler")
	}

	monitor := grpcDelivery.NewHealthMonitor(sqlDB, grpcDelivery.DefaultCheckInterval)
	go monitor.Run(ctx)
	grpcServer := grpcDelivery.NewServer(grpcDelivery.NewInterceptors(prometheus.DefaultRegisterer), monitor)
	go startGRPCServer(grpcServer, cfg.GRPCPort)

	var limiter *ratelimit.RateLimiter
	if redisClient != nil && cfg.RateLimitPerMinute > 0 {
		limiter = ratelimit.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
		if err := limiter.TrustProxies(cfg.TrustedProxies); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Invalid TRUSTED_PROXIES")
		}
	}

	httpServer := newHTTPServer(cfg.HTTPPort, userHandler, articleHandler, sqlDB, limiter)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
}

func newHTTPServer(
	port string,
	userHandler *userhttp.UserHandler,
	articleHandler *httpDelivery.ArticleHandler,
	sqlDB *sql.DB,
	limiter *ratelimit.RateLimiter,
) *http.Server {
	router := mux.NewRouter()

	mwConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, mwConfig)
	if limiter != nil {
		router.Use(limiter.Middleware)
	}

	userHandler.RegisterRoutes(router)
	articleHandler.RegisterRoutes(router)
	articleHandler.RegisterHealthCheck(router, sqlDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	return &http.Server{
		Addr:              ":" + port,
		Handler:           httpDelivery.SetupCORS(mwConfig, router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func startGRPCServer(server *grpc.Server, port string) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", port).Msg("Failed to listen for gRPC")
	}

	logger.Logger.Info().
		Str("port", port).
		Msg("gRPC health server started with reflection")

	if err := server.Serve(lis); err != nil {
		logger.Logger.Error().Err(err).Msg("gRPC server stopped")
	}
}

// startKafka creates the sync event publisher and a listener that drops the
// cached report when another process completes a sync. Both are skipped when
// no brokers are configured.
func startKafka(ctx context.Context, cfg *config.Config, redisClient *redis.Client) *kafka.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Info().Msg("Kafka brokers not configured - sync events disabled")
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka publisher unavailable - sync events disabled")
		return nil
	}

	if redisClient == nil {
		return publisher
	}

	listener, err := kafka.NewSyncListener(cfg.Kafka.Brokers, cfg.Kafka.GroupID, article.ProvideReportCache(redisClient, cfg))
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka sync listener unavailable")
		return publisher
	}
	go func() {
		listener.Run(ctx)
		_ = listener.Close()
	}()

	return publisher
}
