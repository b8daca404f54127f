package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/tair/spaceflight-news/internal/article"
	"github.com/tair/spaceflight-news/internal/article/domain"
	articlerepo "github.com/tair/spaceflight-news/internal/article/repository"
	"github.com/tair/spaceflight-news/internal/article/usecase/command"
	userrepo "github.com/tair/spaceflight-news/internal/user/repository"
	"github.com/tair/spaceflight-news/kafka"
	"github.com/tair/spaceflight-news/pkg/config"
	"github.com/tair/spaceflight-news/pkg/database"
	"github.com/tair/spaceflight-news/pkg/logger"
	"github.com/tair/spaceflight-news/pkg/tracing"
)

const version = "1.0.0"

type syncFunc func(ctx context.Context, limit int) (domain.SyncStats, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd(syncFromConfig).ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(run syncFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "syncnews",
		Short: "Run one spaceflight news synchronization pass",
		Long: `syncnews fetches the latest articles from the Spaceflight News feed,
drops censored titles, scores sentiment and upserts the rest into the database.

The process exits non-zero only when the feed itself cannot be read.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be a positive integer, got %d", limit)
			}

			stats, err := run(cmd.Context(), limit)
			printSummary(cmd.OutOrStdout(), stats)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", command.DefaultSyncLimit, "number of feed articles to request")
	return cmd
}

func printSummary(w io.Writer, stats domain.SyncStats) {
	color.New(color.FgWhite, color.Bold).Fprintln(w, "Sync summary")
	fmt.Fprintf(w, "  processed: %d\n", stats.Processed)
	color.New(color.FgGreen).Fprintf(w, "  saved:     %d\n", stats.Saved)
	color.New(color.FgYellow).Fprintf(w, "  filtered:  %d\n", stats.Filtered)
	if stats.Errors > 0 {
		color.New(color.FgRed).Fprintf(w, "  errors:    %d\n", stats.Errors)
	} else {
		fmt.Fprintf(w, "  errors:    %d\n", stats.Errors)
	}
}

func syncFromConfig(ctx context.Context, limit int) (domain.SyncStats, error) {
	cfg, err := config.Load("news-sync")
	if err != nil {
		return domain.SyncStats{}, fmt.Errorf("load configuration: %w", err)
	}

	logger.InitWithWriter(cfg.ServiceName, cfg.IsDevelopment(), os.Stderr)
	logger.SetLevel(cfg.LogLevel)

	tp, err := tracing.InitTracer(cfg.ServiceName, version, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tracing.Shutdown(shutdownCtx, tp)
		}()
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		return domain.SyncStats{}, err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := userrepo.NewGormUserRepository(db).AutoMigrate(); err != nil {
		return domain.SyncStats{}, fmt.Errorf("migrate users: %w", err)
	}
	if err := articlerepo.NewGormArticleRepository(db).AutoMigrate(); err != nil {
		return domain.SyncStats{}, fmt.Errorf("migrate articles: %w", err)
	}

	var redisClient *redis.Client
	if client, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unavailable - cached report will not be invalidated")
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	var publisher *kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		if p, err := kafka.NewPublisher(cfg.Kafka.Brokers); err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka publisher unavailable - sync event will not be sent")
		} else {
			publisher = p
			defer publisher.Close()
		}
	}

	handler, err := article.InitializeSyncHandler(db, redisClient, publisher, cfg, prometheus.NewRegistry())
	if err != nil {
		return domain.SyncStats{}, err
	}

	stats, err := handler.Handle(ctx, command.SyncArticlesCommand{Limit: limit})
	if errors.Is(err, domain.ErrFeedUnavailable) {
		logger.Logger.Error().Err(err).Msg("Feed unavailable")
	}
	return stats, err
}
