package article

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/spaceflight-news/internal/article/cache"
	"github.com/tair/spaceflight-news/internal/article/classifier"
	"github.com/tair/spaceflight-news/internal/article/delivery/http"
	"github.com/tair/spaceflight-news/internal/article/domain"
	"github.com/tair/spaceflight-news/internal/article/feed"
	"github.com/tair/spaceflight-news/internal/article/repository"
	"github.com/tair/spaceflight-news/internal/article/usecase/command"
	"github.com/tair/spaceflight-news/internal/article/usecase/query"
	"github.com/tair/spaceflight-news/kafka"
	"github.com/tair/spaceflight-news/pkg/config"
)

// ProvideArticleRepository provides the article repository with tracing
func ProvideArticleRepository(db *gorm.DB) domain.ArticleRepository {
	return repository.NewTracingArticleRepository(repository.NewGormArticleRepository(db))
}

// ProvideFavoriteRepository provides the favorite repository with tracing
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewTracingFavoriteRepository(repository.NewGormFavoriteRepository(db))
}

// ProvideReportCache returns a Redis-backed cache, or a no-op one without a client
func ProvideReportCache(client *redis.Client, cfg *config.Config) domain.ReportCache {
	if client == nil {
		return cache.Nop{}
	}
	return cache.NewRedisReportCache(client, cfg.Redis.CacheTTL)
}

// ProvideEventPublisher adapts an optional Kafka publisher; nil disables publishing
func ProvideEventPublisher(publisher *kafka.Publisher) command.EventPublisher {
	if publisher == nil {
		return nil
	}
	return publisher
}

func ProvideClassifier(cfg *config.Config) *classifier.Classifier {
	return classifier.New(cfg.CensoredKeywords, cfg.PositiveKeywords)
}

func ProvideFeedFetcher(cfg *config.Config) feed.Fetcher {
	return feed.NewClient(feed.Config{
		BaseURL: cfg.Feed.BaseURL,
		Search:  cfg.Feed.Search,
		Timeout: cfg.Feed.Timeout,
	})
}

// Command Handlers Providers
func ProvideSyncArticlesHandler(
	fetcher feed.Fetcher,
	repo domain.ArticleRepository,
	c *classifier.Classifier,
	reportCache domain.ReportCache,
	publisher command.EventPublisher,
	metrics *command.SyncMetrics,
) *command.SyncArticlesHandler {
	return command.NewSyncArticlesHandler(fetcher, repo, c, reportCache, publisher, metrics)
}

func ProvideFavoriteArticleHandler(repo domain.FavoriteRepository) *command.FavoriteArticleHandler {
	return command.NewFavoriteArticleHandler(repo)
}

// Query Handlers Providers
func ProvideMonthlyReportHandler(repo domain.ArticleRepository, reportCache domain.ReportCache) *query.MonthlyReportHandler {
	return query.NewMonthlyReportHandler(repo, reportCache)
}

func ProvideListFavoritesHandler(repo domain.FavoriteRepository) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(repo)
}

func ProvideSearchArticlesHandler(repo domain.ArticleRepository) *query.SearchArticlesHandler {
	return query.NewSearchArticlesHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideArticleRepository,
	ProvideFavoriteRepository,
)

var InfrastructureSet = wire.NewSet(
	ProvideReportCache,
	ProvideEventPublisher,
	ProvideClassifier,
	ProvideFeedFetcher,
	command.NewSyncMetrics,
)

var CommandHandlerSet = wire.NewSet(
	ProvideSyncArticlesHandler,
	ProvideFavoriteArticleHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideMonthlyReportHandler,
	ProvideListFavoritesHandler,
	ProvideSearchArticlesHandler,
)

// SyncSet builds the sync command handler used by the CLI
var SyncSet = wire.NewSet(
	RepositorySet,
	InfrastructureSet,
	ProvideSyncArticlesHandler,
)

// HTTPSet builds the article HTTP handler
var HTTPSet = wire.NewSet(
	RepositorySet,
	InfrastructureSet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewArticleHandlerWithDI,
)
