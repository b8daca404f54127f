//go:build wireinject
// +build wireinject

package article

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/spaceflight-news/internal/article/delivery/http"
	"github.com/tair/spaceflight-news/internal/article/usecase/command"
	"github.com/tair/spaceflight-news/kafka"
	"github.com/tair/spaceflight-news/pkg/config"
)

// InitializeHTTPHandler initializes the article HTTP handler with all dependencies.
// redisClient and publisher may be nil.
func InitializeHTTPHandler(
	db *gorm.DB,
	redisClient *redis.Client,
	publisher *kafka.Publisher,
	cfg *config.Config,
	reg prometheus.Registerer,
) (*http.ArticleHandler, error) {
	wire.Build(HTTPSet)
	return nil, nil
}

// InitializeSyncHandler initializes the sync command handler for one-shot runs
func InitializeSyncHandler(
	db *gorm.DB,
	redisClient *redis.Client,
	publisher *kafka.Publisher,
	cfg *config.Config,
	reg prometheus.Registerer,
) (*command.SyncArticlesHandler, error) {
	wire.Build(SyncSet)
	return nil, nil
}
